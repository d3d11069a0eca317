package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/dberrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "user_id", "student_id", "usn", "college", "branch", "track",
	"skill_level", "approval_status", "batch_id", "created_at", "updated_at",
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.StudentID, &p.USN, &p.College, &p.Branch,
		&p.Track, &p.SkillLevel, &p.ApprovalStatus, &p.BatchID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile inserts a new student profile inside the caller's transaction
func (r *StudentRepository) CreateProfile(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) (int64, error) {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "usn", "college", "branch", "track", "skill_level", "approval_status").
		Values(profile.UserID, profile.USN, profile.College, profile.Branch, profile.Track, profile.SkillLevel, profile.ApprovalStatus).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student profile query: %w", err)
	}

	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, sql, args...)
	} else {
		row = r.db.QueryRow(ctx, sql, args...)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_user_id_key") {
			return 0, apperrors.ErrStudentProfileExists
		}
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_usn_key") {
			logger.Warn().Str("usn", profile.USN).Msg("Attempted to register duplicate USN")
			return 0, apperrors.ErrUSNAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error executing create student profile query")
		return 0, fmt.Errorf("error creating student profile: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student profile by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves a student profile by its identity id
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("student_profiles").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student profile query: %w", err)
	}

	profile, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student profile row")
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// ListAll retrieves every student profile in insertion order
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.StudentProfile, error) {
	return r.list(ctx, nil)
}

// ListByBatchIDs retrieves the student profiles enrolled in any of the given batches
func (r *StudentRepository) ListByBatchIDs(ctx context.Context, batchIDs []int64) ([]models.StudentProfile, error) {
	if len(batchIDs) == 0 {
		return []models.StudentProfile{}, nil
	}
	return r.list(ctx, squirrel.Eq{"batch_id": batchIDs})
}

func (r *StudentRepository) list(ctx context.Context, where interface{}) ([]models.StudentProfile, error) {
	query := r.sb.Select(studentColumns...).From("student_profiles").OrderBy("id")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list student profiles query")
		return nil, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.StudentProfile
	for rows.Next() {
		profile, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student profile row: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// CountByApprovalStatus counts student profiles per approval status
func (r *StudentRepository) CountByApprovalStatus(ctx context.Context) (map[models.ApprovalStatus]int, error) {
	sql, args, err := r.sb.Select("approval_status", "COUNT(*)").
		From("student_profiles").
		GroupBy("approval_status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by approval status query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting student profiles by approval status")
		return nil, fmt.Errorf("error counting student profiles: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApprovalStatus]int)
	for rows.Next() {
		var status models.ApprovalStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning approval count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// CountByBatch counts enrolled students per batch id
func (r *StudentRepository) CountByBatch(ctx context.Context) (map[int64]int, error) {
	sql, args, err := r.sb.Select("batch_id", "COUNT(*)").
		From("student_profiles").
		Where("batch_id IS NOT NULL").
		GroupBy("batch_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by batch query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting students per batch")
		return nil, fmt.Errorf("error counting students per batch: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var batchID int64
		var count int
		if err := rows.Scan(&batchID, &count); err != nil {
			return nil, fmt.Errorf("error scanning batch count row: %w", err)
		}
		counts[batchID] = count
	}

	return counts, rows.Err()
}

// UpdateAcademics applies a partial update of academic and batch fields
func (r *StudentRepository) UpdateAcademics(ctx context.Context, id int64, usn, college, branch, track, skillLevel *string, batchID *int64) error {
	query := r.sb.Update("student_profiles").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})

	if usn != nil {
		query = query.Set("usn", *usn)
	}
	if college != nil {
		query = query.Set("college", *college)
	}
	if branch != nil {
		query = query.Set("branch", *branch)
	}
	if track != nil {
		query = query.Set("track", *track)
	}
	if skillLevel != nil {
		query = query.Set("skill_level", *skillLevel)
	}
	if batchID != nil {
		query = query.Set("batch_id", *batchID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update academics query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_usn_key") {
			return apperrors.ErrUSNAlreadyExists
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing update academics query")
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Approve transitions a pending profile to approved, assigning the student id
// and batch in the same statement. Returns ErrStudentNotPending when the
// profile is not pending.
func (r *StudentRepository) Approve(ctx context.Context, id int64, studentID string, batchID int64) error {
	return r.setApproval(ctx, id, models.ApprovalApproved, &studentID, &batchID)
}

// Reject transitions a pending profile to rejected
func (r *StudentRepository) Reject(ctx context.Context, id int64) error {
	return r.setApproval(ctx, id, models.ApprovalRejected, nil, nil)
}

func (r *StudentRepository) setApproval(ctx context.Context, id int64, status models.ApprovalStatus, studentID *string, batchID *int64) error {
	query := r.sb.Update("student_profiles").
		Set("approval_status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "approval_status": models.ApprovalPending})

	if studentID != nil {
		query = query.Set("student_id", *studentID)
	}
	if batchID != nil {
		query = query.Set("batch_id", *batchID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approval query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing approval query")
		return fmt.Errorf("error updating approval status: %w", err)
	}

	// Zero rows means the profile is missing or was already reviewed; the
	// guard in the WHERE clause keeps the transition atomic either way.
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrStudentNotPending
	}

	return nil
}

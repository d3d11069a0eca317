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

var batchColumns = []string{
	"id", "name", "description", "course_code", "start_date", "end_date",
	"capacity", "schedule", "faculty_id", "created_at", "updated_at",
}

// BatchRepository handles batch database operations
type BatchRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(db DBTX) *BatchRepository {
	return &BatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanBatch(row pgx.Row) (*models.Batch, error) {
	var b models.Batch
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.CourseCode, &b.StartDate, &b.EndDate,
		&b.Capacity, &b.Schedule, &b.FacultyID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new batch and returns its id
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) (int64, error) {
	sql, args, err := r.sb.Insert("batches").
		Columns("name", "description", "course_code", "start_date", "end_date", "capacity", "schedule", "faculty_id").
		Values(batch.Name, batch.Description, batch.CourseCode, batch.StartDate, batch.EndDate, batch.Capacity, batch.Schedule, batch.FacultyID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create batch query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Str("name", batch.Name).Msg("Error executing create batch query")
		return 0, fmt.Errorf("error creating batch: %w", err)
	}

	return id, nil
}

// GetByID retrieves a batch by id
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	sql, args, err := r.sb.Select(batchColumns...).
		From("batches").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get batch query: %w", err)
	}

	batch, err := scanBatch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int64("batchID", id).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}

	return batch, nil
}

// ListAll retrieves every batch ordered by start date, newest first
func (r *BatchRepository) ListAll(ctx context.Context) ([]models.Batch, error) {
	return r.list(ctx, nil)
}

// ListByFaculty retrieves batches assigned to the given faculty member
func (r *BatchRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]models.Batch, error) {
	return r.list(ctx, squirrel.Eq{"faculty_id": facultyID})
}

func (r *BatchRepository) list(ctx context.Context, where interface{}) ([]models.Batch, error) {
	query := r.sb.Select(batchColumns...).From("batches").OrderBy("start_date DESC", "id")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list batches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list batches query")
		return nil, fmt.Errorf("error listing batches: %w", err)
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, *batch)
	}

	return batches, rows.Err()
}

// Update applies a partial update of batch fields
func (r *BatchRepository) Update(ctx context.Context, id int64, name, description, courseCode, schedule *string, startDate, endDate *time.Time, capacity *int, facultyID *int64) error {
	query := r.sb.Update("batches").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})

	if name != nil {
		query = query.Set("name", *name)
	}
	if description != nil {
		query = query.Set("description", *description)
	}
	if courseCode != nil {
		query = query.Set("course_code", *courseCode)
	}
	if schedule != nil {
		query = query.Set("schedule", *schedule)
	}
	if startDate != nil {
		query = query.Set("start_date", *startDate)
	}
	if endDate != nil {
		query = query.Set("end_date", *endDate)
	}
	if capacity != nil {
		query = query.Set("capacity", *capacity)
	}
	if facultyID != nil {
		query = query.Set("faculty_id", *facultyID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update batch query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("batchID", id).Msg("Error executing update batch query")
		return fmt.Errorf("error updating batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}

	return nil
}

// Count returns the total number of batches
func (r *BatchRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("batches").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count batches query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting batches")
		return 0, fmt.Errorf("error counting batches: %w", err)
	}

	return count, nil
}

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
	"github.com/internhub/backend/internal/pkg/logger"
)

var leaveColumns = []string{
	"id", "user_id", "leave_date", "leave_type", "reason", "status",
	"reviewed_by", "reviewed_at", "created_at",
}

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db DBTX) *LeaveRepository {
	return &LeaveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLeave(row pgx.Row) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.LeaveDate, &l.Type, &l.Reason, &l.Status,
		&l.ReviewedBy, &l.ReviewedAt, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new pending leave request and returns its id
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) (int64, error) {
	sql, args, err := r.sb.Insert("leave_requests").
		Columns("user_id", "leave_date", "leave_type", "reason", "status").
		Values(leave.UserID, leave.LeaveDate, leave.Type, leave.Reason, models.LeavePending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create leave query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", leave.UserID).Msg("Error executing create leave query")
		return 0, fmt.Errorf("error creating leave request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a leave request by id
func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	sql, args, err := r.sb.Select(leaveColumns...).
		From("leave_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get leave query: %w", err)
	}

	leave, err := scanLeave(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeaveNotFound
		}
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error scanning leave row")
		return nil, fmt.Errorf("error retrieving leave request: %w", err)
	}

	return leave, nil
}

// ListAll retrieves every leave request, newest first
func (r *LeaveRepository) ListAll(ctx context.Context) ([]models.LeaveRequest, error) {
	return r.list(ctx, nil)
}

// ListByUser retrieves a user's leave requests, newest first
func (r *LeaveRepository) ListByUser(ctx context.Context, userID int64) ([]models.LeaveRequest, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *LeaveRepository) list(ctx context.Context, where interface{}) ([]models.LeaveRequest, error) {
	query := r.sb.Select(leaveColumns...).From("leave_requests").OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list leaves query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list leaves query")
		return nil, fmt.Errorf("error listing leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []models.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning leave row: %w", err)
		}
		leaves = append(leaves, *leave)
	}

	return leaves, rows.Err()
}

// Review transitions a pending request to the given terminal status, stamping
// reviewer and review time in the same statement. A request that is not
// pending yields ErrLeaveAlreadyReviewed.
func (r *LeaveRepository) Review(ctx context.Context, id int64, status models.LeaveStatus, reviewerID int64) error {
	sql, args, err := r.sb.Update("leave_requests").
		Set("status", status).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": models.LeavePending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review leave query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error executing review leave query")
		return fmt.Errorf("error reviewing leave request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrLeaveAlreadyReviewed
	}

	return nil
}

// CountByStatus counts leave requests per status
func (r *LeaveRepository) CountByStatus(ctx context.Context) (map[models.LeaveStatus]int, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("leave_requests").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count leaves query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting leave requests")
		return nil, fmt.Errorf("error counting leave requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.LeaveStatus]int)
	for rows.Next() {
		var status models.LeaveStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning leave count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

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

var queryColumns = []string{
	"id", "user_id", "title", "category", "description", "resolved",
	"resolved_at", "created_at",
}

// QueryRepository handles support query database operations
type QueryRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db DBTX) *QueryRepository {
	return &QueryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanQuery(row pgx.Row) (*models.SupportQuery, error) {
	var q models.SupportQuery
	err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &q.Category, &q.Description,
		&q.Resolved, &q.ResolvedAt, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new unresolved support query and returns its id
func (r *QueryRepository) Create(ctx context.Context, query *models.SupportQuery) (int64, error) {
	sql, args, err := r.sb.Insert("support_queries").
		Columns("user_id", "title", "category", "description", "resolved").
		Values(query.UserID, query.Title, query.Category, query.Description, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create query query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", query.UserID).Msg("Error executing create support query")
		return 0, fmt.Errorf("error creating support query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a support query by id
func (r *QueryRepository) GetByID(ctx context.Context, id int64) (*models.SupportQuery, error) {
	sql, args, err := r.sb.Select(queryColumns...).
		From("support_queries").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get support query: %w", err)
	}

	query, err := scanQuery(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQueryNotFound
		}
		logger.Error().Err(err).Int64("queryID", id).Msg("Error scanning support query row")
		return nil, fmt.Errorf("error retrieving support query: %w", err)
	}

	return query, nil
}

// ListAll retrieves every support query, newest first
func (r *QueryRepository) ListAll(ctx context.Context) ([]models.SupportQuery, error) {
	return r.list(ctx, nil)
}

// ListByUser retrieves a user's support queries, newest first
func (r *QueryRepository) ListByUser(ctx context.Context, userID int64) ([]models.SupportQuery, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *QueryRepository) list(ctx context.Context, where interface{}) ([]models.SupportQuery, error) {
	query := r.sb.Select(queryColumns...).From("support_queries").OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list support queries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list support queries query")
		return nil, fmt.Errorf("error listing support queries: %w", err)
	}
	defer rows.Close()

	var queries []models.SupportQuery
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning support query row: %w", err)
		}
		queries = append(queries, *q)
	}

	return queries, rows.Err()
}

// Resolve marks a support query as resolved. Resolving an already resolved
// query changes nothing; the original resolution time is kept.
func (r *QueryRepository) Resolve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("support_queries").
		Set("resolved", true).
		Set("resolved_at", time.Now()).
		Where(squirrel.Eq{"id": id, "resolved": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build resolve query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("queryID", id).Msg("Error executing resolve query")
		return fmt.Errorf("error resolving support query: %w", err)
	}

	// Zero rows is a no-op for an already resolved query but an error for a
	// missing one.
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// Reopen clears the resolved flag and resolution time. Reopening an open
// query changes nothing.
func (r *QueryRepository) Reopen(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("support_queries").
		Set("resolved", false).
		Set("resolved_at", nil).
		Where(squirrel.Eq{"id": id, "resolved": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reopen query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("queryID", id).Msg("Error executing reopen query")
		return fmt.Errorf("error reopening support query: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// CountUnresolved returns the number of open support queries
func (r *QueryRepository) CountUnresolved(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("support_queries").
		Where(squirrel.Eq{"resolved": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unresolved query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting unresolved support queries")
		return 0, fmt.Errorf("error counting unresolved support queries: %w", err)
	}

	return count, nil
}

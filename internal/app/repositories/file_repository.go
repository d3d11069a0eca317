package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

var fileColumns = []string{"id", "path", "name", "size", "mime_type", "uploaded_by", "created_at"}

// FileRepository handles stored file metadata database operations
type FileRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db DBTX) *FileRepository {
	return &FileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a metadata row for an uploaded file and returns its id
func (r *FileRepository) Create(ctx context.Context, file *models.StoredFile) (int64, error) {
	sql, args, err := r.sb.Insert("files").
		Columns("path", "name", "size", "mime_type", "uploaded_by").
		Values(file.Path, file.Name, file.Size, file.MimeType, file.UploadedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create file query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("path", file.Path).Msg("Error executing create file query")
		return 0, fmt.Errorf("error creating file record: %w", err)
	}

	return id, nil
}

// GetByPath retrieves a file record by its stored path
func (r *FileRepository) GetByPath(ctx context.Context, path string) (*models.StoredFile, error) {
	sql, args, err := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Eq{"path": path}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	var f models.StoredFile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&f.ID, &f.Path, &f.Name, &f.Size, &f.MimeType, &f.UploadedBy, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Str("path", path).Msg("Error scanning file row")
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}

	return &f, nil
}

// DeleteByPath removes the metadata row for a stored path. Missing rows are
// not an error so replacement flows stay idempotent.
func (r *FileRepository) DeleteByPath(ctx context.Context, path string) error {
	sql, args, err := r.sb.Delete("files").
		Where(squirrel.Eq{"path": path}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Error executing delete file query")
		return fmt.Errorf("error deleting file record: %w", err)
	}

	return nil
}

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

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "phone",
	"role_type", "is_active", "avatar_path", "resume_path",
	"last_login_at", "created_at", "updated_at",
}

// UserRepository handles identity database operations
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.RoleType, &user.IsActive, &user.AvatarPath,
		&user.ResumePath, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new identity row and returns its id
func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "phone", "role_type", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.Phone, user.RoleType, user.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, sql, args...)
	} else {
		row = r.db.QueryRow(ctx, sql, args...)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to create user with duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_phone_key") {
			logger.Warn().Str("phone", user.Phone).Msg("Attempted to create user with duplicate phone")
			return 0, apperrors.ErrPhoneAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByPhone retrieves a user by exact phone number match
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"phone": phone}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by phone query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("phone", phone).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// ListAll retrieves every identity row, in insertion order
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, nil)
}

// ListByRole retrieves all identities with the given role
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType) ([]models.User, error) {
	return r.list(ctx, squirrel.Eq{"role_type": role})
}

func (r *UserRepository) list(ctx context.Context, where interface{}) ([]models.User, error) {
	query := r.sb.Select(userColumns...).From("users").OrderBy("id")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile applies a partial update of the mutable identity fields
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone *string) error {
	query := r.sb.Update("users").Set("updated_at", time.Now()).Where(squirrel.Eq{"id": id})

	if firstName != nil {
		query = query.Set("first_name", *firstName)
	}
	if lastName != nil {
		query = query.Set("last_name", *lastName)
	}
	if phone != nil {
		query = query.Set("phone", *phone)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_phone_key") {
			return apperrors.ErrPhoneAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetAvatarPath records the stored avatar file path for a user
func (r *UserRepository) SetAvatarPath(ctx context.Context, id int64, path string) error {
	return r.setFilePath(ctx, id, "avatar_path", path)
}

// SetResumePath records the stored resume file path for a user
func (r *UserRepository) SetResumePath(ctx context.Context, id int64, path string) error {
	return r.setFilePath(ctx, id, "resume_path", path)
}

func (r *UserRepository) setFilePath(ctx context.Context, id int64, column, path string) error {
	sql, args, err := r.sb.Update("users").
		Set(column, path).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set %s query: %w", column, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Str("column", column).Msg("Error storing file path")
		return fmt.Errorf("error storing file path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// RecordLogin stamps the last login time
func (r *UserRepository) RecordLogin(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build record login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error recording login")
		return fmt.Errorf("error recording login: %w", err)
	}

	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/dberrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

var projectColumns = []string{"id", "name", "description", "lead_id", "created_at"}

var memberColumns = []string{"id", "project_id", "user_id", "joined_at"}

// ProjectRepository handles project and membership database operations
type ProjectRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.LeadID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanMember(row pgx.Row) (*models.ProjectMember, error) {
	var m models.ProjectMember
	if err := row.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.JoinedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateWithLead inserts a project and its lead membership row inside the
// caller's transaction so the two can never diverge.
func (r *ProjectRepository) CreateWithLead(ctx context.Context, tx pgx.Tx, project *models.Project) (int64, error) {
	sql, args, err := r.sb.Insert("projects").
		Columns("name", "description", "lead_id").
		Values(project.Name, project.Description, project.LeadID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create project query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("name", project.Name).Msg("Error executing create project query")
		return 0, fmt.Errorf("error creating project: %w", err)
	}

	if _, err := r.addMember(ctx, tx, id, project.LeadID); err != nil {
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a project by id
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	sql, args, err := r.sb.Select(projectColumns...).
		From("projects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get project query: %w", err)
	}

	project, err := scanProject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		logger.Error().Err(err).Int64("projectID", id).Msg("Error scanning project row")
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	return project, nil
}

// ListAll retrieves every project, newest first
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	sql, args, err := r.sb.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list projects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list projects query")
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

// ListByMember retrieves all projects the given user belongs to
func (r *ProjectRepository) ListByMember(ctx context.Context, userID int64) ([]models.Project, error) {
	sql, args, err := r.sb.Select("p.id", "p.name", "p.description", "p.lead_id", "p.created_at").
		From("projects p").
		Join("project_members pm ON pm.project_id = p.id").
		Where(squirrel.Eq{"pm.user_id": userID}).
		OrderBy("p.created_at DESC", "p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list projects by member query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list projects by member query")
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

// ListMembers retrieves a project's membership rows in join order
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error) {
	sql, args, err := r.sb.Select(memberColumns...).
		From("project_members").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("joined_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Msg("Error executing list members query")
		return nil, fmt.Errorf("error listing project members: %w", err)
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		members = append(members, *member)
	}

	return members, rows.Err()
}

// ListAllMembers retrieves every membership row across all projects
func (r *ProjectRepository) ListAllMembers(ctx context.Context) ([]models.ProjectMember, error) {
	sql, args, err := r.sb.Select(memberColumns...).
		From("project_members").
		OrderBy("project_id", "joined_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list all members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list all members query")
		return nil, fmt.Errorf("error listing project members: %w", err)
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		members = append(members, *member)
	}

	return members, rows.Err()
}

// CountMembers returns the current team size, lead included
func (r *ProjectRepository) CountMembers(ctx context.Context, projectID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("project_members").
		Where(squirrel.Eq{"project_id": projectID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count members query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Msg("Error counting project members")
		return 0, fmt.Errorf("error counting project members: %w", err)
	}

	return count, nil
}

// IsMember checks whether a user already belongs to a project
func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("project_members").
		Where(squirrel.Eq{"project_id": projectID, "user_id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is member query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Int64("userID", userID).Msg("Error checking project membership")
		return false, fmt.Errorf("error checking project membership: %w", err)
	}

	return exists, nil
}

// AddMember inserts a membership row and returns its id
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID int64) (int64, error) {
	return r.addMember(ctx, r.db, projectID, userID)
}

func (r *ProjectRepository) addMember(ctx context.Context, db DBTX, projectID, userID int64) (int64, error) {
	sql, args, err := r.sb.Insert("project_members").
		Columns("project_id", "user_id").
		Values(projectID, userID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build add member query: %w", err)
	}

	var id int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_members_project_id_user_id_key") {
			return 0, apperrors.ErrAlreadyMember
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("projectID", projectID).Int64("userID", userID).Msg("Error executing add member query")
		return 0, fmt.Errorf("error adding project member: %w", err)
	}

	return id, nil
}

// RemoveMember deletes a membership row
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	sql, args, err := r.sb.Delete("project_members").
		Where(squirrel.Eq{"project_id": projectID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove member query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Int64("userID", userID).Msg("Error executing remove member query")
		return fmt.Errorf("error removing project member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}

// Count returns the total number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("projects").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count projects query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting projects")
		return 0, fmt.Errorf("error counting projects: %w", err)
	}

	return count, nil
}

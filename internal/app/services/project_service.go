package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

type projectStore interface {
	CreateWithLead(ctx context.Context, tx pgx.Tx, project *models.Project) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	ListByMember(ctx context.Context, userID int64) ([]models.Project, error)
	ListMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error)
	ListAllMembers(ctx context.Context) ([]models.ProjectMember, error)
	CountMembers(ctx context.Context, projectID int64) (int, error)
	IsMember(ctx context.Context, projectID, userID int64) (bool, error)
	AddMember(ctx context.Context, projectID, userID int64) (int64, error)
	RemoveMember(ctx context.Context, projectID, userID int64) error
	Count(ctx context.Context) (int, error)
}

type memberLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// ProjectListFilter narrows the project list
type ProjectListFilter struct {
	Search string
	Page   int
}

// ProjectService handles project creation and team membership
type ProjectService struct {
	projectRepo projectStore
	userRepo    memberLookup
	runTx       TxRunner
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo projectStore, userRepo memberLookup, runTx TxRunner) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		runTx:       runTx,
	}
}

// CreateProject creates a project with the caller as lead and sole member.
// The project row and the lead's membership row commit together.
func (s *ProjectService) CreateProject(ctx context.Context, leadID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		LeadID:      leadID,
	}

	var id int64
	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		id, err = s.projectRepo.CreateWithLead(ctx, tx, project)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("projectID", id).Int64("leadID", leadID).Msg("Project created")
	return s.GetProject(ctx, id)
}

// GetProject retrieves one project with lead and members joined in
func (s *ProjectService) GetProject(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Members = members

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	attachProjectUsers(project, indexBy(users, func(u models.User) int64 { return u.ID }))

	resp := dto.FromProject(project)
	return &resp, nil
}

// ListProjects returns one page of all projects, members joined in
func (s *ProjectService) ListProjects(ctx context.Context, filter ProjectListFilter) ([]dto.ProjectResponse, dto.PaginationInfo, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, projects, filter)
}

// ListProjectsForUser returns one page of the projects the user belongs to
func (s *ProjectService) ListProjectsForUser(ctx context.Context, userID int64, filter ProjectListFilter) ([]dto.ProjectResponse, dto.PaginationInfo, error) {
	projects, err := s.projectRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, projects, filter)
}

func (s *ProjectService) pageOf(ctx context.Context, projects []models.Project, filter ProjectListFilter) ([]dto.ProjectResponse, dto.PaginationInfo, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	userIdx := indexBy(users, func(u models.User) int64 { return u.ID })

	// Lead names are a search field, so the identity join happens before
	// filtering rather than after pagination.
	filtered := Filter(projects,
		SearchMatches(filter.Search,
			func(p models.Project) string { return p.Name },
			func(p models.Project) string { return p.Description },
			func(p models.Project) string {
				if lead := lookup(userIdx, p.LeadID); lead != nil {
					return lead.FullName()
				}
				return ""
			},
		),
	)

	page, info := Paginate(filtered, filter.Page)

	members, err := s.projectRepo.ListAllMembers(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	byProject := make(map[int64][]models.ProjectMember)
	for _, m := range members {
		byProject[m.ProjectID] = append(byProject[m.ProjectID], m)
	}

	out := make([]dto.ProjectResponse, 0, len(page))
	for i := range page {
		page[i].Members = byProject[page[i].ID]
		attachProjectUsers(&page[i], userIdx)
		out = append(out, dto.FromProject(&page[i]))
	}

	return out, info, nil
}

func attachProjectUsers(project *models.Project, userIdx map[int64]models.User) {
	project.Lead = lookup(userIdx, project.LeadID)
	for i := range project.Members {
		project.Members[i].User = lookup(userIdx, project.Members[i].UserID)
	}
}

// AddMember adds a teammate found by exact phone number. Only the lead can
// grow the team and the cap counts the lead.
func (s *ProjectService) AddMember(ctx context.Context, projectID, callerID int64, req *dto.AddMemberRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.LeadID != callerID {
		return nil, apperrors.ErrNotProjectLead
	}

	candidate, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	already, err := s.projectRepo.IsMember(ctx, projectID, candidate.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, apperrors.ErrAlreadyMember
	}

	count, err := s.projectRepo.CountMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxProjectMembers {
		return nil, apperrors.ErrTeamFull
	}

	if _, err := s.projectRepo.AddMember(ctx, projectID, candidate.ID); err != nil {
		return nil, err
	}

	logger.Info().Int64("projectID", projectID).Int64("userID", candidate.ID).Msg("Project member added")
	return s.GetProject(ctx, projectID)
}

// RemoveMember removes a teammate. Only the lead can do this, and the lead
// cannot remove themselves.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, callerID, memberID int64) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.LeadID != callerID {
		return nil, apperrors.ErrNotProjectLead
	}
	if memberID == project.LeadID {
		return nil, apperrors.ErrBadRequest
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, memberID); err != nil {
		return nil, err
	}

	return s.GetProject(ctx, projectID)
}

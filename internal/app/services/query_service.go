package services

import (
	"context"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/logger"
)

type queryStore interface {
	Create(ctx context.Context, query *models.SupportQuery) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SupportQuery, error)
	ListAll(ctx context.Context) ([]models.SupportQuery, error)
	ListByUser(ctx context.Context, userID int64) ([]models.SupportQuery, error)
	Resolve(ctx context.Context, id int64) error
	Reopen(ctx context.Context, id int64) error
	CountUnresolved(ctx context.Context) (int, error)
}

// QueryListFilter narrows the support query list. Resolved is a tri-state:
// nil shows everything.
type QueryListFilter struct {
	Category string
	Resolved *bool
	Search   string
	Page     int
}

// QueryService handles support queries and their resolution
type QueryService struct {
	queryRepo queryStore
	userRepo  identityLister
}

// NewQueryService creates a new QueryService
func NewQueryService(queryRepo queryStore, userRepo identityLister) *QueryService {
	return &QueryService{
		queryRepo: queryRepo,
		userRepo:  userRepo,
	}
}

// CreateQuery submits a new unresolved support query for the caller
func (s *QueryService) CreateQuery(ctx context.Context, userID int64, req *dto.CreateQueryRequest) (*dto.QueryResponse, error) {
	query := &models.SupportQuery{
		UserID:      userID,
		Title:       req.Title,
		Category:    models.QueryCategory(req.Category),
		Description: req.Description,
	}

	id, err := s.queryRepo.Create(ctx, query)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("queryID", id).Int64("userID", userID).Msg("Support query submitted")
	return s.GetQuery(ctx, id)
}

// GetQuery retrieves one support query with its submitter joined in
func (s *QueryService) GetQuery(ctx context.Context, id int64) (*dto.QueryResponse, error) {
	query, err := s.queryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByID(ctx, query.UserID); err == nil {
		query.Submitter = user
	}

	resp := dto.FromSupportQuery(query)
	return &resp, nil
}

// ListQueries returns one page of all support queries for the admin view
func (s *QueryService) ListQueries(ctx context.Context, filter QueryListFilter) ([]dto.QueryResponse, dto.PaginationInfo, error) {
	queries, err := s.queryRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, queries, filter)
}

// ListQueriesForUser returns one page of the caller's own support queries
func (s *QueryService) ListQueriesForUser(ctx context.Context, userID int64, filter QueryListFilter) ([]dto.QueryResponse, dto.PaginationInfo, error) {
	queries, err := s.queryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, queries, filter)
}

func (s *QueryService) pageOf(ctx context.Context, queries []models.SupportQuery, filter QueryListFilter) ([]dto.QueryResponse, dto.PaginationInfo, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	userIdx := indexBy(users, func(u models.User) int64 { return u.ID })

	for i := range queries {
		queries[i].Submitter = lookup(userIdx, queries[i].UserID)
	}

	var resolvedPred func(models.SupportQuery) bool
	if filter.Resolved != nil {
		want := *filter.Resolved
		resolvedPred = func(q models.SupportQuery) bool { return q.Resolved == want }
	}

	filtered := Filter(queries,
		FieldEquals(filter.Category, func(q models.SupportQuery) string { return string(q.Category) }),
		resolvedPred,
		SearchMatches(filter.Search,
			func(q models.SupportQuery) string { return q.Title },
			func(q models.SupportQuery) string { return q.Description },
			func(q models.SupportQuery) string {
				if q.Submitter != nil {
					return q.Submitter.FullName()
				}
				return ""
			},
		),
	)

	page, info := Paginate(filtered, filter.Page)

	out := make([]dto.QueryResponse, 0, len(page))
	for i := range page {
		out = append(out, dto.FromSupportQuery(&page[i]))
	}

	return out, info, nil
}

// ResolveQuery marks a query resolved. Resolving twice is a no-op that keeps
// the original resolution time.
func (s *QueryService) ResolveQuery(ctx context.Context, id int64) (*dto.QueryResponse, error) {
	if err := s.queryRepo.Resolve(ctx, id); err != nil {
		return nil, err
	}

	logger.Info().Int64("queryID", id).Msg("Support query resolved")
	return s.GetQuery(ctx, id)
}

// ReopenQuery clears a query's resolution so it counts as open again
func (s *QueryService) ReopenQuery(ctx context.Context, id int64) (*dto.QueryResponse, error) {
	if err := s.queryRepo.Reopen(ctx, id); err != nil {
		return nil, err
	}

	logger.Info().Int64("queryID", id).Msg("Support query reopened")
	return s.GetQuery(ctx, id)
}

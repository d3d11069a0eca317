package services

import (
	"context"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/helpers"
	"github.com/internhub/backend/internal/pkg/logger"
)

type leaveStore interface {
	Create(ctx context.Context, leave *models.LeaveRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
	ListAll(ctx context.Context) ([]models.LeaveRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]models.LeaveRequest, error)
	Review(ctx context.Context, id int64, status models.LeaveStatus, reviewerID int64) error
	CountByStatus(ctx context.Context) (map[models.LeaveStatus]int, error)
}

// LeaveListFilter narrows the leave request list
type LeaveListFilter struct {
	Status string
	Type   string
	Search string
	Page   int
}

// LeaveService handles leave requests and their review workflow
type LeaveService struct {
	leaveRepo leaveStore
	userRepo  identityLister
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaveRepo leaveStore, userRepo identityLister) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
	}
}

// CreateLeave submits a new pending leave request for the caller
func (s *LeaveService) CreateLeave(ctx context.Context, userID int64, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	leaveDate, err := helpers.ParseDate(req.LeaveDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest
	}

	leave := &models.LeaveRequest{
		UserID:    userID,
		LeaveDate: leaveDate,
		Type:      models.LeaveType(req.Type),
		Reason:    req.Reason,
		Status:    models.LeavePending,
	}

	id, err := s.leaveRepo.Create(ctx, leave)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("leaveID", id).Int64("userID", userID).Msg("Leave request submitted")
	return s.GetLeave(ctx, id)
}

// GetLeave retrieves one leave request with requester and reviewer joined in
func (s *LeaveService) GetLeave(ctx context.Context, id int64) (*dto.LeaveResponse, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	attachLeaveUsers(leave, indexBy(users, func(u models.User) int64 { return u.ID }))

	resp := dto.FromLeaveRequest(leave)
	return &resp, nil
}

// ListLeaves returns one page of all leave requests for review
func (s *LeaveService) ListLeaves(ctx context.Context, filter LeaveListFilter) ([]dto.LeaveResponse, dto.PaginationInfo, error) {
	leaves, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, leaves, filter)
}

// ListLeavesForUser returns one page of the caller's own leave requests
func (s *LeaveService) ListLeavesForUser(ctx context.Context, userID int64, filter LeaveListFilter) ([]dto.LeaveResponse, dto.PaginationInfo, error) {
	leaves, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(ctx, leaves, filter)
}

func (s *LeaveService) pageOf(ctx context.Context, leaves []models.LeaveRequest, filter LeaveListFilter) ([]dto.LeaveResponse, dto.PaginationInfo, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	userIdx := indexBy(users, func(u models.User) int64 { return u.ID })

	for i := range leaves {
		attachLeaveUsers(&leaves[i], userIdx)
	}

	filtered := Filter(leaves,
		FieldEquals(filter.Status, func(l models.LeaveRequest) string { return string(l.Status) }),
		FieldEquals(filter.Type, func(l models.LeaveRequest) string { return string(l.Type) }),
		SearchMatches(filter.Search,
			func(l models.LeaveRequest) string {
				if l.Requester != nil {
					return l.Requester.FullName()
				}
				return ""
			},
			func(l models.LeaveRequest) string { return l.Reason },
		),
	)

	page, info := Paginate(filtered, filter.Page)

	out := make([]dto.LeaveResponse, 0, len(page))
	for i := range page {
		out = append(out, dto.FromLeaveRequest(&page[i]))
	}

	return out, info, nil
}

func attachLeaveUsers(leave *models.LeaveRequest, userIdx map[int64]models.User) {
	leave.Requester = lookup(userIdx, leave.UserID)
	leave.Reviewer = lookupOpt(userIdx, leave.ReviewedBy)
}

// ApproveLeave approves a pending request, recording the reviewer
func (s *LeaveService) ApproveLeave(ctx context.Context, id, reviewerID int64) (*dto.LeaveResponse, error) {
	return s.review(ctx, id, models.LeaveApproved, reviewerID)
}

// RejectLeave rejects a pending request, recording the reviewer
func (s *LeaveService) RejectLeave(ctx context.Context, id, reviewerID int64) (*dto.LeaveResponse, error) {
	return s.review(ctx, id, models.LeaveRejected, reviewerID)
}

func (s *LeaveService) review(ctx context.Context, id int64, status models.LeaveStatus, reviewerID int64) (*dto.LeaveResponse, error) {
	if err := s.leaveRepo.Review(ctx, id, status, reviewerID); err != nil {
		return nil, err
	}

	logger.Info().Int64("leaveID", id).Int64("reviewerID", reviewerID).Str("status", string(status)).Msg("Leave request reviewed")
	return s.GetLeave(ctx, id)
}

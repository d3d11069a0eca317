package services

import (
	"context"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/helpers"
	"github.com/internhub/backend/internal/pkg/logger"
)

type batchStore interface {
	Create(ctx context.Context, batch *models.Batch) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	ListAll(ctx context.Context) ([]models.Batch, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]models.Batch, error)
	Update(ctx context.Context, id int64, name, description, courseCode, schedule *string, startDate, endDate *time.Time, capacity *int, facultyID *int64) error
	Count(ctx context.Context) (int, error)
}

type batchStudentCounter interface {
	CountByBatch(ctx context.Context) (map[int64]int, error)
}

// BatchListFilter narrows the batch list. Status filters on the derived
// date-range status, not a stored column.
type BatchListFilter struct {
	Status    string
	FacultyID *int64
	Search    string
	Page      int
}

// BatchService handles batch administration and the derived status view
type BatchService struct {
	batchRepo   batchStore
	userRepo    identityLister
	studentRepo batchStudentCounter
	now         func() time.Time
}

// NewBatchService creates a new BatchService
func NewBatchService(batchRepo batchStore, userRepo identityLister, studentRepo batchStudentCounter) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// CreateBatch validates and creates a new batch
func (s *BatchService) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	startDate, endDate, err := parseBatchDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.FacultyID != nil {
		if err := s.checkFaculty(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
	}

	batch := &models.Batch{
		Name:        req.Name,
		Description: req.Description,
		CourseCode:  req.CourseCode,
		StartDate:   startDate,
		EndDate:     endDate,
		Capacity:    req.Capacity,
		Schedule:    req.Schedule,
		FacultyID:   req.FacultyID,
	}

	id, err := s.batchRepo.Create(ctx, batch)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("batchID", id).Str("name", req.Name).Msg("Batch created")
	return s.GetBatch(ctx, id)
}

// GetBatch retrieves one batch with faculty, student count and derived status
func (s *BatchService) GetBatch(ctx context.Context, id int64) (*dto.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if batch.FacultyID != nil {
		if faculty, err := s.userRepo.GetByID(ctx, *batch.FacultyID); err == nil {
			batch.Faculty = faculty
		}
	}

	counts, err := s.studentRepo.CountByBatch(ctx)
	if err != nil {
		return nil, err
	}
	batch.StudentCount = counts[batch.ID]

	resp := dto.FromBatch(batch, s.now())
	return &resp, nil
}

// ListBatches returns one page of batches joined with faculty names and
// per-batch student counts. Status is derived per batch for today.
func (s *BatchService) ListBatches(ctx context.Context, filter BatchListFilter) ([]dto.BatchResponse, dto.PaginationInfo, error) {
	batches, err := s.joinedBatches(ctx, nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(batches, filter)
}

// ListBatchesForFaculty returns one page of the batches assigned to a faculty member
func (s *BatchService) ListBatchesForFaculty(ctx context.Context, facultyID int64, filter BatchListFilter) ([]dto.BatchResponse, dto.PaginationInfo, error) {
	batches, err := s.joinedBatches(ctx, &facultyID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.pageOf(batches, filter)
}

func (s *BatchService) joinedBatches(ctx context.Context, facultyID *int64) ([]models.Batch, error) {
	var batches []models.Batch
	var err error
	if facultyID == nil {
		batches, err = s.batchRepo.ListAll(ctx)
	} else {
		batches, err = s.batchRepo.ListByFaculty(ctx, *facultyID)
	}
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.studentRepo.CountByBatch(ctx)
	if err != nil {
		return nil, err
	}

	userIdx := indexBy(users, func(u models.User) int64 { return u.ID })
	for i := range batches {
		batches[i].Faculty = lookupOpt(userIdx, batches[i].FacultyID)
		batches[i].StudentCount = counts[batches[i].ID]
	}

	return batches, nil
}

func (s *BatchService) pageOf(batches []models.Batch, filter BatchListFilter) ([]dto.BatchResponse, dto.PaginationInfo, error) {
	today := s.now()

	var facultyPred func(models.Batch) bool
	if filter.FacultyID != nil {
		want := *filter.FacultyID
		facultyPred = func(b models.Batch) bool {
			return b.FacultyID != nil && *b.FacultyID == want
		}
	}

	filtered := Filter(batches,
		FieldEquals(filter.Status, func(b models.Batch) string { return string(b.StatusOn(today)) }),
		facultyPred,
		SearchMatches(filter.Search,
			func(b models.Batch) string { return b.Name },
			func(b models.Batch) string { return b.CourseCode },
		),
	)

	page, info := Paginate(filtered, filter.Page)

	out := make([]dto.BatchResponse, 0, len(page))
	for i := range page {
		out = append(out, dto.FromBatch(&page[i], today))
	}

	return out, info, nil
}

// UpdateBatch replaces a batch's editable fields
func (s *BatchService) UpdateBatch(ctx context.Context, id int64, req *dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	startDate, endDate, err := parseBatchDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.FacultyID != nil {
		if err := s.checkFaculty(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
	}

	err = s.batchRepo.Update(ctx, id,
		&req.Name, &req.Description, &req.CourseCode, &req.Schedule,
		&startDate, &endDate, &req.Capacity, req.FacultyID)
	if err != nil {
		return nil, err
	}

	return s.GetBatch(ctx, id)
}

// BatchStatusCounts derives today's status for every batch and tallies them
func (s *BatchService) BatchStatusCounts(ctx context.Context) (map[models.BatchStatus]int, error) {
	batches, err := s.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	counts := make(map[models.BatchStatus]int)
	for i := range batches {
		counts[batches[i].StatusOn(today)]++
	}

	return counts, nil
}

func (s *BatchService) checkFaculty(ctx context.Context, facultyID int64) error {
	user, err := s.userRepo.GetByID(ctx, facultyID)
	if err != nil || user.RoleType != models.RoleFaculty {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

func parseBatchDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := helpers.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.ErrBadRequest
	}

	endDate, err := helpers.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.ErrBadRequest
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, apperrors.ErrBatchDateOrder
	}

	return startDate, endDate, nil
}

package services

import (
	"context"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

type studentStore interface {
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	ListAll(ctx context.Context) ([]models.StudentProfile, error)
	ListByBatchIDs(ctx context.Context, batchIDs []int64) ([]models.StudentProfile, error)
	UpdateAcademics(ctx context.Context, id int64, usn, college, branch, track, skillLevel *string, batchID *int64) error
	Approve(ctx context.Context, id int64, studentID string, batchID int64) error
	Reject(ctx context.Context, id int64) error
}

type identityLister interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type batchLister interface {
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	ListAll(ctx context.Context) ([]models.Batch, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]models.Batch, error)
}

// StudentListFilter narrows the student roster. Empty fields are ignored and
// the remaining filters are ANDed.
type StudentListFilter struct {
	ApprovalStatus string
	Track          string
	SkillLevel     string
	BatchID        *int64
	Search         string
	Page           int
}

// StudentService handles student profile reads, updates and the approval gate
type StudentService struct {
	studentRepo studentStore
	userRepo    identityLister
	batchRepo   batchLister
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo studentStore, userRepo identityLister, batchRepo batchLister) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		batchRepo:   batchRepo,
	}
}

// GetProfileByUserID retrieves a student profile with identity and batch attached
func (s *StudentService) GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachRelations(ctx, profile)
}

// GetProfile retrieves a student profile by its own id, relations attached
func (s *StudentService) GetProfile(ctx context.Context, id int64) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachRelations(ctx, profile)
}

func (s *StudentService) attachRelations(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error) {
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err == nil {
		profile.User = user
	}

	if profile.BatchID != nil {
		// A dangling batch reference degrades to the Unknown placeholder
		if batch, err := s.batchRepo.GetByID(ctx, *profile.BatchID); err == nil {
			profile.Batch = batch
		}
	}

	return profile, nil
}

// ListStudents returns one page of the joined student roster. The whole
// roster is loaded and joined in memory; cohorts are small enough that the
// simplicity beats a wide SQL join.
func (s *StudentService) ListStudents(ctx context.Context, filter StudentListFilter) ([]dto.StudentResponse, dto.PaginationInfo, error) {
	profiles, err := s.joinedProfiles(ctx, nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return s.pageOf(profiles, filter)
}

// ListStudentsForFaculty returns one page of the roster restricted to the
// batches assigned to the given faculty member.
func (s *StudentService) ListStudentsForFaculty(ctx context.Context, facultyID int64, filter StudentListFilter) ([]dto.StudentResponse, dto.PaginationInfo, error) {
	batches, err := s.batchRepo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	batchIDs := make([]int64, 0, len(batches))
	for _, b := range batches {
		batchIDs = append(batchIDs, b.ID)
	}

	profiles, err := s.joinedProfiles(ctx, batchIDs)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return s.pageOf(profiles, filter)
}

func (s *StudentService) joinedProfiles(ctx context.Context, batchIDs []int64) ([]models.StudentProfile, error) {
	var profiles []models.StudentProfile
	var err error
	if batchIDs == nil {
		profiles, err = s.studentRepo.ListAll(ctx)
	} else {
		profiles, err = s.studentRepo.ListByBatchIDs(ctx, batchIDs)
	}
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	batches, err := s.batchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	userIdx := indexBy(users, func(u models.User) int64 { return u.ID })
	batchIdx := indexBy(batches, func(b models.Batch) int64 { return b.ID })

	for i := range profiles {
		profiles[i].User = lookup(userIdx, profiles[i].UserID)
		profiles[i].Batch = lookupOpt(batchIdx, profiles[i].BatchID)
	}

	return profiles, nil
}

func (s *StudentService) pageOf(profiles []models.StudentProfile, filter StudentListFilter) ([]dto.StudentResponse, dto.PaginationInfo, error) {
	var batchPred func(models.StudentProfile) bool
	if filter.BatchID != nil {
		want := *filter.BatchID
		batchPred = func(p models.StudentProfile) bool {
			return p.BatchID != nil && *p.BatchID == want
		}
	}

	filtered := Filter(profiles,
		FieldEquals(filter.ApprovalStatus, func(p models.StudentProfile) string { return string(p.ApprovalStatus) }),
		FieldEquals(filter.Track, func(p models.StudentProfile) string { return string(p.Track) }),
		FieldEquals(filter.SkillLevel, func(p models.StudentProfile) string { return string(p.SkillLevel) }),
		batchPred,
		SearchMatches(filter.Search,
			func(p models.StudentProfile) string {
				if p.User != nil {
					return p.User.FullName()
				}
				return ""
			},
			func(p models.StudentProfile) string {
				if p.User != nil {
					return p.User.Email
				}
				return ""
			},
			func(p models.StudentProfile) string {
				if p.User != nil {
					return p.User.Phone
				}
				return ""
			},
			func(p models.StudentProfile) string {
				if p.StudentID != nil {
					return *p.StudentID
				}
				return ""
			},
			func(p models.StudentProfile) string { return p.USN },
		),
	)

	page, info := Paginate(filtered, filter.Page)

	out := make([]dto.StudentResponse, 0, len(page))
	for i := range page {
		out = append(out, dto.FromStudentProfile(&page[i]))
	}

	return out, info, nil
}

// UpdateOwnAcademics lets a student edit their academic fields while the
// profile is still pending. Once approved the fields are locked and only the
// admin path can change them.
func (s *StudentService) UpdateOwnAcademics(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.AcademicsLocked() {
		return nil, apperrors.ErrProfileLocked
	}

	// Batch assignment is admin-controlled even before approval
	if err := s.studentRepo.UpdateAcademics(ctx, profile.ID, req.USN, req.College, req.Branch, req.Track, req.SkillLevel, nil); err != nil {
		return nil, err
	}

	return s.GetProfileByUserID(ctx, userID)
}

// AdminUpdateStudent applies a partial update to any student profile,
// bypassing the academic lock.
func (s *StudentService) AdminUpdateStudent(ctx context.Context, profileID int64, req *dto.UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	if req.BatchID != nil {
		if _, err := s.batchRepo.GetByID(ctx, *req.BatchID); err != nil {
			return nil, err
		}
	}

	if err := s.studentRepo.UpdateAcademics(ctx, profileID, req.USN, req.College, req.Branch, req.Track, req.SkillLevel, req.BatchID); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, profileID)
}

// ApproveStudent approves a pending profile, assigning the official student
// id and a batch in the same transition.
func (s *StudentService) ApproveStudent(ctx context.Context, profileID int64, req *dto.ApproveStudentRequest) (*models.StudentProfile, error) {
	batch, err := s.batchRepo.GetByID(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}

	if batch.StatusOn(time.Now()) == models.BatchCompleted {
		return nil, apperrors.ErrBatchCompleted
	}

	if err := s.studentRepo.Approve(ctx, profileID, req.StudentID, req.BatchID); err != nil {
		return nil, err
	}

	logger.Info().Int64("profileID", profileID).Int64("batchID", req.BatchID).Msg("Student approved")
	return s.GetProfile(ctx, profileID)
}

// RejectStudent rejects a pending profile
func (s *StudentService) RejectStudent(ctx context.Context, profileID int64) (*models.StudentProfile, error) {
	if err := s.studentRepo.Reject(ctx, profileID); err != nil {
		return nil, err
	}

	logger.Info().Int64("profileID", profileID).Msg("Student rejected")
	return s.GetProfile(ctx, profileID)
}

package services

import (
	"context"
	"errors"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

type approvalCounter interface {
	CountByApprovalStatus(ctx context.Context) (map[models.ApprovalStatus]int, error)
}

type leaveCounter interface {
	CountByStatus(ctx context.Context) (map[models.LeaveStatus]int, error)
}

type queryCounter interface {
	CountUnresolved(ctx context.Context) (int, error)
}

type projectCounter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardService composes the per-role landing views. Each independent read
// fans out on its own goroutine and the first failure cancels the rest.
type DashboardService struct {
	studentService *StudentService
	batchService   *BatchService
	projectService *ProjectService
	leaveService   *LeaveService
	queryService   *QueryService

	studentCounts approvalCounter
	leaveCounts   leaveCounter
	queryCounts   queryCounter
	projectCounts projectCounter
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(studentService *StudentService, batchService *BatchService, projectService *ProjectService, leaveService *LeaveService, queryService *QueryService, studentCounts approvalCounter, leaveCounts leaveCounter, queryCounts queryCounter, projectCounts projectCounter) *DashboardService {
	return &DashboardService{
		studentService: studentService,
		batchService:   batchService,
		projectService: projectService,
		leaveService:   leaveService,
		queryService:   queryService,
		studentCounts:  studentCounts,
		leaveCounts:    leaveCounts,
		queryCounts:    queryCounts,
		projectCounts:  projectCounts,
	}
}

// StudentDashboard aggregates a student's profile, batch, leaves, queries and
// projects into one response.
func (s *DashboardService) StudentDashboard(ctx context.Context, userID int64) (*dto.StudentDashboard, error) {
	var dashboard dto.StudentDashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.studentService.GetProfileByUserID(gctx, userID)
		if err != nil {
			return err
		}
		dashboard.Profile = dto.FromStudentProfile(profile)

		if profile.BatchID != nil {
			batch, err := s.batchService.GetBatch(gctx, *profile.BatchID)
			if err != nil {
				// A dangling batch assignment should not sink the dashboard
				if errors.Is(err, apperrors.ErrBatchNotFound) {
					return nil
				}
				return err
			}
			dashboard.Batch = batch
		}
		return nil
	})

	g.Go(func() error {
		leaves, _, err := s.leaveService.ListLeavesForUser(gctx, userID, LeaveListFilter{Page: 1})
		if err != nil {
			return err
		}
		dashboard.LeaveRequests = leaves
		return nil
	})

	g.Go(func() error {
		queries, _, err := s.queryService.ListQueriesForUser(gctx, userID, QueryListFilter{Page: 1})
		if err != nil {
			return err
		}
		dashboard.Queries = queries
		return nil
	})

	g.Go(func() error {
		projects, _, err := s.projectService.ListProjectsForUser(gctx, userID, ProjectListFilter{Page: 1})
		if err != nil {
			return err
		}
		dashboard.Projects = projects
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}

// FacultyDashboard aggregates a faculty member's batches and their students
func (s *DashboardService) FacultyDashboard(ctx context.Context, facultyID int64) (*dto.FacultyDashboard, error) {
	var dashboard dto.FacultyDashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		batches, _, err := s.batchService.ListBatchesForFaculty(gctx, facultyID, BatchListFilter{Page: 1})
		if err != nil {
			return err
		}
		dashboard.Batches = batches
		return nil
	})

	g.Go(func() error {
		students, _, err := s.studentService.ListStudentsForFaculty(gctx, facultyID, StudentListFilter{Page: 1})
		if err != nil {
			return err
		}
		dashboard.Students = students
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}

// AdminDashboard aggregates the portal-wide counters
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	var dashboard dto.AdminDashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.studentCounts.CountByApprovalStatus(gctx)
		if err != nil {
			return err
		}
		dashboard.PendingStudents = counts[models.ApprovalPending]
		dashboard.ApprovedStudents = counts[models.ApprovalApproved]
		dashboard.RejectedStudents = counts[models.ApprovalRejected]
		return nil
	})

	g.Go(func() error {
		counts, err := s.batchService.BatchStatusCounts(gctx)
		if err != nil {
			return err
		}
		dashboard.UpcomingBatches = counts[models.BatchYetToStart]
		dashboard.OngoingBatches = counts[models.BatchOngoing]
		dashboard.CompletedBatches = counts[models.BatchCompleted]
		return nil
	})

	g.Go(func() error {
		counts, err := s.leaveCounts.CountByStatus(gctx)
		if err != nil {
			return err
		}
		dashboard.PendingLeaves = counts[models.LeavePending]
		return nil
	})

	g.Go(func() error {
		count, err := s.queryCounts.CountUnresolved(gctx)
		if err != nil {
			return err
		}
		dashboard.UnresolvedQueries = count
		return nil
	})

	g.Go(func() error {
		count, err := s.projectCounts.Count(gctx)
		if err != nil {
			return err
		}
		dashboard.TotalProjects = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/internhub/backend/internal/app/models"
)

func TestAdminDashboardCounters(t *testing.T) {
	admin := &models.User{ID: 1, FirstName: "Site", LastName: "Admin", RoleType: models.RoleAdmin}
	faculty := &models.User{ID: 2, FirstName: "Guide", LastName: "One", RoleType: models.RoleFaculty}
	userStore := newFakeUserStore(admin, faculty)

	students := newFakeStudentStore(
		&models.StudentProfile{ID: 1, UserID: 10, ApprovalStatus: models.ApprovalPending},
		&models.StudentProfile{ID: 2, UserID: 11, ApprovalStatus: models.ApprovalApproved},
		&models.StudentProfile{ID: 3, UserID: 12, ApprovalStatus: models.ApprovalApproved},
		&models.StudentProfile{ID: 4, UserID: 13, ApprovalStatus: models.ApprovalRejected},
	)

	batches := newFakeBatchStore(
		&models.Batch{ID: 1, StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		&models.Batch{ID: 2, StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	)

	reviewer := int64(1)
	now := time.Now()
	leaves := newFakeLeaveStore(
		&models.LeaveRequest{ID: 1, UserID: 10, Status: models.LeavePending},
		&models.LeaveRequest{ID: 2, UserID: 11, Status: models.LeavePending},
		&models.LeaveRequest{ID: 3, UserID: 11, Status: models.LeaveApproved, ReviewedBy: &reviewer, ReviewedAt: &now},
	)

	queries := newFakeQueryStore(
		&models.SupportQuery{ID: 1, UserID: 10, Resolved: false},
		&models.SupportQuery{ID: 2, UserID: 11, Resolved: true, ResolvedAt: &now},
	)

	projects := newFakeProjectStore()
	if _, err := projects.CreateWithLead(context.Background(), nil, &models.Project{Name: "P", LeadID: 10}); err != nil {
		t.Fatalf("seeding project failed: %v", err)
	}

	batchService := NewBatchService(batches, userStore, students)
	batchService.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }

	svc := NewDashboardService(
		NewStudentService(students, userStore, batches),
		batchService,
		NewProjectService(projects, userStore, fakeTxRunner()),
		NewLeaveService(leaves, userStore),
		NewQueryService(queries, userStore),
		students, leaves, queries, projects,
	)

	dashboard, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("AdminDashboard failed: %v", err)
	}

	if dashboard.PendingStudents != 1 || dashboard.ApprovedStudents != 2 || dashboard.RejectedStudents != 1 {
		t.Fatalf("student counters wrong: %+v", dashboard)
	}
	if dashboard.CompletedBatches != 1 || dashboard.OngoingBatches != 1 || dashboard.UpcomingBatches != 0 {
		t.Fatalf("batch counters wrong: %+v", dashboard)
	}
	if dashboard.PendingLeaves != 2 {
		t.Fatalf("pending leaves = %d, want 2", dashboard.PendingLeaves)
	}
	if dashboard.UnresolvedQueries != 1 {
		t.Fatalf("unresolved queries = %d, want 1", dashboard.UnresolvedQueries)
	}
	if dashboard.TotalProjects != 1 {
		t.Fatalf("total projects = %d, want 1", dashboard.TotalProjects)
	}
}

func TestStudentDashboardAggregates(t *testing.T) {
	student := &models.User{ID: 10, FirstName: "Asha", LastName: "Rao", RoleType: models.RoleStudent}
	userStore := newFakeUserStore(student)

	batchID := int64(2)
	students := newFakeStudentStore(&models.StudentProfile{
		ID: 1, UserID: 10, USN: "U1", ApprovalStatus: models.ApprovalApproved, BatchID: &batchID,
	})
	batches := newFakeBatchStore(&models.Batch{
		ID: 2, Name: "Spring",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	leaves := newFakeLeaveStore(&models.LeaveRequest{ID: 1, UserID: 10, Status: models.LeavePending})
	queries := newFakeQueryStore(&models.SupportQuery{ID: 1, UserID: 10})

	projects := newFakeProjectStore()
	if _, err := projects.CreateWithLead(context.Background(), nil, &models.Project{Name: "P", LeadID: 10}); err != nil {
		t.Fatalf("seeding project failed: %v", err)
	}

	svc := NewDashboardService(
		NewStudentService(students, userStore, batches),
		NewBatchService(batches, userStore, students),
		NewProjectService(projects, userStore, fakeTxRunner()),
		NewLeaveService(leaves, userStore),
		NewQueryService(queries, userStore),
		students, leaves, queries, projects,
	)

	dashboard, err := svc.StudentDashboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("StudentDashboard failed: %v", err)
	}

	if dashboard.Profile.Name != "Asha Rao" {
		t.Fatalf("profile name = %q", dashboard.Profile.Name)
	}
	if dashboard.Batch == nil || dashboard.Batch.Name != "Spring" {
		t.Fatalf("batch missing from dashboard: %+v", dashboard.Batch)
	}
	if len(dashboard.LeaveRequests) != 1 || len(dashboard.Queries) != 1 || len(dashboard.Projects) != 1 {
		t.Fatalf("aggregates wrong: %d leaves, %d queries, %d projects",
			len(dashboard.LeaveRequests), len(dashboard.Queries), len(dashboard.Projects))
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
)

func newBatchFixture() (*BatchService, *fakeBatchStore, *fakeStudentStore) {
	faculty := &models.User{ID: 3, FirstName: "Guide", LastName: "One", RoleType: models.RoleFaculty}
	student := &models.User{ID: 1, FirstName: "Asha", LastName: "Rao", RoleType: models.RoleStudent}
	batches := newFakeBatchStore()
	students := newFakeStudentStore()
	svc := NewBatchService(batches, newFakeUserStore(faculty, student), students)
	svc.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	return svc, batches, students
}

func TestCreateBatch(t *testing.T) {
	svc, _, _ := newBatchFixture()
	facultyID := int64(3)

	resp, err := svc.CreateBatch(context.Background(), &dto.CreateBatchRequest{
		Name:      "VLSI Autumn",
		StartDate: "2026-09-01",
		EndDate:   "2026-12-15",
		Capacity:  30,
		FacultyID: &facultyID,
	})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	if resp.Status != string(models.BatchYetToStart) {
		t.Fatalf("status = %q, want yet_to_start", resp.Status)
	}
	if resp.FacultyName != "Guide One" {
		t.Fatalf("faculty name = %q, want Guide One", resp.FacultyName)
	}
	if resp.StudentCount != 0 {
		t.Fatalf("new batch should have no students, got %d", resp.StudentCount)
	}
}

func TestCreateBatchValidations(t *testing.T) {
	svc, _, _ := newBatchFixture()
	ctx := context.Background()

	t.Run("start after end", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, &dto.CreateBatchRequest{
			Name: "B", StartDate: "2026-12-01", EndDate: "2026-09-01",
		})
		if !errors.Is(err, apperrors.ErrBatchDateOrder) {
			t.Fatalf("expected ErrBatchDateOrder, got %v", err)
		}
	})

	t.Run("single day batch is allowed", func(t *testing.T) {
		resp, err := svc.CreateBatch(ctx, &dto.CreateBatchRequest{
			Name: "B", StartDate: "2026-09-01", EndDate: "2026-09-01",
		})
		if err != nil {
			t.Fatalf("single day batch failed: %v", err)
		}
		if resp.StartDate != resp.EndDate {
			t.Fatalf("dates diverged: %s vs %s", resp.StartDate, resp.EndDate)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, &dto.CreateBatchRequest{
			Name: "B", StartDate: "September 1", EndDate: "2026-09-30",
		})
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("expected ErrBadRequest, got %v", err)
		}
	})

	t.Run("faculty must hold the faculty role", func(t *testing.T) {
		studentID := int64(1)
		_, err := svc.CreateBatch(ctx, &dto.CreateBatchRequest{
			Name: "B", StartDate: "2026-09-01", EndDate: "2026-09-30", FacultyID: &studentID,
		})
		if !errors.Is(err, apperrors.ErrFacultyNotFound) {
			t.Fatalf("expected ErrFacultyNotFound, got %v", err)
		}
	})
}

func TestListBatchesStatusFilterIsDerived(t *testing.T) {
	svc, store, _ := newBatchFixture()
	ctx := context.Background()

	seed := []struct {
		name       string
		start, end time.Time
	}{
		{"past", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"current", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"future", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, s := range seed {
		if _, err := store.Create(ctx, &models.Batch{Name: s.name, StartDate: s.start, EndDate: s.end}); err != nil {
			t.Fatalf("seeding batch %s failed: %v", s.name, err)
		}
	}

	tests := []struct {
		status string
		want   string
	}{
		{"completed", "past"},
		{"ongoing", "current"},
		{"yet_to_start", "future"},
	}
	for _, tt := range tests {
		got, _, err := svc.ListBatches(ctx, BatchListFilter{Status: tt.status, Page: 1})
		if err != nil {
			t.Fatalf("ListBatches(%s) failed: %v", tt.status, err)
		}
		if len(got) != 1 || got[0].Name != tt.want {
			t.Fatalf("status %s: got %+v, want single batch %q", tt.status, got, tt.want)
		}
	}
}

func TestBatchStatusCounts(t *testing.T) {
	svc, store, _ := newBatchFixture()
	ctx := context.Background()

	dates := [][2]time.Time{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)}, // boundary day counts as ongoing
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, d := range dates {
		if _, err := store.Create(ctx, &models.Batch{Name: "b", StartDate: d[0], EndDate: d[1]}); err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
	}

	counts, err := svc.BatchStatusCounts(ctx)
	if err != nil {
		t.Fatalf("BatchStatusCounts failed: %v", err)
	}
	if counts[models.BatchCompleted] != 1 || counts[models.BatchOngoing] != 2 || counts[models.BatchYetToStart] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestBatchStudentCountJoin(t *testing.T) {
	svc, store, students := newBatchFixture()
	ctx := context.Background()

	id, err := store.Create(ctx, &models.Batch{
		Name:      "b",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	for i := int64(1); i <= 3; i++ {
		students.profiles[i] = &models.StudentProfile{ID: i, UserID: i, BatchID: &id, ApprovalStatus: models.ApprovalApproved}
	}

	resp, err := svc.GetBatch(ctx, id)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if resp.StudentCount != 3 {
		t.Fatalf("student count = %d, want 3", resp.StudentCount)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
)

func strptr(s string) *string { return &s }

func newStudentFixture(status models.ApprovalStatus) (*StudentService, *fakeStudentStore, *fakeBatchStore) {
	user := &models.User{ID: 1, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", RoleType: models.RoleStudent}
	profile := &models.StudentProfile{
		ID: 10, UserID: 1, USN: "1AB21CS001", College: "ABC", Branch: "CSE",
		Track: models.TrackVLSI, SkillLevel: models.SkillBeginner, ApprovalStatus: status,
	}
	batch := &models.Batch{
		ID: 5, Name: "VLSI Spring",
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}

	students := newFakeStudentStore(profile)
	batches := newFakeBatchStore(batch)
	return NewStudentService(students, newFakeUserStore(user), batches), students, batches
}

func TestUpdateOwnAcademicsWhilePending(t *testing.T) {
	svc, _, _ := newStudentFixture(models.ApprovalPending)

	updated, err := svc.UpdateOwnAcademics(context.Background(), 1, &dto.UpdateStudentProfileRequest{
		Branch: strptr("ECE"),
		Track:  strptr("ai-ml"),
	})
	if err != nil {
		t.Fatalf("UpdateOwnAcademics failed: %v", err)
	}

	if updated.Branch != "ECE" || updated.Track != models.TrackAIML {
		t.Fatalf("update not applied: branch=%q track=%q", updated.Branch, updated.Track)
	}
	if updated.USN != "1AB21CS001" {
		t.Fatalf("untouched field changed: usn=%q", updated.USN)
	}
}

func TestUpdateOwnAcademicsLockedAfterApproval(t *testing.T) {
	svc, _, _ := newStudentFixture(models.ApprovalApproved)

	_, err := svc.UpdateOwnAcademics(context.Background(), 1, &dto.UpdateStudentProfileRequest{
		Branch: strptr("ECE"),
	})
	if !errors.Is(err, apperrors.ErrProfileLocked) {
		t.Fatalf("expected ErrProfileLocked, got %v", err)
	}
}

func TestAdminUpdateBypassesLock(t *testing.T) {
	svc, _, _ := newStudentFixture(models.ApprovalApproved)

	updated, err := svc.AdminUpdateStudent(context.Background(), 10, &dto.UpdateStudentProfileRequest{
		Branch: strptr("ECE"),
	})
	if err != nil {
		t.Fatalf("AdminUpdateStudent failed: %v", err)
	}
	if updated.Branch != "ECE" {
		t.Fatalf("admin update not applied: branch=%q", updated.Branch)
	}
}

func TestApproveStudent(t *testing.T) {
	svc, _, _ := newStudentFixture(models.ApprovalPending)

	updated, err := svc.ApproveStudent(context.Background(), 10, &dto.ApproveStudentRequest{
		StudentID: "INT-2026-001",
		BatchID:   5,
	})
	if err != nil {
		t.Fatalf("ApproveStudent failed: %v", err)
	}

	if updated.ApprovalStatus != models.ApprovalApproved {
		t.Fatalf("status = %q, want approved", updated.ApprovalStatus)
	}
	if updated.StudentID == nil || *updated.StudentID != "INT-2026-001" {
		t.Fatalf("student id not assigned: %v", updated.StudentID)
	}
	if updated.BatchID == nil || *updated.BatchID != 5 {
		t.Fatalf("batch not assigned: %v", updated.BatchID)
	}
}

func TestApproveStudentErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("already reviewed", func(t *testing.T) {
		svc, _, _ := newStudentFixture(models.ApprovalRejected)
		_, err := svc.ApproveStudent(ctx, 10, &dto.ApproveStudentRequest{StudentID: "X", BatchID: 5})
		if !errors.Is(err, apperrors.ErrStudentNotPending) {
			t.Fatalf("expected ErrStudentNotPending, got %v", err)
		}
	})

	t.Run("missing batch", func(t *testing.T) {
		svc, _, _ := newStudentFixture(models.ApprovalPending)
		_, err := svc.ApproveStudent(ctx, 10, &dto.ApproveStudentRequest{StudentID: "X", BatchID: 99})
		if !errors.Is(err, apperrors.ErrBatchNotFound) {
			t.Fatalf("expected ErrBatchNotFound, got %v", err)
		}
	})

	t.Run("completed batch", func(t *testing.T) {
		svc, _, batches := newStudentFixture(models.ApprovalPending)
		done := &models.Batch{
			ID: 6, Name: "Old",
			StartDate: time.Now().AddDate(0, -6, 0),
			EndDate:   time.Now().AddDate(0, -3, 0),
		}
		batches.batches[done.ID] = done

		_, err := svc.ApproveStudent(ctx, 10, &dto.ApproveStudentRequest{StudentID: "X", BatchID: 6})
		if !errors.Is(err, apperrors.ErrBatchCompleted) {
			t.Fatalf("expected ErrBatchCompleted, got %v", err)
		}
	})
}

func TestRejectStudent(t *testing.T) {
	svc, _, _ := newStudentFixture(models.ApprovalPending)

	updated, err := svc.RejectStudent(context.Background(), 10)
	if err != nil {
		t.Fatalf("RejectStudent failed: %v", err)
	}
	if updated.ApprovalStatus != models.ApprovalRejected {
		t.Fatalf("status = %q, want rejected", updated.ApprovalStatus)
	}
}

func TestListStudentsJoinsAndFilters(t *testing.T) {
	users := []*models.User{
		{ID: 1, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
		{ID: 2, FirstName: "Bhavna", LastName: "Iyer", Email: "bhavna@example.com"},
	}
	batchID := int64(5)
	profiles := []*models.StudentProfile{
		{ID: 10, UserID: 1, USN: "U1", Track: models.TrackVLSI, SkillLevel: models.SkillBeginner, ApprovalStatus: models.ApprovalApproved, BatchID: &batchID},
		{ID: 11, UserID: 2, USN: "U2", Track: models.TrackMERN, SkillLevel: models.SkillAdvanced, ApprovalStatus: models.ApprovalPending},
	}
	batch := &models.Batch{ID: 5, Name: "VLSI Spring", StartDate: time.Now(), EndDate: time.Now()}

	svc := NewStudentService(newFakeStudentStore(profiles...), newFakeUserStore(users...), newFakeBatchStore(batch))
	ctx := context.Background()

	all, info, err := svc.ListStudents(ctx, StudentListFilter{Page: 1})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(all) != 2 || info.TotalItems != 2 {
		t.Fatalf("expected 2 students, got %d (total %d)", len(all), info.TotalItems)
	}

	for _, s := range all {
		if s.Name == "Unknown" {
			t.Fatalf("identity join missing for profile %d", s.ID)
		}
	}

	vlsi, _, err := svc.ListStudents(ctx, StudentListFilter{Track: "vlsi", Page: 1})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(vlsi) != 1 || vlsi[0].BatchName != "VLSI Spring" {
		t.Fatalf("track filter or batch join wrong: %+v", vlsi)
	}

	byName, _, err := svc.ListStudents(ctx, StudentListFilter{Search: "bhavna", Page: 1})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(byName) != 1 || byName[0].USN != "U2" {
		t.Fatalf("search filter wrong: %+v", byName)
	}
}

func TestListStudentsSearchByPhoneAndStudentID(t *testing.T) {
	studentID := "INT-2026-001"
	users := []*models.User{
		{ID: 1, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210"},
		{ID: 2, FirstName: "Bhavna", LastName: "Iyer", Email: "bhavna@example.com", Phone: "9000000002"},
	}
	profiles := []*models.StudentProfile{
		{ID: 10, UserID: 1, USN: "U1", StudentID: &studentID, Track: models.TrackVLSI, SkillLevel: models.SkillBeginner, ApprovalStatus: models.ApprovalApproved},
		{ID: 11, UserID: 2, USN: "U2", Track: models.TrackMERN, SkillLevel: models.SkillAdvanced, ApprovalStatus: models.ApprovalPending},
	}

	svc := NewStudentService(newFakeStudentStore(profiles...), newFakeUserStore(users...), newFakeBatchStore())
	ctx := context.Background()

	byPhone, _, err := svc.ListStudents(ctx, StudentListFilter{Search: "9876543210", Page: 1})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].USN != "U1" {
		t.Fatalf("phone search wrong: %+v", byPhone)
	}

	byStudentID, _, err := svc.ListStudents(ctx, StudentListFilter{Search: "int-2026-001", Page: 1})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(byStudentID) != 1 || byStudentID[0].USN != "U1" {
		t.Fatalf("student id search wrong: %+v", byStudentID)
	}
}

func TestListStudentsPaginates(t *testing.T) {
	users := make([]*models.User, 0, 45)
	profiles := make([]*models.StudentProfile, 0, 45)
	for i := int64(1); i <= 45; i++ {
		users = append(users, &models.User{ID: i, FirstName: "S", LastName: fmt.Sprintf("%d", i)})
		profiles = append(profiles, &models.StudentProfile{
			ID: i, UserID: i, USN: fmt.Sprintf("U%d", i),
			Track: models.TrackJava, SkillLevel: models.SkillBeginner,
			ApprovalStatus: models.ApprovalPending,
		})
	}

	svc := NewStudentService(newFakeStudentStore(profiles...), newFakeUserStore(users...), newFakeBatchStore())

	last, info, err := svc.ListStudents(context.Background(), StudentListFilter{Page: 3})
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if info.TotalPages != 3 || info.CurrentPage != 3 {
		t.Fatalf("pagination info wrong: %+v", info)
	}
	if len(last) != 5 {
		t.Fatalf("last page has %d items, want 5", len(last))
	}
}

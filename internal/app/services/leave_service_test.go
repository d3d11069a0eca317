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

func newLeaveFixture() (*LeaveService, *fakeLeaveStore) {
	student := &models.User{ID: 1, FirstName: "Asha", LastName: "Rao", RoleType: models.RoleStudent}
	admin := &models.User{ID: 2, FirstName: "Site", LastName: "Admin", RoleType: models.RoleAdmin}
	leaves := newFakeLeaveStore()
	return NewLeaveService(leaves, newFakeUserStore(student, admin)), leaves
}

func TestCreateLeaveStartsPending(t *testing.T) {
	svc, _ := newLeaveFixture()

	resp, err := svc.CreateLeave(context.Background(), 1, &dto.CreateLeaveRequest{
		LeaveDate: "2026-09-01",
		Type:      "sick",
		Reason:    "fever",
	})
	if err != nil {
		t.Fatalf("CreateLeave failed: %v", err)
	}

	if resp.Status != string(models.LeavePending) {
		t.Fatalf("new leave status = %q, want pending", resp.Status)
	}
	if resp.RequesterName != "Asha Rao" {
		t.Fatalf("requester name = %q, want Asha Rao", resp.RequesterName)
	}
	if resp.ReviewerName != "" || resp.ReviewedAt != "" {
		t.Fatalf("new leave should have no reviewer, got %q at %q", resp.ReviewerName, resp.ReviewedAt)
	}
}

func TestCreateLeaveRejectsBadDate(t *testing.T) {
	svc, _ := newLeaveFixture()

	_, err := svc.CreateLeave(context.Background(), 1, &dto.CreateLeaveRequest{
		LeaveDate: "01/09/2026",
		Type:      "sick",
		Reason:    "fever",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for malformed date, got %v", err)
	}
}

func TestReviewSetsReviewerAndTimestamp(t *testing.T) {
	svc, store := newLeaveFixture()
	ctx := context.Background()

	created, err := svc.CreateLeave(ctx, 1, &dto.CreateLeaveRequest{
		LeaveDate: "2026-09-01", Type: "casual", Reason: "travel",
	})
	if err != nil {
		t.Fatalf("CreateLeave failed: %v", err)
	}

	resp, err := svc.ApproveLeave(ctx, created.ID, 2)
	if err != nil {
		t.Fatalf("ApproveLeave failed: %v", err)
	}

	if resp.Status != string(models.LeaveApproved) {
		t.Fatalf("status = %q, want approved", resp.Status)
	}
	if resp.ReviewerName != "Site Admin" {
		t.Fatalf("reviewer name = %q, want Site Admin", resp.ReviewerName)
	}
	if resp.ReviewedAt == "" {
		t.Fatalf("review timestamp missing")
	}

	stored, _ := store.GetByID(ctx, created.ID)
	if stored.ReviewedBy == nil || *stored.ReviewedBy != 2 {
		t.Fatalf("stored reviewer = %v, want 2", stored.ReviewedBy)
	}
}

func TestSecondReviewIsRejected(t *testing.T) {
	svc, _ := newLeaveFixture()
	ctx := context.Background()

	created, _ := svc.CreateLeave(ctx, 1, &dto.CreateLeaveRequest{
		LeaveDate: "2026-09-01", Type: "casual", Reason: "travel",
	})

	if _, err := svc.ApproveLeave(ctx, created.ID, 2); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	if _, err := svc.RejectLeave(ctx, created.ID, 2); !errors.Is(err, apperrors.ErrLeaveAlreadyReviewed) {
		t.Fatalf("expected ErrLeaveAlreadyReviewed, got %v", err)
	}
	if _, err := svc.ApproveLeave(ctx, created.ID, 2); !errors.Is(err, apperrors.ErrLeaveAlreadyReviewed) {
		t.Fatalf("re-approval should also fail, got %v", err)
	}
}

func TestReviewMissingLeave(t *testing.T) {
	svc, _ := newLeaveFixture()

	_, err := svc.ApproveLeave(context.Background(), 42, 2)
	if !errors.Is(err, apperrors.ErrLeaveNotFound) {
		t.Fatalf("expected ErrLeaveNotFound, got %v", err)
	}
}

func TestListLeavesFilters(t *testing.T) {
	svc, store := newLeaveFixture()
	ctx := context.Background()

	for i, typ := range []string{"sick", "casual", "sick"} {
		if _, err := svc.CreateLeave(ctx, 1, &dto.CreateLeaveRequest{
			LeaveDate: time.Date(2026, 9, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Type:      typ,
			Reason:    "r",
		}); err != nil {
			t.Fatalf("CreateLeave %d failed: %v", i, err)
		}
	}
	if err := store.Review(ctx, 1, models.LeaveApproved, 2); err != nil {
		t.Fatalf("seeding review failed: %v", err)
	}

	byType, _, err := svc.ListLeaves(ctx, LeaveListFilter{Type: "sick", Page: 1})
	if err != nil {
		t.Fatalf("ListLeaves failed: %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("sick filter: got %d, want 2", len(byType))
	}

	pendingSick, _, err := svc.ListLeaves(ctx, LeaveListFilter{Type: "sick", Status: "pending", Page: 1})
	if err != nil {
		t.Fatalf("ListLeaves failed: %v", err)
	}
	if len(pendingSick) != 1 {
		t.Fatalf("pending sick filter: got %d, want 1", len(pendingSick))
	}
}

package dto

import "github.com/internhub/backend/internal/app/models"

// CreateLeaveRequest represents a new leave request
type CreateLeaveRequest struct {
	LeaveDate string `json:"leaveDate" binding:"required" validate:"required,datetime=2006-01-02"`
	Type      string `json:"type" binding:"required" validate:"required,oneof=sick casual"`
	Reason    string `json:"reason" binding:"required" validate:"required"`
}

// LeaveResponse is a leave request with requester and reviewer joined in
type LeaveResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	RequesterName string `json:"requesterName"`
	LeaveDate     string `json:"leaveDate"`
	Type          string `json:"type"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	ReviewerName  string `json:"reviewerName,omitempty"`
	ReviewedAt    string `json:"reviewedAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// FromLeaveRequest converts a joined leave request into its response form
func FromLeaveRequest(l *models.LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		RequesterName: "Unknown",
		LeaveDate:     l.LeaveDate.Format("2006-01-02"),
		Type:          string(l.Type),
		Reason:        l.Reason,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if l.Requester != nil {
		resp.RequesterName = l.Requester.FullName()
	}
	if l.Reviewer != nil {
		resp.ReviewerName = l.Reviewer.FullName()
	}
	if l.ReviewedAt != nil {
		resp.ReviewedAt = l.ReviewedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return resp
}

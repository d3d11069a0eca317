package models

import (
	"time"
)

// LeaveRequest defines the leave model based on the 'leave_requests' table.
// ReviewedBy and ReviewedAt are set only on the transition out of pending.
type LeaveRequest struct {
	ID         int64       `json:"id" db:"id"`
	UserID     int64       `json:"userId" db:"user_id"`
	LeaveDate  time.Time   `json:"leaveDate" db:"leave_date"`
	Type       LeaveType   `json:"type" db:"leave_type"`
	Reason     string      `json:"reason" db:"reason"`
	Status     LeaveStatus `json:"status" db:"status"`
	ReviewedBy *int64      `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`

	Requester *User `json:"requester,omitempty"` // relation, no db tag
	Reviewer  *User `json:"reviewer,omitempty"`  // relation, no db tag
}

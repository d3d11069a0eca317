package models

import (
	"time"
)

// SupportQuery defines the admin-query model based on the 'support_queries' table
type SupportQuery struct {
	ID          int64         `json:"id" db:"id"`
	UserID      int64         `json:"userId" db:"user_id"`
	Title       string        `json:"title" db:"title"`
	Category    QueryCategory `json:"category" db:"category"`
	Description string        `json:"description" db:"description"`
	Resolved    bool          `json:"resolved" db:"resolved"`
	ResolvedAt  *time.Time    `json:"resolvedAt,omitempty" db:"resolved_at"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`

	Submitter *User `json:"submitter,omitempty"` // relation, no db tag
}

package models

import (
	"time"
)

// MaxProjectMembers is the team size cap, lead included
const MaxProjectMembers = 5

// Project defines the project model based on the 'projects' table
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	LeadID      int64     `json:"leadId" db:"lead_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Lead    *User           `json:"lead,omitempty"`    // relation, no db tag
	Members []ProjectMember `json:"members,omitempty"` // relation, no db tag
}

// ProjectMember defines a membership row based on the 'project_members' table
type ProjectMember struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`

	User *User `json:"user,omitempty"` // relation, no db tag
}

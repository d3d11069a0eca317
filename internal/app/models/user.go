package models

import (
	"time"
)

// User defines the identity model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"`
	FirstName   string     `json:"firstName" db:"first_name"`
	LastName    string     `json:"lastName" db:"last_name"`
	Phone       string     `json:"phone" db:"phone"`
	RoleType    RoleType   `json:"roleType" db:"role_type"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	AvatarPath  *string    `json:"avatarPath,omitempty" db:"avatar_path"`
	ResumePath  *string    `json:"resumePath,omitempty" db:"resume_path"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the display name used in search and listings
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// StudentProfile defines the student model based on the 'student_profiles' table.
// Academic fields (USN, College, Branch, Track, SkillLevel) become immutable
// once ApprovalStatus is approved.
type StudentProfile struct {
	ID             int64          `json:"id" db:"id"`
	UserID         int64          `json:"userId" db:"user_id"`
	StudentID      *string        `json:"studentId,omitempty" db:"student_id"` // assigned on approval
	USN            string         `json:"usn" db:"usn"`
	College        string         `json:"college" db:"college"`
	Branch         string         `json:"branch" db:"branch"`
	Track          Track          `json:"track" db:"track"`
	SkillLevel     SkillLevel     `json:"skillLevel" db:"skill_level"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	BatchID        *int64         `json:"batchId,omitempty" db:"batch_id"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	User  *User  `json:"user,omitempty"`  // relation, no db tag
	Batch *Batch `json:"batch,omitempty"` // relation, no db tag
}

// AcademicsLocked reports whether academic fields may no longer be changed
func (p *StudentProfile) AcademicsLocked() bool {
	return p.ApprovalStatus == ApprovalApproved
}

package dto

import "github.com/internhub/backend/internal/app/models"

// UpdateProfileRequest is a partial update of the mutable identity fields
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10"`
}

// UpdateStudentProfileRequest is a partial update of a student profile.
// Academic fields are rejected once the profile is approved.
type UpdateStudentProfileRequest struct {
	USN        *string `json:"usn,omitempty" validate:"omitempty,min=1"`
	College    *string `json:"college,omitempty" validate:"omitempty,min=1"`
	Branch     *string `json:"branch,omitempty" validate:"omitempty,min=1"`
	Track      *string `json:"track,omitempty" validate:"omitempty,oneof=vlsi ai-ml mern java"`
	SkillLevel *string `json:"skillLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	BatchID    *int64  `json:"batchId,omitempty" validate:"omitempty,min=1"`
}

// ApproveStudentRequest assigns the student id and batch on approval
type ApproveStudentRequest struct {
	StudentID string `json:"studentId" binding:"required" validate:"required"`
	BatchID   int64  `json:"batchId" binding:"required" validate:"required,min=1"`
}

// StudentResponse is a student profile joined with its identity and batch
type StudentResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	StudentID      *string `json:"studentId,omitempty"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	USN            string  `json:"usn"`
	College        string  `json:"college"`
	Branch         string  `json:"branch"`
	Track          string  `json:"track"`
	SkillLevel     string  `json:"skillLevel"`
	ApprovalStatus string  `json:"approvalStatus"`
	BatchID        *int64  `json:"batchId,omitempty"`
	BatchName      string  `json:"batchName"`
}

// FromStudentProfile converts a joined profile into its response form.
// Missing relations degrade to "Unknown" placeholders, never a failure.
func FromStudentProfile(p *models.StudentProfile) StudentResponse {
	resp := StudentResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		StudentID:      p.StudentID,
		Name:           "Unknown",
		USN:            p.USN,
		College:        p.College,
		Branch:         p.Branch,
		Track:          string(p.Track),
		SkillLevel:     string(p.SkillLevel),
		ApprovalStatus: string(p.ApprovalStatus),
		BatchID:        p.BatchID,
	}

	if p.User != nil {
		resp.Name = p.User.FullName()
		resp.Email = p.User.Email
		resp.Phone = p.User.Phone
	}
	if p.Batch != nil {
		resp.BatchName = p.Batch.Name
	}

	return resp
}

package dto

import (
	"time"

	"github.com/internhub/backend/internal/app/models"
)

// CreateBatchRequest represents the request to create a batch
type CreateBatchRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Description string `json:"description"`
	CourseCode  string `json:"courseCode"`
	StartDate   string `json:"startDate" binding:"required" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" binding:"required" validate:"required,datetime=2006-01-02"`
	Capacity    int    `json:"capacity" validate:"omitempty,min=1"`
	Schedule    string `json:"schedule"`
	FacultyID   *int64 `json:"facultyId,omitempty" validate:"omitempty,min=1"`
}

// UpdateBatchRequest represents the request to update a batch
type UpdateBatchRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Description string `json:"description"`
	CourseCode  string `json:"courseCode"`
	StartDate   string `json:"startDate" binding:"required" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" binding:"required" validate:"required,datetime=2006-01-02"`
	Capacity    int    `json:"capacity" validate:"omitempty,min=1"`
	Schedule    string `json:"schedule"`
	FacultyID   *int64 `json:"facultyId,omitempty" validate:"omitempty,min=1"`
}

// BatchResponse is a batch with its derived status, faculty name and student count
type BatchResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CourseCode   string `json:"courseCode"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Capacity     int    `json:"capacity"`
	Schedule     string `json:"schedule"`
	Status       string `json:"status"`
	FacultyID    *int64 `json:"facultyId,omitempty"`
	FacultyName  string `json:"facultyName"`
	StudentCount int    `json:"studentCount"`
}

// FromBatch converts a joined batch into its response form, deriving status
// for the given day.
func FromBatch(b *models.Batch, today time.Time) BatchResponse {
	resp := BatchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		CourseCode:   b.CourseCode,
		StartDate:    b.StartDate.Format("2006-01-02"),
		EndDate:      b.EndDate.Format("2006-01-02"),
		Capacity:     b.Capacity,
		Schedule:     b.Schedule,
		Status:       string(b.StatusOn(today)),
		FacultyID:    b.FacultyID,
		FacultyName:  "Unknown",
		StudentCount: b.StudentCount,
	}

	if b.Faculty != nil {
		resp.FacultyName = b.Faculty.FullName()
	}

	return resp
}

package models

import (
	"time"
)

// BatchStatus is derived from the batch date range, never stored
type BatchStatus string

const (
	BatchYetToStart BatchStatus = "yet_to_start"
	BatchOngoing    BatchStatus = "ongoing"
	BatchCompleted  BatchStatus = "completed"
)

// Batch defines a cohort of students based on the 'batches' table
type Batch struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CourseCode  string    `json:"courseCode" db:"course_code"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Schedule    string    `json:"schedule" db:"schedule"`
	FacultyID   *int64    `json:"facultyId,omitempty" db:"faculty_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Faculty      *User `json:"faculty,omitempty"` // relation, no db tag
	StudentCount int   `json:"studentCount"`      // aggregate, no db column
}

// truncateToDate drops the time-of-day component so status never flickers
// within a single day.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BatchStatusOn derives the batch status for a given day. Comparison is on
// calendar date only: yet_to_start before the start date, completed after the
// end date, ongoing otherwise.
func BatchStatusOn(startDate, endDate, today time.Time) BatchStatus {
	day := truncateToDate(today)
	start := truncateToDate(startDate)
	end := truncateToDate(endDate)

	switch {
	case day.Before(start):
		return BatchYetToStart
	case day.After(end):
		return BatchCompleted
	default:
		return BatchOngoing
	}
}

// StatusOn derives this batch's status for a given day
func (b *Batch) StatusOn(today time.Time) BatchStatus {
	return BatchStatusOn(b.StartDate, b.EndDate, today)
}

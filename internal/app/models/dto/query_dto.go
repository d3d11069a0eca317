package dto

import "github.com/internhub/backend/internal/app/models"

// CreateQueryRequest represents a new support query
type CreateQueryRequest struct {
	Title       string `json:"title" binding:"required" validate:"required"`
	Category    string `json:"category" binding:"required" validate:"required,oneof=course faculty schedule work other"`
	Description string `json:"description" binding:"required" validate:"required"`
}

// QueryResponse is a support query with its submitter joined in
type QueryResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	SubmitterName string `json:"submitterName"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Resolved      bool   `json:"resolved"`
	ResolvedAt    string `json:"resolvedAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// FromSupportQuery converts a joined support query into its response form
func FromSupportQuery(q *models.SupportQuery) QueryResponse {
	resp := QueryResponse{
		ID:            q.ID,
		UserID:        q.UserID,
		SubmitterName: "Unknown",
		Title:         q.Title,
		Category:      string(q.Category),
		Description:   q.Description,
		Resolved:      q.Resolved,
		CreatedAt:     q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if q.Submitter != nil {
		resp.SubmitterName = q.Submitter.FullName()
	}
	if q.ResolvedAt != nil {
		resp.ResolvedAt = q.ResolvedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return resp
}

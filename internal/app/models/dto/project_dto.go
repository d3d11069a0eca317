package dto

import "github.com/internhub/backend/internal/app/models"

// CreateProjectRequest represents the request to create a project. The
// creator becomes the lead and sole initial member.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Description string `json:"description"`
}

// AddMemberRequest looks up the candidate by exact phone number match
type AddMemberRequest struct {
	Phone string `json:"phone" binding:"required" validate:"required,min=10"`
}

// ProjectMemberResponse is one member row with its identity attached
type ProjectMemberResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	IsLead bool   `json:"isLead"`
}

// ProjectResponse is a project with its lead and members joined in
type ProjectResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	LeadID      int64                   `json:"leadId"`
	LeadName    string                  `json:"leadName"`
	CreatedAt   string                  `json:"createdAt"`
	Members     []ProjectMemberResponse `json:"members"`
}

// FromProject converts a joined project into its response form
func FromProject(p *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		LeadID:      p.LeadID,
		LeadName:    "Unknown",
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Members:     make([]ProjectMemberResponse, 0, len(p.Members)),
	}

	if p.Lead != nil {
		resp.LeadName = p.Lead.FullName()
	}

	for _, m := range p.Members {
		member := ProjectMemberResponse{
			UserID: m.UserID,
			Name:   "Unknown",
			IsLead: m.UserID == p.LeadID,
		}
		if m.User != nil {
			member.Name = m.User.FullName()
			member.Email = m.User.Email
			member.Phone = m.User.Phone
		}
		resp.Members = append(resp.Members, member)
	}

	return resp
}

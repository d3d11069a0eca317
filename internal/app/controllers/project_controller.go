package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/middleware"
	"github.com/internhub/backend/internal/pkg/helpers"
)

// ProjectController handles project and team membership operations
type ProjectController struct {
	projectService *services.ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService *services.ProjectService, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		logger:         logger,
	}
}

func projectFilterFromQuery(ctx *gin.Context) services.ProjectListFilter {
	return services.ProjectListFilter{
		Search: ctx.Query("search"),
		Page:   helpers.ParsePageParam(ctx),
	}
}

// CreateProject registers a new project with the caller as team lead
// @Summary Create a project
// @Description Creates a project. The caller becomes the team lead and its first member in the same step.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.APIResponse{data=dto.ProjectResponse} "Created project"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	project, err := c.projectService.CreateProject(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("projectID", project.ID).Int64("leadID", userID).Msg("Project created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// GetProject returns one project with its member roster
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project id"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	project, err := c.projectService.GetProject(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// ListProjects returns one page of every project
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Param search query string false "Case-insensitive substring over title and description"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of projects"
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	projects, pagination, err := c.projectService.ListProjects(ctx.Request.Context(), projectFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: projects, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListMyProjects returns the projects the caller belongs to
// @Summary List my projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of projects"
// @Router /projects/mine [get]
func (c *ProjectController) ListMyProjects(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	projects, pagination, err := c.projectService.ListProjectsForUser(ctx.Request.Context(), userID, projectFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: projects, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// AddMember adds a teammate looked up by phone number
// @Summary Add a project member
// @Description Only the team lead can add members. The teammate is looked up by exact phone number and teams cap at five members including the lead.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project id"
// @Param request body dto.AddMemberRequest true "Teammate phone number"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project with updated roster"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the team lead"
// @Failure 404 {object} dto.ErrorResponse "No account with that phone"
// @Failure 409 {object} dto.ErrorResponse "Already a member or team full"
// @Router /projects/{id}/members [post]
func (c *ProjectController) AddMember(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	project, err := c.projectService.AddMember(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

// RemoveMember removes a teammate from the project
// @Summary Remove a project member
// @Description Only the team lead can remove members, and the lead cannot remove themselves.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project id"
// @Param memberId path int true "Member user id"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse} "Project with updated roster"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the team lead"
// @Failure 404 {object} dto.ErrorResponse "Member not on this project"
// @Router /projects/{id}/members/{memberId} [delete]
func (c *ProjectController) RemoveMember(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(ctx, "memberId")
	if !ok {
		return
	}

	project, err := c.projectService.RemoveMember(ctx.Request.Context(), id, userID, memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: project, Timestamp: time.Now()})
}

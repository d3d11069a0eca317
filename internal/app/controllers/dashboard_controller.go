package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/middleware"
)

// DashboardController serves the role-specific landing views
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// StudentDashboard aggregates the caller's profile, batch, projects, leaves and queries
// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboard} "Dashboard"
// @Router /dashboard/student [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}

// FacultyDashboard summarizes the caller's batches and their students
// @Summary Faculty dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FacultyDashboard} "Dashboard"
// @Router /dashboard/faculty [get]
func (c *DashboardController) FacultyDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.FacultyDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}

// AdminDashboard summarizes portal-wide counters
// @Summary Admin dashboard
// @Description Portal-wide counts: approvals by status, batches by derived status, pending leaves, unresolved queries and projects.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboard} "Dashboard"
// @Router /dashboard/admin [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}

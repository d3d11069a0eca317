package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/middleware"
	"github.com/internhub/backend/internal/pkg/helpers"
)

// LeaveController handles leave request operations
type LeaveController struct {
	leaveService *services.LeaveService
	logger       zerolog.Logger
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService *services.LeaveService, logger zerolog.Logger) *LeaveController {
	return &LeaveController{
		leaveService: leaveService,
		logger:       logger,
	}
}

func leaveFilterFromQuery(ctx *gin.Context) services.LeaveListFilter {
	return services.LeaveListFilter{
		Status: ctx.Query("status"),
		Type:   ctx.Query("type"),
		Search: ctx.Query("search"),
		Page:   helpers.ParsePageParam(ctx),
	}
}

// CreateLeave submits a new leave request for the caller
// @Summary Request leave
// @Description Submits a leave request. New requests always start in the pending state.
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLeaveRequest true "Leave details"
// @Success 201 {object} dto.APIResponse{data=dto.LeaveResponse} "Submitted request"
// @Failure 400 {object} dto.ErrorResponse "Malformed dates"
// @Router /leaves [post]
func (c *LeaveController) CreateLeave(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateLeaveRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	leave, err := c.leaveService.CreateLeave(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: leave, Timestamp: time.Now()})
}

// GetLeave returns one leave request
// @Summary Get a leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request id"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveResponse} "Leave request"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /leaves/{id} [get]
func (c *LeaveController) GetLeave(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	leave, err := c.leaveService.GetLeave(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: leave, Timestamp: time.Now()})
}

// ListLeaves returns one page of every leave request
// @Summary List leave requests
// @Description Admin view of every leave request. Filters AND together.
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Param status query string false "pending, approved or rejected"
// @Param type query string false "Leave type"
// @Param search query string false "Case-insensitive substring over reason and requester name"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of requests"
// @Router /leaves [get]
func (c *LeaveController) ListLeaves(ctx *gin.Context) {
	leaves, pagination, err := c.leaveService.ListLeaves(ctx.Request.Context(), leaveFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: leaves, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListMyLeaves returns the caller's own leave requests
// @Summary List my leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of requests"
// @Router /leaves/mine [get]
func (c *LeaveController) ListMyLeaves(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	leaves, pagination, err := c.leaveService.ListLeavesForUser(ctx.Request.Context(), userID, leaveFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: leaves, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ApproveLeave approves a pending leave request
// @Summary Approve a leave request
// @Description Approves a pending request and records the reviewer. A request can only be reviewed once.
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request id"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveResponse} "Approved request"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /leaves/{id}/approve [post]
func (c *LeaveController) ApproveLeave(ctx *gin.Context) {
	c.review(ctx, c.leaveService.ApproveLeave)
}

// RejectLeave rejects a pending leave request
// @Summary Reject a leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request id"
// @Success 200 {object} dto.APIResponse{data=dto.LeaveResponse} "Rejected request"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /leaves/{id}/reject [post]
func (c *LeaveController) RejectLeave(ctx *gin.Context) {
	c.review(ctx, c.leaveService.RejectLeave)
}

func (c *LeaveController) review(ctx *gin.Context, decide func(context.Context, int64, int64) (*dto.LeaveResponse, error)) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	leave, err := decide(ctx.Request.Context(), id, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("leaveID", id).Int64("reviewerID", reviewerID).Str("status", leave.Status).Msg("Leave reviewed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: leave, Timestamp: time.Now()})
}

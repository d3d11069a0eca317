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

// BatchController handles batch administration operations
type BatchController struct {
	batchService *services.BatchService
	logger       zerolog.Logger
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService *services.BatchService, logger zerolog.Logger) *BatchController {
	return &BatchController{
		batchService: batchService,
		logger:       logger,
	}
}

func batchFilterFromQuery(ctx *gin.Context) services.BatchListFilter {
	return services.BatchListFilter{
		Status:    ctx.Query("status"),
		FacultyID: queryInt64(ctx, "facultyId"),
		Search:    ctx.Query("search"),
		Page:      helpers.ParsePageParam(ctx),
	}
}

// CreateBatch creates a new internship batch
// @Summary Create a batch
// @Description Creates a batch with a date window and an assigned faculty member. Status is always derived from the dates, never stored.
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.APIResponse{data=dto.BatchResponse} "Created batch"
// @Failure 400 {object} dto.ErrorResponse "Malformed dates or start after end"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	batch, err := c.batchService.CreateBatch(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("batchID", batch.ID).Str("name", batch.Name).Msg("Batch created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: batch, Timestamp: time.Now()})
}

// GetBatch returns one batch with its derived status and student count
// @Summary Get a batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch id"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse} "Batch"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /batches/{id} [get]
func (c *BatchController) GetBatch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	batch, err := c.batchService.GetBatch(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: batch, Timestamp: time.Now()})
}

// ListBatches returns one page of batches
// @Summary List batches
// @Description Filters AND together. Status filters on the derived value: yet_to_start, ongoing or completed.
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Param status query string false "Derived status"
// @Param facultyId query int false "Assigned faculty id"
// @Param search query string false "Case-insensitive substring over name and course code"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of batches"
// @Router /batches [get]
func (c *BatchController) ListBatches(ctx *gin.Context) {
	batches, pagination, err := c.batchService.ListBatches(ctx.Request.Context(), batchFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: batches, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListMyBatches returns the batches assigned to the calling faculty member
// @Summary List my batches
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of batches"
// @Router /faculty/batches [get]
func (c *BatchController) ListMyBatches(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	batches, pagination, err := c.batchService.ListBatchesForFaculty(ctx.Request.Context(), userID, batchFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: batches, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// UpdateBatch applies a partial batch edit
// @Summary Update a batch
// @Description Partial update. Date edits are re-validated so the start never lands after the end.
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch id"
// @Param request body dto.UpdateBatchRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse} "Updated batch"
// @Failure 400 {object} dto.ErrorResponse "Malformed dates or start after end"
// @Router /batches/{id} [patch]
func (c *BatchController) UpdateBatch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: batch, Timestamp: time.Now()})
}

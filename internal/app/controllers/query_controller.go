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

// QueryController handles support query operations
type QueryController struct {
	queryService *services.QueryService
	logger       zerolog.Logger
}

// NewQueryController creates a new QueryController
func NewQueryController(queryService *services.QueryService, logger zerolog.Logger) *QueryController {
	return &QueryController{
		queryService: queryService,
		logger:       logger,
	}
}

func queryFilterFromQuery(ctx *gin.Context) services.QueryListFilter {
	return services.QueryListFilter{
		Category: ctx.Query("category"),
		Resolved: queryBool(ctx, "resolved"),
		Search:   ctx.Query("search"),
		Page:     helpers.ParsePageParam(ctx),
	}
}

// CreateQuery submits a new support query for the caller
// @Summary Raise a support query
// @Tags queries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQueryRequest true "Query details"
// @Success 201 {object} dto.APIResponse{data=dto.QueryResponse} "Submitted query"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /queries [post]
func (c *QueryController) CreateQuery(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateQueryRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	query, err := c.queryService.CreateQuery(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: query, Timestamp: time.Now()})
}

// GetQuery returns one support query
// @Summary Get a support query
// @Tags queries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Query id"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResponse} "Query"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /queries/{id} [get]
func (c *QueryController) GetQuery(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	query, err := c.queryService.GetQuery(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: query, Timestamp: time.Now()})
}

// ListQueries returns one page of every support query
// @Summary List support queries
// @Description Admin view of every query. The resolved filter is tri-state: omit it to see both.
// @Tags queries
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Param category query string false "Query category"
// @Param resolved query bool false "Resolution state"
// @Param search query string false "Case-insensitive substring over subject and body"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of queries"
// @Router /queries [get]
func (c *QueryController) ListQueries(ctx *gin.Context) {
	queries, pagination, err := c.queryService.ListQueries(ctx.Request.Context(), queryFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: queries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListMyQueries returns the caller's own support queries
// @Summary List my support queries
// @Tags queries
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One page of queries"
// @Router /queries/mine [get]
func (c *QueryController) ListMyQueries(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	queries, pagination, err := c.queryService.ListQueriesForUser(ctx.Request.Context(), userID, queryFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: queries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ResolveQuery marks a support query resolved
// @Summary Resolve a support query
// @Description Marks a query resolved. Resolving an already resolved query changes nothing.
// @Tags queries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Query id"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResponse} "Resolved query"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /queries/{id}/resolve [post]
func (c *QueryController) ResolveQuery(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	query, err := c.queryService.ResolveQuery(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: query, Timestamp: time.Now()})
}

// ReopenQuery clears a query's resolution
// @Summary Reopen a support query
// @Description Clears the resolved flag and resolution time so the query counts as open again.
// @Tags queries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Query id"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResponse} "Reopened query"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /queries/{id}/reopen [post]
func (c *QueryController) ReopenQuery(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	query, err := c.queryService.ReopenQuery(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: query, Timestamp: time.Now()})
}

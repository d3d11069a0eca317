package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/internhub/backend/internal/middleware"
	"github.com/internhub/backend/internal/pkg/apperrors"
)

// currentUserID reads the authenticated user id, writing a 401 when absent
func currentUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter, writing a 400 on garbage
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(ctx, apperrors.ErrBadRequest)
		return 0, false
	}
	return id, true
}

// queryInt64 parses an optional numeric query parameter
func queryInt64(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryBool parses an optional boolean query parameter
func queryBool(ctx *gin.Context, name string) *bool {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/logger"
)

type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
}

// Order matters only for readability; sentinels never overlap.
var errorMappings = []errorMapping{
	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},

	// Authorization
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrStudentNotApproved, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrNotProjectLead, http.StatusForbidden, dto.ErrorCodeForbidden},

	// Missing resources
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrBatchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrFacultyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrProjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrMemberNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrLeaveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrQueryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},

	// Bad input
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBatchDateOrder, http.StatusBadRequest, dto.ErrorCodeValidationFailed},

	// State conflicts
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrPhoneAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrUSNAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrStudentProfileExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrStudentNotPending, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrProfileLocked, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrBatchCompleted, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrLeaveAlreadyReviewed, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrTeamFull, http.StatusConflict, dto.ErrorCodeResourceConflict},
	{apperrors.ErrAlreadyMember, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
}

// HandleAPIError maps a service error onto the standard error envelope. The
// sentinel's own message is what the client sees; unexpected errors stay
// opaque behind a 500.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		err = custom.Err
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, m.sentinel.Error())))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/middleware"
)

// Upload size caps in bytes
const (
	maxAvatarSize = 2 << 20
	maxResumeSize = 5 << 20
)

// UserController handles identity profile and file attachment operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// UpdateProfile applies a partial update of the caller's contact fields
// @Summary Update my contact details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse "Updated identity"
// @Failure 409 {object} dto.ErrorResponse "Phone already registered"
// @Router /users/me [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// Me returns the caller's identity row with signed attachment URLs
// @Summary Get my identity
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Identity with signed file URLs"
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	avatarURL, _ := c.userService.AvatarURL(ctx.Request.Context(), user)
	resumeURL, _ := c.userService.ResumeURL(ctx.Request.Context(), user)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"user":      user,
			"avatarUrl": avatarURL,
			"resumeUrl": resumeURL,
		},
		Timestamp: time.Now(),
	})
}

// UploadAvatar stores a new profile picture for the caller
// @Summary Upload my avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse "Stored file path"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	c.upload(ctx, maxAvatarSize, c.userService.UploadAvatar)
}

// UploadResume stores a new resume for the caller
// @Summary Upload my resume
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume document"
// @Success 200 {object} dto.APIResponse "Stored file path"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /users/me/resume [post]
func (c *UserController) UploadResume(ctx *gin.Context) {
	c.upload(ctx, maxResumeSize, c.userService.UploadResume)
}

func (c *UserController) upload(ctx *gin.Context, maxSize int64, save func(context.Context, int64, *multipart.FileHeader) (string, error)) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if file.Size > maxSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File too large").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	path, err := save(ctx.Request.Context(), userID, file)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("File upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"path": path}, Timestamp: time.Now()})
}

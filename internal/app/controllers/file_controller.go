package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/filestorage"
)

// FileController serves stored files through signed, expiring links
type FileController struct {
	storage filestorage.FileStorage
	local   *filestorage.LocalStorage
	logger  zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(local *filestorage.LocalStorage, logger zerolog.Logger) *FileController {
	return &FileController{
		storage: local,
		local:   local,
		logger:  logger,
	}
}

// Download serves a stored file after verifying the URL signature
// @Summary Download a stored file
// @Description Serves a file referenced by a signed URL. The signature covers the path and expiry.
// @Tags files
// @Produce octet-stream
// @Param path path string true "Stored file path"
// @Param expires query string true "Unix expiry timestamp"
// @Param signature query string true "HMAC signature"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} dto.ErrorResponse "Signature invalid or expired"
// @Router /files/{path} [get]
func (c *FileController) Download(ctx *gin.Context) {
	path := strings.TrimPrefix(ctx.Param("path"), "/")
	expires := ctx.Query("expires")
	signature := ctx.Query("signature")

	if !c.storage.VerifySignedPath(path, expires, signature) {
		c.logger.Warn().Str("path", path).Msg("Rejected file download with bad signature")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Download link invalid or expired")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.File(c.local.FullPath(path))
}

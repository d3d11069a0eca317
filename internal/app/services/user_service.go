package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/filestorage"
	"github.com/internhub/backend/internal/pkg/logger"
)

type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone *string) error
	SetAvatarPath(ctx context.Context, id int64, path string) error
	SetResumePath(ctx context.Context, id int64, path string) error
}

type fileStore interface {
	Create(ctx context.Context, file *models.StoredFile) (int64, error)
	DeleteByPath(ctx context.Context, path string) error
}

// UserService handles identity profile updates and file attachments
type UserService struct {
	userRepo     userStore
	fileRepo     fileStore
	storage      filestorage.FileStorage
	signedURLTTL time.Duration
}

// NewUserService creates a new UserService
func NewUserService(userRepo userStore, fileRepo fileStore, storage filestorage.FileStorage, signedURLTTL time.Duration) *UserService {
	return &UserService{
		userRepo:     userRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		signedURLTTL: signedURLTTL,
	}
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update of the caller's contact fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// UploadAvatar stores a new avatar, replacing and removing any previous one
func (s *UserService) UploadAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	return s.attach(ctx, userID, file, "avatars", func(u *models.User) *string { return u.AvatarPath }, s.userRepo.SetAvatarPath)
}

// UploadResume stores a new resume, replacing and removing any previous one
func (s *UserService) UploadResume(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	return s.attach(ctx, userID, file, "resumes", func(u *models.User) *string { return u.ResumePath }, s.userRepo.SetResumePath)
}

func (s *UserService) attach(ctx context.Context, userID int64, file *multipart.FileHeader, subPath string, current func(*models.User) *string, set func(context.Context, int64, string) error) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	path, err := s.storage.SaveFile(file, subPath)
	if err != nil {
		return "", err
	}

	if err := set(ctx, userID, path); err != nil {
		_ = s.storage.DeleteFile(path)
		return "", err
	}

	// Catalog entry failure leaves the file usable, so it only warns
	record := &models.StoredFile{
		Path:       path,
		Name:       file.Filename,
		Size:       file.Size,
		MimeType:   file.Header.Get("Content-Type"),
		UploadedBy: userID,
	}
	if _, err := s.fileRepo.Create(ctx, record); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not record file metadata")
	}

	if old := current(user); old != nil && *old != path {
		if err := s.storage.DeleteFile(*old); err != nil {
			logger.Warn().Err(err).Str("path", *old).Msg("Could not remove replaced file")
		}
		if err := s.fileRepo.DeleteByPath(ctx, *old); err != nil {
			logger.Warn().Err(err).Str("path", *old).Msg("Could not remove replaced file metadata")
		}
	}

	return path, nil
}

// AvatarURL returns a signed, time-limited download URL for the user's avatar
func (s *UserService) AvatarURL(ctx context.Context, user *models.User) (string, error) {
	if user.AvatarPath == nil {
		return "", nil
	}
	return s.storage.SignedURL(*user.AvatarPath, s.signedURLTTL)
}

// ResumeURL returns a signed, time-limited download URL for the user's resume
func (s *UserService) ResumeURL(ctx context.Context, user *models.User) (string, error) {
	if user.ResumePath == nil {
		return "", nil
	}
	return s.storage.SignedURL(*user.ResumePath, s.signedURLTTL)
}

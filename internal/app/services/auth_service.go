package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/auth"
	"github.com/internhub/backend/internal/pkg/logger"
)

type authUserStore interface {
	CreateUser(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	RecordLogin(ctx context.Context, id int64) error
}

type authStudentStore interface {
	CreateProfile(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

// AuthService handles registration, login and token refresh
type AuthService struct {
	userRepo    authUserStore
	studentRepo authStudentStore
	jwtService  *auth.JWTService
	runTx       TxRunner
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo authUserStore, studentRepo authStudentStore, jwtService *auth.JWTService, runTx TxRunner) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		jwtService:  jwtService,
		runTx:       runTx,
	}
}

// Register creates a student identity and its pending profile in one
// transaction. Registration is student-only; faculty and admin accounts are
// provisioned by an admin.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	return s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.userRepo.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}

		profile := &models.StudentProfile{
			UserID:         userID,
			USN:            req.USN,
			College:        req.College,
			Branch:         req.Branch,
			Track:          models.Track(req.Track),
			SkillLevel:     models.SkillLevel(req.SkillLevel),
			ApprovalStatus: models.ApprovalPending,
		}

		if _, err := s.studentRepo.CreateProfile(ctx, tx, profile); err != nil {
			return err
		}

		logger.Info().Int64("userID", userID).Str("email", req.Email).Msg("Student registered")
		return nil
	})
}

// Login verifies credentials and issues a token pair. A pending or rejected
// student can still log in; the approval gate limits what the token can reach,
// not whether it exists.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is best effort
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not record login time")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken validates a refresh token and issues a fresh pair. Claims are
// rebuilt from current database state so an approval granted since the last
// login shows up in the new access token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user)
}

// Session describes the authenticated caller for the client shell
func (s *AuthService) Session(ctx context.Context, userID int64) (*dto.SessionResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  string(user.RoleType),
	}

	if user.RoleType == models.RoleStudent {
		status, err := s.approvalStatus(ctx, user)
		if err != nil {
			return nil, err
		}
		resp.ApprovalStatus = status
	}

	return resp, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	approvalStatus := ""
	if user.RoleType == models.RoleStudent {
		status, err := s.approvalStatus(ctx, user)
		if err != nil {
			return nil, err
		}
		approvalStatus = status
	}

	access, refresh, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Email, string(user.RoleType), approvalStatus)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}

func (s *AuthService) approvalStatus(ctx context.Context, user *models.User) (string, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			// A student identity without a profile should not happen; treat
			// it as pending rather than failing the whole login.
			logger.Warn().Int64("userID", user.ID).Msg("Student identity has no profile")
			return string(models.ApprovalPending), nil
		}
		return "", err
	}
	return string(profile.ApprovalStatus), nil
}

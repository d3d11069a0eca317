package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeStudentStore) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	users := newFakeUserStore()
	students := newFakeStudentStore()
	return NewAuthService(users, students, jwtService, fakeTxRunner()), users, students
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:      "asha@example.com",
		Password:   "correct-horse",
		FirstName:  "Asha",
		LastName:   "Rao",
		Phone:      "9000000001",
		USN:        "1AB21CS001",
		College:    "ABC College",
		Branch:     "CSE",
		Track:      "vlsi",
		SkillLevel: "beginner",
	}
}

func TestRegisterCreatesPendingStudent(t *testing.T) {
	svc, users, students := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := users.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.RoleType != models.RoleStudent || !user.IsActive {
		t.Fatalf("unexpected identity: role=%s active=%v", user.RoleType, user.IsActive)
	}
	if user.Password == "correct-horse" {
		t.Fatalf("password stored in plaintext")
	}

	profile, err := students.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("student profile not created: %v", err)
	}
	if profile.ApprovalStatus != models.ApprovalPending {
		t.Fatalf("new profile status = %q, want pending", profile.ApprovalStatus)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	req := registerRequest()
	req.Phone = "9000000002"
	req.USN = "1AB21CS002"
	if err := svc.Register(ctx, req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("incomplete token pair: %+v", tokens)
	}
	if tokens.TokenType != "Bearer" {
		t.Fatalf("token type = %q, want Bearer", tokens.TokenType)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email reports invalid credentials, not missing user", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		user, _ := users.GetByEmail(ctx, "asha@example.com")
		users.users[user.ID].IsActive = false
		defer func() { users.users[user.ID].IsActive = true }()

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
		if !errors.Is(err, apperrors.ErrAccountDisabled) {
			t.Fatalf("expected ErrAccountDisabled, got %v", err)
		}
	})
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := svc.RefreshToken(ctx, tokens.AccessToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("access token should not refresh, got %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh with refresh token failed: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("refreshed pair incomplete: %+v", refreshed)
	}
}

func TestRefreshPicksUpApprovalChange(t *testing.T) {
	svc, _, students := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	profile, _ := students.GetByUserID(ctx, 1)
	if err := students.Approve(ctx, profile.ID, "INT-001", 1); err != nil {
		t.Fatalf("approving profile failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey: "test-secret-key", AccessTokenExp: time.Hour, RefreshTokenExp: 24 * time.Hour, TokenIssuer: "test",
	})
	claims, err := jwtService.ValidateAccessToken(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}
	if claims.ApprovalStatus != string(models.ApprovalApproved) {
		t.Fatalf("refreshed claims carry %q, want approved", claims.ApprovalStatus)
	}
}

func TestSession(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	session, err := svc.Session(ctx, 1)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if session.RoleType != string(models.RoleStudent) {
		t.Fatalf("role = %q, want student", session.RoleType)
	}
	if session.ApprovalStatus != string(models.ApprovalPending) {
		t.Fatalf("approval status = %q, want pending", session.ApprovalStatus)
	}
}

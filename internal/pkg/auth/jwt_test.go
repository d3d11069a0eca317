package auth

import (
	"errors"
	"testing"
	"time"
)

func testService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "internhub.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService()

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "student@example.com", "student", "pending")
	if err != nil {
		t.Fatalf("unexpected error generating pair: %v", err)
	}
	if expiresIn != 3600 || refreshExpiresIn != 86400 {
		t.Fatalf("unexpected expirations: %d, %d", expiresIn, refreshExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("expected access token to validate: %v", err)
	}
	if claims.UserID != 42 || claims.RoleType != "student" || claims.ApprovalStatus != "pending" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("expected refresh token to validate: %v", err)
	}
}

func TestTokenUseIsEnforced(t *testing.T) {
	svc := testService()

	access, refresh, _, _, err := svc.GenerateTokenPair(1, "admin@example.com", "admin", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse for refresh token, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse for access token, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := testService()

	access, _, _, _, err := svc.GenerateTokenPair(1, "user@example.com", "faculty", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "internhub.test",
	})
	if _, err := other.ValidateAccessToken(access); err == nil {
		t.Fatalf("expected token signed with another key to be rejected")
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for empty header, got %v", err)
	}

	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("unexpected result: %q, %v", token, err)
	}

	token, err = ExtractBearerToken("abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("expected raw token passthrough, got %q, %v", token, err)
	}
}

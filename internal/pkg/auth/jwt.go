package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
	ErrWrongTokenUse = errors.New("token used for wrong purpose")
)

// Token use values carried in the claims
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content. ApprovalStatus is only meaningful for
// student tokens and stays empty otherwise.
type Claims struct {
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	RoleType       string `json:"roleType"`
	ApprovalStatus string `json:"approvalStatus,omitempty"`
	TokenUse       string `json:"tokenUse"`
	jwt.RegisteredClaims
}

// GenerateTokenPair creates a signed access and refresh token pair
func (s *JWTService) GenerateTokenPair(userID int64, email, roleType, approvalStatus string) (accessToken, refreshToken string, expiresIn, refreshExpiresIn int, err error) {
	now := time.Now()

	accessToken, err = s.sign(userID, email, roleType, approvalStatus, TokenUseAccess, now.Add(s.config.AccessTokenExp))
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err = s.sign(userID, email, roleType, approvalStatus, TokenUseRefresh, now.Add(s.config.RefreshTokenExp))
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create refresh token: %w", err)
	}

	expiresIn = int(s.config.AccessTokenExp.Seconds())
	refreshExpiresIn = int(s.config.RefreshTokenExp.Seconds())

	return accessToken, refreshToken, expiresIn, refreshExpiresIn, nil
}

func (s *JWTService) sign(userID int64, email, roleType, approvalStatus, tokenUse string, expiry time.Time) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:         userID,
		Email:          email,
		RoleType:       roleType,
		ApprovalStatus: approvalStatus,
		TokenUse:       tokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// ValidateToken parses and validates a token of any use
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ValidateAccessToken validates a token and requires access use
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.validateForUse(tokenString, TokenUseAccess)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateRefreshToken validates a token and requires refresh use
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateForUse(tokenString, TokenUseRefresh)
}

func (s *JWTService) validateForUse(tokenString, use string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.UserID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	if claims.TokenUse != use {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return authHeader, nil
}

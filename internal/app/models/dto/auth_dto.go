package dto

// RegisterRequest represents a new student registration. The created profile
// starts in pending approval status.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required" validate:"required,email"`
	Password   string `json:"password" binding:"required" validate:"required,min=8"`
	FirstName  string `json:"firstName" binding:"required" validate:"required"`
	LastName   string `json:"lastName" binding:"required" validate:"required"`
	Phone      string `json:"phone" binding:"required" validate:"required,min=10"`
	USN        string `json:"usn" binding:"required" validate:"required"`
	College    string `json:"college" binding:"required" validate:"required"`
	Branch     string `json:"branch" binding:"required" validate:"required"`
	Track      string `json:"track" binding:"required" validate:"required,oneof=vlsi ai-ml mern java"`
	SkillLevel string `json:"skillLevel" binding:"required" validate:"required,oneof=beginner intermediate advanced"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// RefreshTokenRequest represents a token refresh attempt
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// SessionResponse describes the authenticated caller: identity, role and,
// for students, the approval gate state.
type SessionResponse struct {
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	RoleType       string `json:"roleType"`
	ApprovalStatus string `json:"approvalStatus,omitempty"`
}

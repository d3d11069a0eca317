package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPhoneAlreadyExists = errors.New("phone number already exists")
)

// Student profile errors
var (
	ErrStudentNotFound     = errors.New("student profile not found")
	ErrStudentNotPending   = errors.New("student profile is not pending approval")
	ErrProfileLocked       = errors.New("academic fields are locked after approval")
	ErrUSNAlreadyExists    = errors.New("USN already registered")
	ErrStudentNotApproved  = errors.New("student profile is not approved")
	ErrStudentProfileExists = errors.New("student profile already exists for this user")
)

// Batch errors
var (
	ErrBatchNotFound    = errors.New("batch not found")
	ErrBatchDateOrder   = errors.New("batch start date must not be after end date")
	ErrBatchCompleted   = errors.New("batch is already completed")
	ErrFacultyNotFound  = errors.New("faculty member not found")
)

// Project errors
var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrTeamFull             = errors.New("project team is full")
	ErrAlreadyMember        = errors.New("user is already a project member")
	ErrMemberNotFound       = errors.New("no user found with that phone number")
	ErrNotProjectLead       = errors.New("only the project lead can manage members")
)

// Leave request errors
var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrLeaveAlreadyReviewed = errors.New("leave request has already been reviewed")
)

// Support query errors
var (
	ErrQueryNotFound = errors.New("support query not found")
)

// Stored file errors
var (
	ErrFileNotFound = errors.New("file not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

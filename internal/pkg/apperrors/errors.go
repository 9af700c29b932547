package apperrors

import "errors"

// Error kinds shared by every layer. Callers test with errors.Is.
var (
	// Authentication: same value for an unknown username and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input rejected before any state was touched
	ErrValidationFailed = errors.New("validation failed")

	// Unique or foreign key violation reported by the store, or an occupancy rule
	ErrConstraintViolation = errors.New("constraint violation")

	ErrResourceNotFound = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
)

// Domain specific refinements, each one wraps a kind above
var (
	ErrStudentNotFound  = NewCustomError(ErrResourceNotFound, "student not found")
	ErrRoomNotFound     = NewCustomError(ErrResourceNotFound, "room not found")
	ErrStayNotFound     = NewCustomError(ErrResourceNotFound, "stay not found")
	ErrUserNotFound     = NewCustomError(ErrResourceNotFound, "user not found")
	ErrRoomExists       = NewCustomError(ErrConstraintViolation, "room with this building and number already exists")
	ErrUsernameExists   = NewCustomError(ErrConstraintViolation, "username already exists")
	ErrRoomFull         = NewCustomError(ErrConstraintViolation, "room has no free beds")
	ErrAlreadyCheckedIn = NewCustomError(ErrConstraintViolation, "student already has an open stay")
	ErrUnknownReference = NewCustomError(ErrConstraintViolation, "referenced record does not exist")
)

// CustomError carries a message on top of one of the error kinds
type CustomError struct {
	Err     error
	Message string
	Field   string
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

// NewValidationError reports an invalid field value
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewConstraintError reports a store constraint failure with a message
func NewConstraintError(message string) error {
	return &CustomError{
		Err:     ErrConstraintViolation,
		Message: message,
	}
}

// Message returns the most specific human readable message in the chain
func Message(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// FieldOf returns the offending field of a validation error, if any
func FieldOf(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Field
	}
	return ""
}

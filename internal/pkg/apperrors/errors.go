package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrCourseNotFound = errors.New("course not found")
	ErrNoteNotFound   = errors.New("note not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Identity token errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Blob store errors
var (
	ErrStorageWrite  = errors.New("blob store write failed")
	ErrStorageRead   = errors.New("blob store read failed")
	ErrStorageRemove = errors.New("blob store remove failed")
)

// Metadata store errors
var (
	ErrMetadataWrite = errors.New("metadata store write failed")
	ErrCounterUpdate = errors.New("note count update failed")
)

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
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

// NewStorageWriteError wraps a blob store upload failure
func NewStorageWriteError(err error, message string) error {
	return &CustomError{
		Err:     ErrStorageWrite,
		Cause:   err,
		Message: message,
	}
}

// NewMetadataWriteError wraps a metadata store mutation failure
func NewMetadataWriteError(err error, message string) error {
	return &CustomError{
		Err:     ErrMetadataWrite,
		Cause:   err,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context.
// Err carries the sentinel used for classification, Cause the underlying
// failure (if any); both are visible to errors.Is/errors.As via Unwrap.
type CustomError struct {
	Err     error
	Cause   error
	Message string
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

// Unwrap exposes both the sentinel and the underlying cause
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

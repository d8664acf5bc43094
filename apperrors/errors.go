package apperrors

import "errors"

// Persistence and transport errors
var (
	// ErrNotFound indicates the requested entity does not exist in the collection.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a required or malformed field was caught before
	// any network or storage call.
	ErrValidation = errors.New("validation failed")
	// ErrNetwork indicates no response was received at all.
	ErrNetwork = errors.New("network error")
	// ErrServer indicates the backend answered with a 5xx status.
	ErrServer = errors.New("server error")
	// ErrStorageFull indicates the serialized payload exceeded the local
	// storage quota.
	ErrStorageFull = errors.New("storage quota exceeded")
)

// Authentication and authorization errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Dispatcher errors
var (
	// ErrMutationInFlight indicates a duplicate submission while the same
	// mutation is still pending.
	ErrMutationInFlight = errors.New("mutation already in flight")
	// ErrNotConfirmed indicates the confirmation step was dismissed.
	ErrNotConfirmed = errors.New("action not confirmed")
)

// Entity errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEventFull          = errors.New("event is full")
)

// AppError carries a sentinel error plus request-scoped context such as the
// offending field or a user-facing message.
type AppError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is checks.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError wrapping a sentinel with a message.
func New(err error, message string) *AppError {
	return &AppError{Err: err, Message: message}
}

// NewValidationError creates a validation failure scoped to a single field.
func NewValidationError(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Field: field, Message: message}
}

// NewNotFoundError creates a not-found failure with a message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// WithDetails attaches context details to the error.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// Is reports whether err matches target or any error in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrUserNotFound is returned when no user exists for the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("wrong credential")
	// ErrNoteNotFound is returned when a note id does not resolve.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotNoteOwner is returned when a caller mutates a note it does not own.
	ErrNotNoteOwner = errors.New("note belongs to another user")
	// ErrNoNotes is returned when a listing yields zero notes for the caller.
	ErrNoNotes = errors.New("you haven't added any note yet")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything not in the
// taxonomy is an internal fault and maps to 500, never a blanket 400.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case errors.Is(err, ErrNotNoteOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrNoNotes):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_NOTES")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

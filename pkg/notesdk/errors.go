package notesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/notes/pkg/httpx"
)

// Error codes carried in the "error" field of every error response.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidation         = "validation_failed"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeUsernameTaken      = "username_taken"
	CodeNotFound           = "not_found"
	CodeServerError        = "server_error"
)

// Client-side failures of the token lifecycle.
var (
	// ErrNoRefreshToken means there is nothing to refresh with. The session
	// is left untouched.
	ErrNoRefreshToken = errors.New("notesdk: no refresh token available")

	// ErrRefreshFailed means the server refused the refresh or could not be
	// reached. The session has been cleared; the user must sign in again.
	ErrRefreshFailed = errors.New("notesdk: token refresh failed")

	// ErrNetworkFailure wraps transport errors.
	ErrNetworkFailure = errors.New("notesdk: network failure")
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a non-2xx response. The server writes these and the client
// decodes them back, so both sides share one shape.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
}

// Is matches another *APIError with the same status. A target with an empty
// Code matches any code, so errors.Is(err, ErrUnauthorized) holds for every
// 401 regardless of the reason.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode && (t.Code == "" || t.Code == e.Code)
}

// WriteError writes e as the JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteErrorMessage(w, e.StatusCode, e.Code, e.Message)
}

// WithMessage returns a copy of e carrying msg.
func (e *APIError) WithMessage(msg string) *APIError {
	c := *e
	c.Message = msg
	return &c
}

// Status-only sentinels for matching with errors.Is.
var (
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}
	ErrNotFound     = &APIError{StatusCode: http.StatusNotFound}
	ErrConflict     = &APIError{StatusCode: http.StatusConflict}
)

// Predefined responses written by the server.
var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeInvalidRequest,
		Message:    "the request body is malformed",
	}

	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
	}

	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidCredentials,
		Message:    "invalid username or password",
	}

	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidToken,
		Message:    "refresh token is invalid or expired",
	}

	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       CodeUsernameTaken,
		Message:    "username is already taken",
	}

	ErrNoteNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    "note not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a response with an unexpected status into an
// *APIError. A success status other than the expected one is still an error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeServerError,
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeServerError,
		Message:    http.StatusText(resp.StatusCode),
	}
}

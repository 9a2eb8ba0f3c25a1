package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pongelo/pongelo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeDuplicateName         = "DUPLICATE_NAME"
	CodeMatchNotFound         = "MATCH_NOT_FOUND"
	CodeAlreadyResolved       = "ALREADY_RESOLVED"
	CodeSamePlayer            = "SAME_PLAYER"
	CodeInvalidScore          = "INVALID_SCORE"
	CodeUnauthorizedReporter  = "UNAUTHORIZED_REPORTER"
	CodeUnauthorizedConfirmer = "UNAUTHORIZED_CONFIRMER"
	CodeConcurrentUpdate      = "CONCURRENT_UPDATE"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateName, "Player name already exists"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrMatchAlreadyResolved):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyResolved, "Match is already confirmed or denied"}}
	case errors.Is(err, model.ErrSamePlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeSamePlayer, "A match requires two distinct players"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Scores must be non-negative"}}
	case errors.Is(err, model.ErrUnauthorizedReporter):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthorizedReporter, "Submitter must report themselves as player 1"}}
	case errors.Is(err, model.ErrUnauthorizedConfirmer):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthorizedConfirmer, "Only player 2 may confirm or deny this match"}}
	case errors.Is(err, model.ErrConcurrentUpdate):
		return &httpError{http.StatusConflict, APIError{CodeConcurrentUpdate, "Conflicting concurrent update, retry the request"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

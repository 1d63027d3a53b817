package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrTimeout     = fmt.Errorf("%w: request timed out", ErrUnavailable)

	ErrSessionExpired = errors.New("session expired")
	ErrInvalidSession = fmt.Errorf("%w: invalid session token", ErrSessionExpired)
	ErrUnauthorized   = errors.New("unauthorized")

	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("rate limited")
	ErrServer      = errors.New("server error")
	ErrUnexpected  = errors.New("unexpected response")
)

// APIError is a non-2xx response. It unwraps to the sentinel matching its
// status, so callers can use errors.Is for the category and errors.As for
// the server-provided details.
type APIError struct {
	StatusCode int
	Message    string
	Reason     string
	Details    json.RawMessage

	kind error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	if msg == "" {
		return fmt.Sprintf("%s (status %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", e.kind, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error { return e.kind }

// errorBody is the backend failure shape {message, statusCode, error?, details?}.
// message is a string, or a list of strings for field validation failures.
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
	Details    json.RawMessage `json:"details"`
}

func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var b errorBody
	if len(body) == 0 || json.Unmarshal(body, &b) != nil {
		return e
	}
	e.Reason = b.Error
	e.Details = b.Details

	var single string
	var many []string
	switch {
	case json.Unmarshal(b.Message, &single) == nil:
		e.Message = single
	case json.Unmarshal(b.Message, &many) == nil:
		e.Message = strings.Join(many, "; ")
	}
	return e
}

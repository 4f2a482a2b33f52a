package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common gateway errors. An *APIError unwraps to one of these so callers can
// branch with errors.Is.
var (
	// ErrBadRequest is returned for 400 responses.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned when the token is missing or expired.
	ErrUnauthorized = errors.New("unauthorized, log in again")
	// ErrForbidden is returned when the account lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the gateway rejects a state change.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned for 422 responses.
	ErrValidation = errors.New("validation failed")
	// ErrUnexpectedShape is returned when a list body is neither an array
	// nor a known envelope.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// APIError is a non-2xx gateway response.
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway error %d", e.Status)
}

// Unwrap maps the status code onto a sentinel.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return nil
}

// errorBody is the JSON the gateway sends with failures. error is either a
// plain string or an object {code, message}.
type errorBody struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if len(b.Error) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(b.Error, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b.Error, &obj) == nil {
		return obj.Message
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: strings.TrimSpace(string(body))}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		e.Message = eb.text()
	}
	return e
}

// MessageOf returns the gateway's message carried by err, or fallback when
// there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0 for transport errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

package callsim

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// genericFailureMessage is shown when the service gives no usable message.
const genericFailureMessage = "request failed"

// Client errors.
var (
	ErrRequestFailed      = errors.New(genericFailureMessage)
	ErrEmptyCallSID       = errors.New("call sid cannot be empty")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrIncompatible       = errors.New("incompatible service version")
	ErrUnhealthy          = errors.New("service is not healthy")
)

// APIError is returned for any non-success HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrRequestFailed) match every API error.
func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a response body. The message is read
// from "detail" (string form only) or "message"; anything else falls back to
// the generic message.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: errorMessage(body)}
}

func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return genericFailureMessage
	}

	if len(eb.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(eb.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
			return detail
		}
	}

	if strings.TrimSpace(eb.Message) != "" {
		return eb.Message
	}

	return genericFailureMessage
}

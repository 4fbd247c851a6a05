package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// huma's message when a required request body is absent.
const msgBodyRequired = "request body is required"

// APIError is the JSON error body: {"message": "..."}.
type APIError struct {
	status  int
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) GetStatus() int {
	return e.status
}

// NewAPIError replaces huma's problem+json errors so every error response,
// including request validation failures, uses the {message} shape.
// Validation failures only come from the shorten body and are reported as
// 400 "Invalid URL"; an absent body is a missing longUrl.
func NewAPIError(status int, msg string, _ ...error) huma.StatusError {
	switch {
	case status == http.StatusUnprocessableEntity:
		status, msg = http.StatusBadRequest, msgInvalidURL
	case status == http.StatusBadRequest && msg == msgBodyRequired:
		msg = msgURLRequired
	}

	return &APIError{status: status, Message: msg}
}

// UseMessageErrors installs NewAPIError as huma's error constructor.
func UseMessageErrors() {
	huma.NewError = NewAPIError
}

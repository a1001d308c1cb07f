// Package apperror defines the errors that services return to HTTP callers.
// Each error carries the status code and message rendered in the response
// envelope, so handlers never translate domain failures by hand.
package apperror

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Envelope codes
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInternal     = "INTERNAL_ERROR"
)

// FieldError describes a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is an error with an HTTP status attached
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an error with the default BAD_REQUEST envelope code
func New(status int, message string) *Error {
	return &Error{Status: status, Code: CodeBadRequest, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Unprocessable(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

// Validation wraps failed field rules into a 422 error
func Validation(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeBadRequest,
		Message: "validation failure",
		Fields:  fields,
	}
}

// TokenExpired is returned for bearer tokens past their expiry
func TokenExpired() *Error {
	return &Error{
		Status:  http.StatusGone,
		Code:    CodeTokenExpired,
		Message: "token has expired",
	}
}

// From finds the first *Error in err's chain
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

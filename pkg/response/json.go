package response

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/logging"
)

// ErrorBody is the uniform error envelope
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Status  int                   `json:"status"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

// Empty is rendered as {} by endpoints with nothing to return
type Empty struct{}

// JSON sends a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = sonic.ConfigDefault.NewEncoder(w).Encode(data)
}

// OK sends a 200 response
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error renders err into the error envelope. Errors without an HTTP
// status are logged and answered with a generic 500.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	if appErr, ok := apperror.From(err); ok {
		JSON(w, appErr.Status, ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Status:  appErr.Status,
			Errors:  appErr.Fields,
		})
		return
	}

	logging.Default().ErrorContext(ctx, "unhandled request error", "error", err)
	InternalError(w)
}

// InternalError sends the generic 500 envelope
func InternalError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, ErrorBody{
		Code:    apperror.CodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	})
}

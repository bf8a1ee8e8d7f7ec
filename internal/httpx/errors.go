package httpx

import (
	"errors"
	"log/slog"
	"net/http"
)

// Machine-readable error codes returned in the error envelope.
const (
	CodeInvalidData = "INVALID_DATA"
	CodeInvalidID   = "INVALID_ID"
	CodeNotFound    = "NOT_FOUND"
	CodeISBNExists  = "ISBN_ALREADY_EXIST"
	CodeServerError = "SERVER_ERROR"
)

// AppError carries everything a handler needs to produce an error envelope:
// an HTTP status, a machine-readable code, and client-safe details (a string
// or a list of strings). Cause is for server-side logging only and is never
// sent to clients.
type AppError struct {
	Code       string
	HTTPStatus int
	Details    interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if s, ok := e.Details.(string); ok {
		return s
	}
	return e.Code
}

func (e *AppError) Unwrap() error { return e.Cause }

// InvalidData returns a 400 error listing every violated field.
func InvalidData(messages ...string) *AppError {
	var details interface{}
	if len(messages) == 1 {
		details = messages[0]
	} else {
		details = messages
	}
	return &AppError{
		Code:       CodeInvalidData,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidID returns a 400 error for a malformed route identifier.
func InvalidID() *AppError {
	return &AppError{
		Code:       CodeInvalidID,
		HTTPStatus: http.StatusBadRequest,
		Details:    "Invalid ID.",
	}
}

// NotFound returns a 404 error for a named resource.
func NotFound(details string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// DuplicateISBN returns the 400 uniqueness-conflict error, distinct from a
// malformed ISBN.
func DuplicateISBN() *AppError {
	return &AppError{
		Code:       CodeISBNExists,
		HTTPStatus: http.StatusBadRequest,
		Details:    "Book with this ISBN already exists.",
	}
}

// ServerError wraps an unexpected failure. The cause is logged by WriteError;
// the client only ever sees the generic message.
func ServerError(cause error) *AppError {
	return &AppError{
		Code:       CodeServerError,
		HTTPStatus: http.StatusInternalServerError,
		Details:    "Internal Server Error",
		Cause:      cause,
	}
}

// WriteError translates err into an error envelope. Unexpected errors are
// tagged SERVER_ERROR and logged with the request context for operators.
func WriteError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = ServerError(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		cause := appErr.Cause
		if cause == nil {
			cause = err
		}
		logger.Error(cause.Error(),
			slog.String("request_method", r.Method),
			slog.String("request_url", r.URL.String()),
			slog.String("request_id", RequestIDFrom(r)),
		)
	}
	JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Details)
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"mideck/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeNotFound      = "NOT_FOUND"
	CodePageNotFound  = "PAGE_NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput is a request value that could not be read. It matches
// core.ErrInvalidInput.
func InvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message, Cause: core.ErrInvalidInput}
}

// FromDomain classifies an error returned by the domain or app layer.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, core.ErrPageNotFound):
		return &AppError{Code: CodePageNotFound, Message: err.Error(), Cause: err}
	case core.IsNotFoundError(err):
		return &AppError{Code: CodeNotFound, Message: err.Error(), Cause: err}
	case core.IsValidationError(err):
		return &AppError{Code: CodeInvalidInput, Message: err.Error(), Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: "internal error", Cause: err}
}

// HTTPStatus maps an error code to a response status.
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound, CodePageNotFound:
		return http.StatusNotFound
	case CodeInvalidInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries an HTTP status alongside a caller-safe message.
type AppError struct {
	StatusCode int         `json:"-"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ErrBadRequest(message string) *AppError {
	if message == "" {
		message = "Bad Request"
	}
	return NewAppError(http.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewAppError(http.StatusUnauthorized, message)
}

func ErrForbidden() *AppError {
	return NewAppError(http.StatusForbidden, "Forbidden")
}

func ErrNotFound(message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return NewAppError(http.StatusNotFound, message)
}

func ErrConflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

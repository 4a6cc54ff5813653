package utils

import (
	"errors"
	"net/http"
)

// AppError is an error that carries the HTTP status it should be answered
// with. Message is what the caller sees.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewRequestTooLargeError(message string) *AppError {
	return &AppError{StatusCode: http.StatusRequestEntityTooLarge, Message: message}
}

// NewInternalError reports err to the caller as a 500 with err's message.
func NewInternalError(err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

// StatusAndMessage resolves the response status and message for any error.
func StatusAndMessage(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message
	}
	return http.StatusInternalServerError, err.Error()
}

package common

import (
	"errors"
	"fmt"
)

// Stable codes attached to AppError values so callers and log scrapers can
// branch without matching message text.
const (
	CodeConfig = "CONFIG_ERROR"
	CodeStore  = "STORE_ERROR"
	CodeResult = "RESULT_ERROR"
)

// AppError pairs a stable code with a human-readable message.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Sentinels for the conditions the storage and extraction layers report.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateDocument = errors.New("document already registered")
	ErrResultSchema      = errors.New("extraction result failed schema validation")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

package errors

import (
	"context"
	"errors"
	"fmt"
)

// NewValidationError wraps the field errors of a rejected task.
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause)
}

func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewCorruptDataError reports a stored blob that does not decode to a task list.
func NewCorruptDataError(key string, cause error) *AppError {
	return newAppError(ErrorTypeCorruptData,
		fmt.Sprintf("stored data under %q is not a valid task collection", key), cause,
		"key", key)
}

func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage,
		"storage operation failed: "+operation, cause,
		"operation", operation)
}

func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

// NewInvalidStateError reports an operation attempted before the service is ready for it.
func NewInvalidStateError(operation string, state string) *AppError {
	return newAppError(ErrorTypeInvalidState,
		fmt.Sprintf("cannot %s while %s", operation, state), nil,
		"operation", operation, "state", state)
}

func NewTimeoutError(operation string, timeout any) *AppError {
	return newAppError(ErrorTypeTimeout,
		"operation timed out: "+operation, nil,
		"operation", operation, "timeout", timeout)
}

// FromStorage classifies a backend failure. AppErrors pass through, an
// expired context becomes a timeout and anything else a storage error.
func FromStorage(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsAppError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		timeoutErr := NewTimeoutError(operation, nil)
		timeoutErr.Cause = err
		return timeoutErr
	default:
		return NewStorageError(operation, err)
	}
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns the text shown to the user for err. Backend
// failures are summarised; the detail goes to the log.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeCorruptData:
		return appErr.Message + "; run 'te reset' to start over"
	case ErrorTypeStorage:
		return "A storage error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	}
	if appErr.Message == "" {
		return "An unexpected error occurred. Please try again."
	}
	return appErr.Message
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// IsUserError reports whether err was caused by what the user typed rather
// than by storage.
func IsUserError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return true
	}
	return false
}

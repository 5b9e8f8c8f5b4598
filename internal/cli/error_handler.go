package cli

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"task-editor/internal/errors"
	"task-editor/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// userError carries the message shown to the user while keeping the
// original error reachable through errors.As.
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string {
	return e.message
}

func (e *userError) Unwrap() error {
	return e.cause
}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &userError{
		message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)),
		cause:   err,
	}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	var handled *userError
	if stderrors.As(err, &handled) {
		return err
	}
	if !errors.IsAppError(err) && !validation.IsValidationError(err) {
		return err
	}
	return &userError{message: eh.message(err), cause: err}
}

// message prefers per-field validation messages, then the AppError's user message.
func (eh *ErrorHandler) message(err error) string {
	if fields := validation.FieldMessages(err); len(fields) > 0 {
		return formatFieldMessages(fields)
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// formatFieldMessages lists one message per field, name first.
func formatFieldMessages(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fieldRank(keys[i]) < fieldRank(keys[j]) ||
			(fieldRank(keys[i]) == fieldRank(keys[j]) && keys[i] < keys[j])
	})

	messages := make([]string, 0, len(keys))
	for _, field := range keys {
		messages = append(messages, fields[field])
	}
	return strings.Join(messages, "; ")
}

func fieldRank(field string) int {
	switch field {
	case validation.FieldName:
		return 0
	case validation.FieldDescription:
		return 1
	default:
		return 2
	}
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

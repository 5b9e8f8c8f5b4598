package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_StringAndCode(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		name      string
		code      string
	}{
		{ErrorTypeValidation, "validation", "VALIDATION_FAILED"},
		{ErrorTypeNotFound, "not_found", "NOT_FOUND"},
		{ErrorTypeCorruptData, "corrupt_data", "CORRUPT_DATA"},
		{ErrorTypeStorage, "storage", "STORAGE_ERROR"},
		{ErrorTypeInvalidInput, "invalid_input", "INVALID_INPUT"},
		{ErrorTypeInvalidState, "invalid_state", "INVALID_STATE"},
		{ErrorTypeTimeout, "timeout", "TIMEOUT"},
		{ErrorType("disk_on_fire"), "unknown", "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.errorType.String())
			assert.Equal(t, tt.code, tt.errorType.Code())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "invalid task"}
	assert.Equal(t, "validation: invalid task", plain.Error())

	wrapped := &AppError{
		Type:    ErrorTypeCorruptData,
		Message: "bad blob",
		Cause:   errors.New("unexpected end of JSON input"),
	}
	assert.Equal(t, "corrupt_data: bad blob: unexpected end of JSON input", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	appError := NewStorageError("set blob", cause)

	assert.Same(t, cause, appError.Unwrap())
	assert.ErrorIs(t, appError, cause)
}

func TestAppError_Context(t *testing.T) {
	var appError AppError

	_, ok := appError.GetContext("field")
	assert.False(t, ok, "nil context has no keys")

	assert.Same(t, &appError, appError.WithContext("field", "name"))
	value, ok := appError.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "name", value)
}

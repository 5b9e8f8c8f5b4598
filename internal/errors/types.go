package errors

import "fmt"

// ErrorType classifies an AppError. The value doubles as its printed name.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeCorruptData  ErrorType = "corrupt_data"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeInvalidState ErrorType = "invalid_state"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// codes maps each type to the stable code reported by GetErrorCode.
var codes = map[ErrorType]string{
	ErrorTypeValidation:   "VALIDATION_FAILED",
	ErrorTypeNotFound:     "NOT_FOUND",
	ErrorTypeCorruptData:  "CORRUPT_DATA",
	ErrorTypeStorage:      "STORAGE_ERROR",
	ErrorTypeInvalidInput: "INVALID_INPUT",
	ErrorTypeInvalidState: "INVALID_STATE",
	ErrorTypeTimeout:      "TIMEOUT",
}

func (et ErrorType) String() string {
	if _, known := codes[et]; !known {
		return "unknown"
	}
	return string(et)
}

// Code returns the stable code for the type.
func (et ErrorType) Code() string {
	if code, ok := codes[et]; ok {
		return code
	}
	return "UNKNOWN_ERROR"
}

// AppError is the error every layer of te returns for expected failures.
// Context carries the values that identify what failed (task id, storage key,
// operation) so callers can report them without parsing Message.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func newAppError(errorType ErrorType, message string, cause error, kv ...any) *AppError {
	e := &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.Code(),
		Cause:   cause,
		Context: make(map[string]any, len(kv)/2),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Context[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records key on the error and returns it for chaining.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}

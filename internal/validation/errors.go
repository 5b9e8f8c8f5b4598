package validation

import (
	"errors"
	"strconv"
	"strings"
)

// Rule names the check a field failed.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMaxLength Rule = "max_length"
)

// FieldError is one failed check on one form field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (fe FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// ValidationError collects every FieldError found in one pass over a task,
// in the order the fields were checked.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection to add failures to.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationError) Add(field string, rule Rule, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Rule: rule, Message: message, Value: value})
}

// Required records that field, shown to the user as label, was blank.
func (ve *ValidationError) Required(field, label string) {
	ve.Add(field, RuleRequired, label+" is required", nil)
}

func (ve *ValidationError) TooLong(field, label string, value string, max int) {
	ve.Add(field, RuleMaxLength, label+" must be at most "+strconv.Itoa(max)+" characters long", value)
}

// FieldMessages maps each field to its first message, one line per input
// in a form.
func (ve *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FieldMessages extracts per-field messages from err, which may wrap a
// ValidationError. It returns nil when err carries none.
func FieldMessages(err error) map[string]string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return ve.FieldMessages()
}

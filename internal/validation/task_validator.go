package validation

// Field names used as keys in validation messages.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// taskField describes how one form field is checked.
type taskField struct {
	key   string
	label string
	limit func(*Validator) int
}

var taskFields = []taskField{
	{FieldName, "Task name", (*Validator).nameMaxLength},
	{FieldDescription, "Task description", (*Validator).descriptionMaxLength},
}

// TaskValidator checks the two user-editable task fields.
type TaskValidator struct {
	validator *Validator
}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithValidator creates a task validator on top of v.
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTaskInput checks name and description. Both are always checked so
// every offending field gets its own message. A blank field reports only
// that it is required. Any other text passes unless a length limit is
// configured.
func (tv *TaskValidator) ValidateTaskInput(name, description string) error {
	ve := NewValidationError()
	for i, value := range [...]string{name, description} {
		tv.check(ve, taskFields[i], value)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (tv *TaskValidator) check(ve *ValidationError, field taskField, value string) {
	v := tv.validator
	trimmed := v.TrimAndValidateString(value)
	if !v.IsNonEmptyString(trimmed) {
		ve.Required(field.key, field.label)
		return
	}
	if limit := field.limit(v); !v.IsWithinLength(trimmed, limit) {
		ve.TooLong(field.key, field.label, value, limit)
	}
}

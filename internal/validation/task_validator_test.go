package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-editor/internal/config"
)

func TestTaskValidator_ValidateTaskInput(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		taskName    string
		description string
		want        map[string]Rule
	}{
		{"valid input", "Buy milk", "Two litres", nil},
		{"valid with punctuation", "Task! (important) #1", "Use @home; 50% off", nil},
		{"empty name", "", "desc", map[string]Rule{FieldName: RuleRequired}},
		{"whitespace name", "   ", "desc", map[string]Rule{FieldName: RuleRequired}},
		{"empty description", "name", "", map[string]Rule{FieldDescription: RuleRequired}},
		{"tab-only description", "name", "\t\n", map[string]Rule{FieldDescription: RuleRequired}},
		{"both empty", "", " ", map[string]Rule{FieldName: RuleRequired, FieldDescription: RuleRequired}},
		{"tab in name", "Buy\tmilk", strings.Repeat("d", 5000), nil},
		{"long name", strings.Repeat("a", 1000), "desc", nil},
		{"name with line break", "first\nsecond", "desc", nil},
		{"description with line break", "name", "line one\nline two", nil},
		{"control characters", "ring\a", "esc\x1b[0m", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskInput(tt.taskName, tt.description)

			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			got := make(map[string]Rule, len(ve.Errors))
			for _, fe := range ve.Errors {
				got[fe.Field] = fe.Rule
			}
			assert.Len(t, ve.Errors, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskValidator_RequiredMessages(t *testing.T) {
	err := NewTaskValidator().ValidateTaskInput("", "")

	assert.Equal(t, map[string]string{
		FieldName:        "Task name is required",
		FieldDescription: "Task description is required",
	}, FieldMessages(err))
}

func TestTaskValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Tasks.NameMaxLength = 5
	cfg.Tasks.DescriptionMaxLength = 8
	validator := NewTaskValidatorWithValidator(NewValidatorWithConfig(cfg))

	assert.NoError(t, validator.ValidateTaskInput("abcde", "12345678"))

	var ve *ValidationError
	require.ErrorAs(t, validator.ValidateTaskInput("abcdef", "123456789"), &ve)
	require.Len(t, ve.Errors, 2)
	assert.Equal(t, RuleMaxLength, ve.Errors[0].Rule)
	assert.Equal(t, RuleMaxLength, ve.Errors[1].Rule)
	assert.Equal(t, "Task name must be at most 5 characters long", ve.FieldMessages()[FieldName])

	assert.NoError(t, validator.ValidateTaskInput("  abcde  ", "12345678"), "padding does not count")
}

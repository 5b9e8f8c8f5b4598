package validation

import (
	"strings"
	"unicode/utf8"

	"task-editor/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks that the trimmed string has at most max runes. A
// max of 0 or less means no limit.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return max <= 0 || utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// nameMaxLength returns the configured task name limit; 0 is unlimited.
func (v *Validator) nameMaxLength() int {
	if v.config == nil {
		return 0
	}
	return v.config.Tasks.NameMaxLength
}

// descriptionMaxLength returns the configured description limit; 0 is unlimited.
func (v *Validator) descriptionMaxLength() int {
	if v.config == nil {
		return 0
	}
	return v.config.Tasks.DescriptionMaxLength
}

package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the rule registry cannot be built
	// from the supplied custom rules.
	ErrConfiguration = errors.New("invalid validator configuration")

	// ErrUnknownRule is returned when a specifier references a rule name
	// that is not registered.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrEmptyFieldName is returned when a field is triggered without a name.
	ErrEmptyFieldName = errors.New("field name is empty")

	// ErrInvalidForm is matched by the FieldErrors a State reports.
	ErrInvalidForm = errors.New("invalid form")
)

// ConfigurationError describes a custom rule that cannot be registered.
type ConfigurationError struct {
	Rule   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: rule %q: %s", ErrConfiguration, e.Rule, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// UnknownRuleError is scoped to the single field and rule that failed lookup.
type UnknownRuleError struct {
	Rule  string
	Field string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("%s %q assigned to field %q", ErrUnknownRule, e.Rule, e.Field)
}

func (e *UnknownRuleError) Unwrap() error {
	return ErrUnknownRule
}

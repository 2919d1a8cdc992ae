package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validate/pkg/validator"
)

func TestDefaultRegistry(t *testing.T) {
	registry := validator.DefaultRegistry()
	assert.Equal(t, []string{"email", "max", "min", "required"}, registry.Names())

	for _, name := range []string{"required", "email"} {
		rule, ok := registry.Lookup(name)
		require.True(t, ok, name)
		assert.False(t, rule.TakesArgument(), name)
	}
	for _, name := range []string{"min", "max"} {
		rule, ok := registry.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, rule.TakesArgument(), name)
	}

	_, ok := registry.Lookup("nope")
	assert.False(t, ok)
}

func TestNewRegistry(t *testing.T) {
	t.Run("nil custom rules yields built-ins", func(t *testing.T) {
		registry, err := validator.NewRegistry(nil)
		require.NoError(t, err)
		assert.Equal(t, validator.DefaultRegistry().Names(), registry.Names())
	})

	t.Run("adds new argumentless rule", func(t *testing.T) {
		registry, err := validator.NewRegistry(map[string]validator.Override{
			"cool": {
				Test:    func(v string) bool { return strings.Contains(v, "cool") },
				Message: validator.StaticMessage("Must contain required value"),
			},
		})
		require.NoError(t, err)

		rule, ok := registry.Lookup("cool")
		require.True(t, ok)
		assert.False(t, rule.TakesArgument())
	})

	t.Run("adds new argument rule", func(t *testing.T) {
		registry, err := validator.NewRegistry(map[string]validator.Override{
			"prefix": {
				ArgTest: func(arg string) func(string) bool {
					return func(v string) bool { return strings.HasPrefix(v, arg) }
				},
				ArgMessage: func(arg string) func(string) string {
					return func(field string) string { return field + " must start with " + arg }
				},
			},
		})
		require.NoError(t, err)

		msgs, err := validator.Execute(registry, "code", "xy-1", validator.ParseSpecifiers([]string{"prefix:ab"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"code must start with ab"}, msgs)
	})

	t.Run("new rule without test is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			"broken": {Message: validator.StaticMessage("broken")},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrConfiguration)

		var cfgErr *validator.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "broken", cfgErr.Rule)
	})

	t.Run("new rule without message is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			"broken": {Test: func(string) bool { return true }},
		})
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("new rule with no funcs is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{"empty": {}})
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("empty rule name is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			" ": {Test: func(string) bool { return true }, Message: validator.StaticMessage("x")},
		})
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("mixing variants is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			"mixed": {
				Test: func(string) bool { return true },
				ArgMessage: func(string) func(string) string {
					return validator.StaticMessage("x")
				},
			},
		})
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("arity mismatch with built-in is a configuration error", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			"min": {Message: validator.StaticMessage("too short")},
		})
		assert.ErrorIs(t, err, validator.ErrConfiguration)

		_, err = validator.NewRegistry(map[string]validator.Override{
			"required": {ArgMessage: func(string) func(string) string { return validator.StaticMessage("x") }},
		})
		assert.ErrorIs(t, err, validator.ErrConfiguration)
	})

	t.Run("message-only override keeps built-in test", func(t *testing.T) {
		registry, err := validator.NewRegistry(map[string]validator.Override{
			"required": {Message: validator.StaticMessage("Some Custom Message")},
		})
		require.NoError(t, err)

		specs := validator.ParseSpecifiers([]string{"required"})
		msgs, err := validator.Execute(registry, "test", "", specs)
		require.NoError(t, err)
		assert.Equal(t, []string{"Some Custom Message"}, msgs)

		msgs, err = validator.Execute(registry, "test", "value", specs)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("test-only override keeps built-in message", func(t *testing.T) {
		registry, err := validator.NewRegistry(map[string]validator.Override{
			"min": {ArgTest: func(string) func(string) bool {
				return func(string) bool { return false }
			}},
		})
		require.NoError(t, err)

		msgs, err := validator.Execute(registry, "name", "long enough", validator.ParseSpecifiers([]string{"min:2"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"name must be at least 2 characters long"}, msgs)
	})

	t.Run("overrides do not leak into other registries", func(t *testing.T) {
		_, err := validator.NewRegistry(map[string]validator.Override{
			"required": {Message: validator.StaticMessage("custom")},
		})
		require.NoError(t, err)

		msgs, err := validator.Execute(validator.DefaultRegistry(), "test", "", validator.ParseSpecifiers([]string{"required"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"test is required"}, msgs)
	})
}

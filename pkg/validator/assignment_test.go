package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/validate/pkg/validator"
)

func TestFieldDescriptor_Specifiers(t *testing.T) {
	tests := []struct {
		name string
		desc validator.FieldDescriptor
		want []string
	}{
		{"no attributes", validator.FieldDescriptor{Name: "a"}, []string{}},
		{"required and min", validator.FieldDescriptor{Name: "test", Required: true, Min: "3"}, []string{"required", "min:3"}},
		{
			"fixed order",
			validator.FieldDescriptor{Name: "test2", Max: "9", Min: "2", Type: "email", Required: true},
			[]string{"required", "email", "min:2", "max:9"},
		},
		{"non-email type ignored", validator.FieldDescriptor{Name: "n", Type: "number"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Assignment{"f": tt.desc.Specifiers()}.Strings()["f"]
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImplicit(t *testing.T) {
	t.Run("several inputs", func(t *testing.T) {
		got := validator.Implicit(
			validator.FieldDescriptor{Name: "test", Min: "5", Required: true},
			validator.FieldDescriptor{Name: "test2", Min: "2", Type: "email", Required: true},
		)
		assert.Equal(t, map[string][]string{
			"test":  {"required", "min:5"},
			"test2": {"required", "email", "min:2"},
		}, got.Strings())
	})

	t.Run("last discovered wins", func(t *testing.T) {
		got := validator.Implicit(
			validator.FieldDescriptor{Name: "dup", Required: true},
			validator.FieldDescriptor{Name: "dup", Max: "4"},
		)
		assert.Equal(t, map[string][]string{"dup": {"max:4"}}, got.Strings())
	})

	t.Run("unnamed descriptors are skipped", func(t *testing.T) {
		got := validator.Implicit(validator.FieldDescriptor{Required: true})
		assert.Empty(t, got)
	})
}

func TestResolve(t *testing.T) {
	implicit := validator.ParseAssignment(map[string][]string{
		"test":  {"required", "min:3"},
		"other": {"email"},
	})

	t.Run("explicit entry replaces implicit wholesale", func(t *testing.T) {
		explicit := validator.ParseAssignment(map[string][]string{"test": {"required"}})
		got := validator.Resolve(explicit, implicit)
		assert.Equal(t, map[string][]string{
			"test":  {"required"},
			"other": {"email"},
		}, got.Strings())
	})

	t.Run("explicit empty list disables implicit rules", func(t *testing.T) {
		explicit := validator.ParseAssignment(map[string][]string{"test": {}})
		got := validator.Resolve(explicit, implicit)
		assert.Empty(t, got["test"])
		assert.Contains(t, got, "test")
	})

	t.Run("explicit-only fields are included", func(t *testing.T) {
		explicit := validator.ParseAssignment(map[string][]string{"extra": {"customRule"}})
		got := validator.Resolve(explicit, implicit)
		assert.Equal(t, []string{"extra", "other", "test"}, got.Fields())
	})

	t.Run("result does not alias inputs", func(t *testing.T) {
		explicit := validator.ParseAssignment(map[string][]string{"test": {"required"}})
		got := validator.Resolve(explicit, implicit)
		got["test"][0].Name = "changed"
		got["other"][0].Name = "changed"
		assert.Equal(t, "required", explicit["test"][0].Name)
		assert.Equal(t, "email", implicit["other"][0].Name)
	})

	t.Run("nil inputs", func(t *testing.T) {
		assert.Empty(t, validator.Resolve(nil, nil))
	})
}

func TestAssignment_Clone(t *testing.T) {
	a := validator.ParseAssignment(map[string][]string{"a": {"required"}, "b": nil})
	c := a.Clone()
	c["a"][0].Name = "x"
	assert.Equal(t, "required", a["a"][0].Name)
	assert.NotNil(t, c["b"])
}

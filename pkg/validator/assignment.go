package validator

import (
	"maps"
	"slices"
)

// Assignment maps field names to the ordered rules applied to them.
type Assignment map[string][]Specifier

// ParseAssignment parses a field-to-specifier-strings map, such as the
// validations block of a config file.
func ParseAssignment(raw map[string][]string) Assignment {
	a := make(Assignment, len(raw))
	for field, specs := range raw {
		a[field] = ParseSpecifiers(specs)
	}
	return a
}

// Fields returns the assigned field names in sorted order.
func (a Assignment) Fields() []string {
	return slices.Sorted(maps.Keys(a))
}

// Strings encodes the assignment back into specifier strings.
func (a Assignment) Strings() map[string][]string {
	out := make(map[string][]string, len(a))
	for field, specs := range a {
		encoded := make([]string, 0, len(specs))
		for _, s := range specs {
			encoded = append(encoded, s.String())
		}
		out[field] = encoded
	}
	return out
}

// Clone returns a copy that shares no slices with a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for field, specs := range a {
		out[field] = slices.Clone(specs)
		if out[field] == nil {
			out[field] = []Specifier{}
		}
	}
	return out
}

// FieldDescriptor is the attribute-like description of a field a host
// produces from its own UI model. Min and Max hold the raw attribute values;
// empty means the attribute is absent.
type FieldDescriptor struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Min      string `json:"min,omitempty" yaml:"min,omitempty"`
	Max      string `json:"max,omitempty" yaml:"max,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Specifiers derives the implicit rules for the descriptor in the fixed
// order required, email, min, max.
func (d FieldDescriptor) Specifiers() []Specifier {
	specs := []Specifier{}
	if d.Required {
		specs = append(specs, Specifier{Name: RuleRequired})
	}
	if d.Type == RuleEmail {
		specs = append(specs, Specifier{Name: RuleEmail})
	}
	if d.Min != "" {
		specs = append(specs, Specifier{Name: RuleMin, Arg: d.Min, HasArg: true})
	}
	if d.Max != "" {
		specs = append(specs, Specifier{Name: RuleMax, Arg: d.Max, HasArg: true})
	}
	return specs
}

// Implicit builds the implicit assignment from descriptors in discovery
// order. Descriptors without a name are skipped; a repeated name takes the
// rules of its last descriptor.
func Implicit(descriptors ...FieldDescriptor) Assignment {
	a := make(Assignment, len(descriptors))
	for _, d := range descriptors {
		if d.Name == "" {
			continue
		}
		a[d.Name] = d.Specifiers()
	}
	return a
}

// Resolve merges explicit and implicit assignments. A field present in
// explicit takes that list as is, even when empty; otherwise the implicit
// list is used. Rules are never merged one by one.
func Resolve(explicit, implicit Assignment) Assignment {
	resolved := make(Assignment, len(explicit)+len(implicit))
	for field, specs := range implicit {
		resolved[field] = slices.Clone(specs)
	}
	for field, specs := range explicit {
		resolved[field] = slices.Clone(specs)
	}
	for field, specs := range resolved {
		if specs == nil {
			resolved[field] = []Specifier{}
		}
	}
	return resolved
}

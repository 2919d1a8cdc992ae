package validator

import (
	"maps"
	"slices"
	"strings"
)

// Registry maps rule names to rule definitions. It is immutable once built
// and safe for concurrent lookups.
type Registry struct {
	rules map[string]Rule
}

// DefaultRegistry returns a registry holding only the built-in rules.
func DefaultRegistry() *Registry {
	return &Registry{rules: builtinRules()}
}

// NewRegistry merges custom rules into the built-ins.
//
// An override for a built-in name replaces only the funcs it sets, so
// overriding the "required" message keeps the built-in test. A new name must
// set both a test and a message. Violations return a *ConfigurationError.
func NewRegistry(custom map[string]Override) (*Registry, error) {
	rules := builtinRules()

	// Sorted so the first reported error is stable.
	for _, name := range slices.Sorted(maps.Keys(custom)) {
		rule, err := mergeRule(name, rules[name], custom[name])
		if err != nil {
			return nil, err
		}
		rules[name] = rule
	}

	return &Registry{rules: rules}, nil
}

func mergeRule(name string, base Rule, o Override) (Rule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ConfigurationError{Rule: name, Reason: "rule name is empty"}
	}
	if o.hasArgless() && o.hasArg() {
		return nil, &ConfigurationError{Rule: name, Reason: "mixes argumentless and argument funcs"}
	}

	switch b := base.(type) {
	case nil:
		return newRule(name, o)
	case ArgumentlessRule:
		if o.hasArg() {
			return nil, &ConfigurationError{Rule: name, Reason: "built-in rule takes no argument"}
		}
		if o.Test != nil {
			b.Test = o.Test
		}
		if o.Message != nil {
			b.Message = o.Message
		}
		return b, nil
	case ArgumentRule:
		if o.hasArgless() {
			return nil, &ConfigurationError{Rule: name, Reason: "built-in rule takes an argument"}
		}
		if o.ArgTest != nil {
			b.Test = o.ArgTest
		}
		if o.ArgMessage != nil {
			b.Message = o.ArgMessage
		}
		return b, nil
	default:
		return nil, &ConfigurationError{Rule: name, Reason: "unsupported rule kind"}
	}
}

func newRule(name string, o Override) (Rule, error) {
	switch {
	case o.hasArg():
		if o.ArgTest == nil {
			return nil, &ConfigurationError{Rule: name, Reason: "missing test func"}
		}
		if o.ArgMessage == nil {
			return nil, &ConfigurationError{Rule: name, Reason: "missing message func"}
		}
		return ArgumentRule{Test: o.ArgTest, Message: o.ArgMessage}, nil
	default:
		if o.Test == nil {
			return nil, &ConfigurationError{Rule: name, Reason: "missing test func"}
		}
		if o.Message == nil {
			return nil, &ConfigurationError{Rule: name, Reason: "missing message func"}
		}
		return ArgumentlessRule{Test: o.Test, Message: o.Message}, nil
	}
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.rules))
}

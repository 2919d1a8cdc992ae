package validator

// Execute runs every rule against value in order and returns the messages of
// the failing ones. A valid value yields an empty, non-nil slice.
//
// A rule name missing from the registry aborts with *UnknownRuleError.
func Execute(registry *Registry, field, value string, rules []Specifier) ([]string, error) {
	messages := make([]string, 0, len(rules))
	for _, spec := range rules {
		rule, ok := registry.Lookup(spec.Name)
		if !ok {
			return nil, &UnknownRuleError{Rule: spec.Name, Field: field}
		}
		if !rule.check(spec.Arg, value) {
			messages = append(messages, rule.message(spec.Arg, field))
		}
	}
	return messages, nil
}

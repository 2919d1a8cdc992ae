// Package validator implements a declarative field-validation engine: named
// rules are assigned to form fields, each field is checked on demand, and
// the per-field results fold into a form-wide State.
//
// # Architecture
//
// The engine is split into small pure steps, leaves first:
//
//   - Registry          – rule name to Rule; built-ins merged with custom rules
//   - Specifier         – parsed "name" or "name:arg" assignment
//   - Assignment        – field to ordered specifiers; Implicit derives one from
//     FieldDescriptor values and Resolve lets explicit entries win per field
//   - Execute           – runs a field's rules in order and collects messages
//   - State             – immutable snapshot; Apply replaces one field's entry
//
// Form ties them together for hosts: it is built once from explicit
// validations and custom rules, scanned with the host's field descriptors,
// and its Validate method is the per-field trigger.
//
// # Rules
//
// A Rule is either an ArgumentlessRule (required, email) or an ArgumentRule
// curried over the specifier argument (min:3, max:10). The variant is fixed
// when the rule is registered. Built-in rules can be partially overridden:
//
//	form, err := validator.New(
//	    validator.WithValidations(map[string][]string{
//	        "username": {"required", "min:3"},
//	    }),
//	    validator.WithRules(map[string]validator.Override{
//	        "required": {Message: validator.StaticMessage("Please fill this in")},
//	        "slug": {
//	            Test:    func(v string) bool { return !strings.Contains(v, " ") },
//	            Message: func(field string) string { return field + " must not contain spaces" },
//	        },
//	    }),
//	    validator.WithFields(validator.FieldDescriptor{Name: "email", Required: true, Type: "email"}),
//	)
//	if err != nil {
//	    // *ConfigurationError: a new rule without a test or message
//	}
//
//	messages, err := form.Validate("username", "ab")
//	// messages == []string{"username must be at least 3 characters long"}
//
//	state := form.State()
//	state.ErrorCount() // 1
//	state.AllValid()   // false
//
// # Error Handling
//
// Registry problems surface from New as *ConfigurationError. A specifier that
// names an unregistered rule is only reported when the field is validated, as
// *UnknownRuleError; both unwrap to package sentinels for errors.Is.
// Everything else, including a non-numeric min argument, is an ordinary
// validation failure.
package validator

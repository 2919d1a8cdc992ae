package validator

// Rule is a named test-and-message pair. It is either an ArgumentlessRule
// or an ArgumentRule; the variant is chosen at registration time and
// decides how the executor applies a specifier's argument.
type Rule interface {
	TakesArgument() bool

	// check and message apply the rule. arg is ignored by argumentless rules.
	check(arg, value string) bool
	message(arg, field string) string
}

// ArgumentlessRule tests a value directly, e.g. "required" or "email".
type ArgumentlessRule struct {
	Test    func(value string) bool
	Message func(field string) string
}

func (ArgumentlessRule) TakesArgument() bool { return false }

func (r ArgumentlessRule) check(_, value string) bool { return r.Test(value) }

func (r ArgumentlessRule) message(_, field string) string { return r.Message(field) }

// ArgumentRule is curried over the specifier argument, e.g. the "3" in "min:3".
// A specifier without an argument passes the empty string.
type ArgumentRule struct {
	Test    func(arg string) func(value string) bool
	Message func(arg string) func(field string) string
}

func (ArgumentRule) TakesArgument() bool { return true }

func (r ArgumentRule) check(arg, value string) bool { return r.Test(arg)(value) }

func (r ArgumentRule) message(arg, field string) string { return r.Message(arg)(field) }

// Override is a custom rule definition passed to NewRegistry. Set either the
// argumentless pair (Test, Message) or the argument pair (ArgTest, ArgMessage).
// When overriding a built-in, unset funcs fall back to the built-in's.
type Override struct {
	Test    func(value string) bool
	Message func(field string) string

	ArgTest    func(arg string) func(value string) bool
	ArgMessage func(arg string) func(field string) string
}

func (o Override) hasArgless() bool { return o.Test != nil || o.Message != nil }

func (o Override) hasArg() bool { return o.ArgTest != nil || o.ArgMessage != nil }

// StaticMessage returns a message func that ignores the field name.
func StaticMessage(msg string) func(field string) string {
	return func(string) string { return msg }
}

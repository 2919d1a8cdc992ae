package validator

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Built-in rule names.
const (
	RuleRequired = "required"
	RuleEmail    = "email"
	RuleMin      = "min"
	RuleMax      = "max"
)

func builtinRules() map[string]Rule {
	return map[string]Rule{
		RuleRequired: ArgumentlessRule{Test: IsPresent, Message: requiredMessage},
		RuleEmail:    ArgumentlessRule{Test: IsEmail, Message: emailMessage},
		RuleMin:      ArgumentRule{Test: minLength, Message: minMessage},
		RuleMax:      ArgumentRule{Test: maxLength, Message: maxMessage},
	}
}

// IsPresent reports whether value is non-empty after trimming whitespace.
func IsPresent(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsEmail reports whether value is a bare RFC 5322 address with a dotted domain.
// Display-name forms like "Bob <bob@example.com>" are rejected.
func IsEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// minLength fails closed when arg is not a non-negative integer.
func minLength(arg string) func(string) bool {
	n, err := strconv.Atoi(arg)
	return func(value string) bool {
		return err == nil && n >= 0 && utf8.RuneCountInString(value) >= n
	}
}

// maxLength fails closed when arg is not a non-negative integer.
func maxLength(arg string) func(string) bool {
	n, err := strconv.Atoi(arg)
	return func(value string) bool {
		return err == nil && n >= 0 && utf8.RuneCountInString(value) <= n
	}
}

func requiredMessage(field string) string {
	return fmt.Sprintf("%s is required", field)
}

func emailMessage(field string) string {
	return fmt.Sprintf("%s must be a valid email address", field)
}

func minMessage(arg string) func(string) string {
	return func(field string) string {
		return fmt.Sprintf("%s must be at least %s characters long", field, arg)
	}
}

func maxMessage(arg string) func(string) string {
	return func(field string) string {
		return fmt.Sprintf("%s must be at most %s characters long", field, arg)
	}
}

package validator

import "strings"

// Specifier is a parsed rule assignment such as "required" or "min:3".
type Specifier struct {
	Name   string
	Arg    string
	HasArg bool
}

// ParseSpecifier splits raw on its first colon. Anything after the colon is
// the argument, kept verbatim. Parsing never fails and does not consult a
// registry.
func ParseSpecifier(raw string) Specifier {
	name, arg, ok := strings.Cut(raw, ":")
	return Specifier{Name: name, Arg: arg, HasArg: ok}
}

// ParseSpecifiers parses each raw specifier, keeping order.
func ParseSpecifiers(raw []string) []Specifier {
	specs := make([]Specifier, 0, len(raw))
	for _, s := range raw {
		specs = append(specs, ParseSpecifier(s))
	}
	return specs
}

// String encodes the specifier back into "name" or "name:arg" form.
func (s Specifier) String() string {
	if !s.HasArg {
		return s.Name
	}
	return s.Name + ":" + s.Arg
}

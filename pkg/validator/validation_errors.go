package validator

import (
	"errors"
	"strings"
)

// FieldError holds the messages of one invalid field in rule order.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// FieldErrors is the error form of a State: one entry per invalid field,
// ordered by field name. It matches ErrInvalidForm under errors.Is.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidForm.Error())
	for i, e := range fe {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Field)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(e.Messages, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidForm
}

// Messages returns the messages of field, or nil when it is not invalid.
func (fe FieldErrors) Messages(field string) []string {
	for _, e := range fe {
		if e.Field == field {
			return e.Messages
		}
	}
	return nil
}

// Fields lists the invalid field names.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for _, e := range fe {
		fields = append(fields, e.Field)
	}
	return fields
}

// Count is the total number of messages.
func (fe FieldErrors) Count() int {
	n := 0
	for _, e := range fe {
		n += len(e.Messages)
	}
	return n
}

// AsFieldErrors unwraps FieldErrors from an error chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if err == nil || !errors.As(err, &fe) {
		return nil, false
	}
	return fe, true
}

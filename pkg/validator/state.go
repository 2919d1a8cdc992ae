package validator

import (
	"encoding/json"
	"maps"
	"slices"
)

// State is an immutable snapshot of per-field error messages. A field absent
// from the state has never been validated; a field with no messages was
// validated and is valid. The zero value is an empty state.
type State struct {
	fields map[string][]string
}

// NewState builds a state from recorded messages, copying the input.
func NewState(messages map[string][]string) State {
	fields := make(map[string][]string, len(messages))
	for field, msgs := range messages {
		fields[field] = cloneMessages(msgs)
	}
	return State{fields: fields}
}

// Apply returns a new state in which only field's messages are replaced.
// The receiver is left untouched.
func (s State) Apply(field string, messages []string) State {
	fields := make(map[string][]string, len(s.fields)+1)
	maps.Copy(fields, s.fields)
	fields[field] = cloneMessages(messages)
	return State{fields: fields}
}

// Without returns a new state with the given fields removed.
func (s State) Without(fields ...string) State {
	out := maps.Clone(s.fields)
	for _, f := range fields {
		delete(out, f)
	}
	return State{fields: out}
}

// Messages returns the messages recorded for field and whether it has been
// validated at all.
func (s State) Messages(field string) ([]string, bool) {
	msgs, ok := s.fields[field]
	if !ok {
		return nil, false
	}
	return slices.Clone(msgs), true
}

// Validated reports whether field has been validated at least once.
func (s State) Validated(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// ErrorMessages returns a copy of every recorded field's messages.
func (s State) ErrorMessages() map[string][]string {
	out := make(map[string][]string, len(s.fields))
	for field, msgs := range s.fields {
		out[field] = cloneMessages(msgs)
	}
	return out
}

// ErrorCount is the total number of messages across all fields.
func (s State) ErrorCount() int {
	n := 0
	for _, msgs := range s.fields {
		n += len(msgs)
	}
	return n
}

// AllValid is true once at least one field has been validated and no
// recorded field has messages. A fresh state is not valid.
func (s State) AllValid() bool {
	if len(s.fields) == 0 {
		return false
	}
	for _, msgs := range s.fields {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Fields returns the validated field names in sorted order.
func (s State) Fields() []string {
	return slices.Sorted(maps.Keys(s.fields))
}

// Err returns the invalid fields as FieldErrors, or nil when no recorded
// field has messages.
func (s State) Err() error {
	var errs FieldErrors
	for _, field := range s.Fields() {
		if msgs := s.fields[field]; len(msgs) > 0 {
			errs = append(errs, FieldError{Field: field, Messages: slices.Clone(msgs)})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type stateJSON struct {
	ErrorMessages map[string][]string `json:"error_messages"`
	ErrorCount    int                 `json:"error_count"`
	AllValid      bool                `json:"all_valid"`
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		ErrorMessages: s.ErrorMessages(),
		ErrorCount:    s.ErrorCount(),
		AllValid:      s.AllValid(),
	})
}

// UnmarshalJSON restores the messages; the derived counters are recomputed
// rather than trusted.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewState(raw.ErrorMessages)
	return nil
}

func cloneMessages(msgs []string) []string {
	if msgs == nil {
		return []string{}
	}
	return slices.Clone(msgs)
}

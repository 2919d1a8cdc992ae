package validator

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/validate/pkg/logger"
)

// Form is the engine a host wires to its trigger mechanism. It owns the rule
// registry, the resolved assignment and the current State.
//
// Triggers may arrive from several goroutines; each trigger-to-state
// transition is applied atomically, and State never observes a torn update.
type Form struct {
	registry *Registry
	explicit Assignment
	log      *slog.Logger

	mu       sync.Mutex
	fields   []FieldDescriptor
	resolved Assignment
	state    atomic.Pointer[State]
}

// Option configures a Form.
type Option func(*formConfig)

type formConfig struct {
	validations map[string][]string
	rules       map[string]Override
	fields      []FieldDescriptor
	log         *slog.Logger
}

// WithValidations sets the explicit per-field rule lists. A field listed here
// ignores whatever its descriptor implies, even when its list is empty.
func WithValidations(v map[string][]string) Option {
	return func(c *formConfig) {
		c.validations = v
	}
}

// WithRules registers custom rules and built-in overrides.
func WithRules(rules map[string]Override) Option {
	return func(c *formConfig) {
		c.rules = rules
	}
}

// WithFields sets the descriptors scanned for implicit rules.
func WithFields(descriptors ...FieldDescriptor) Option {
	return func(c *formConfig) {
		c.fields = append(c.fields, descriptors...)
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *formConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a Form. It fails with a *ConfigurationError when a custom rule
// cannot be registered.
func New(opts ...Option) (*Form, error) {
	cfg := &formConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	registry, err := NewRegistry(cfg.rules)
	if err != nil {
		cfg.log.Error("failed to build rule registry",
			logger.Component("validator"),
			logger.Error(err),
		)
		return nil, err
	}

	f := &Form{
		registry: registry,
		explicit: ParseAssignment(cfg.validations),
		log:      cfg.log.With(logger.Component("validator")),
	}
	f.state.Store(&State{})
	f.SetFields(cfg.fields...)

	f.log.Debug("form created",
		logger.Count(len(f.resolved)),
		slog.Any("rules", registry.Names()),
	)
	return f, nil
}

// Registry returns the form's rule registry.
func (f *Form) Registry() *Registry {
	return f.registry
}

// SetFields rescans the field set and recomputes the resolved assignment.
// Results already recorded are kept.
func (f *Form) SetFields(descriptors ...FieldDescriptor) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields = slices.Clone(descriptors)
	f.resolved = Resolve(f.explicit, Implicit(descriptors...))
}

// Fields returns the descriptors the form was last scanned with.
func (f *Form) Fields() []FieldDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.fields)
}

// Assignment returns a copy of the resolved assignment.
func (f *Form) Assignment() Assignment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved.Clone()
}

// Rules returns the resolved rules for field. Unassigned fields have none.
func (f *Form) Rules(field string) []Specifier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.resolved[field])
}

// Validate is the trigger: it checks value against field's resolved rules,
// records the result and returns the field's new messages. Other fields'
// recorded results are left as they were.
//
// A field with no assigned rules is recorded as validated and valid.
// An unknown rule name leaves the state unchanged and returns
// *UnknownRuleError.
func (f *Form) Validate(field, value string) ([]string, error) {
	if field == "" {
		return nil, ErrEmptyFieldName
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	messages, err := Execute(f.registry, field, value, f.resolved[field])
	if err != nil {
		attrs := []any{logger.Field(field), logger.Error(err)}
		var unknown *UnknownRuleError
		if errors.As(err, &unknown) {
			attrs = append(attrs, logger.Rule(unknown.Rule))
		}
		f.log.Error("field validation aborted", attrs...)
		return nil, err
	}

	next := f.state.Load().Apply(field, messages)
	f.state.Store(&next)

	f.log.Debug("field validated",
		logger.Field(field),
		logger.Count(len(messages)),
		slog.Int("error_count", next.ErrorCount()),
		slog.Bool("all_valid", next.AllValid()),
	)
	return slices.Clone(messages), nil
}

// ValidateAll triggers every assigned field in sorted order. Fields missing
// from values are validated as empty strings. It stops at the first unknown
// rule and returns the state reached so far.
func (f *Form) ValidateAll(values map[string]string) (State, error) {
	for _, field := range f.Assignment().Fields() {
		if _, err := f.Validate(field, values[field]); err != nil {
			return f.State(), err
		}
	}
	return f.State(), nil
}

// State returns the current snapshot.
func (f *Form) State() State {
	return *f.state.Load()
}

// Restore replaces the current state, e.g. with one loaded from a store.
func (f *Form) Restore(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Store(&s)
}

// Pending returns the assigned fields that have not been validated yet,
// in sorted order.
func (f *Form) Pending() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending(f.state.Load())
}

func (f *Form) pending(state *State) []string {
	var pending []string
	for _, field := range f.resolved.Fields() {
		if !state.Validated(field) {
			pending = append(pending, field)
		}
	}
	return pending
}

// Summary is the aggregate view exposed to hosts.
type Summary struct {
	ErrorMessages map[string][]string `json:"error_messages"`
	ErrorCount    int                 `json:"error_count"`
	AllValid      bool                `json:"all_valid"`
	Pending       []string            `json:"pending,omitempty"`
}

// Summary reports the current state. AllValid additionally requires every
// assigned field to have been validated, so a half-filled form whose touched
// fields pass is not reported valid.
func (f *Form) Summary() Summary {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.state.Load()
	pending := f.pending(state)
	return Summary{
		ErrorMessages: state.ErrorMessages(),
		ErrorCount:    state.ErrorCount(),
		AllValid:      state.AllValid() && len(pending) == 0,
		Pending:       pending,
	}
}

// Reset discards every recorded result.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Store(&State{})
}

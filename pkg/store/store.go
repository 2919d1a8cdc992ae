package store

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrymomot/validate/pkg/validator"
)

// Record is a persisted form instance: the fields the host scanned and the
// aggregate state reached so far.
type Record struct {
	ID        string                      `json:"id"`
	Fields    []validator.FieldDescriptor `json:"fields"`
	State     validator.State             `json:"state"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (r *Record) clone() *Record {
	out := *r
	out.Fields = slices.Clone(r.Fields)
	return &out
}

// Store defines the interface for form instance persistence
type Store interface {
	// Save creates or replaces a record
	Save(ctx context.Context, record *Record) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record by ID
	Delete(ctx context.Context, id string) error
}

func validate(record *Record) error {
	if record == nil || record.ID == "" {
		return ErrInvalidRecord
	}
	return nil
}

// Package store provides the Store catalog: one physical or online retail
// location. Orders, invoices and warehouse transactions are owned by a store.
package store

import (
	"context"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
)

// Status defines whether a store accepts new documents.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
)

// Store represents a retail location.
type Store struct {
	entity.Catalog

	// Address is the physical address (may be empty for online-only stores)
	Address string `db:"address" json:"address,omitempty"`

	// Owner is the responsible person's name
	Owner string `db:"owner" json:"owner,omitempty"`

	// Phone is the contact phone
	Phone string `db:"phone" json:"phone,omitempty"`

	// Status controls whether new orders may be created
	Status Status `db:"status" json:"status"`
}

// New creates a new active Store.
func New(code, name string) *Store {
	return &Store{
		Catalog: entity.NewCatalog(code, name),
		Status:  StatusActive,
	}
}

// Validate implements entity.Validatable.
func (s *Store) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch s.Status {
	case StatusActive, StatusPaused:
	default:
		return apperror.NewValidation("invalid store status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}

	return nil
}

// IsActive reports whether the store accepts new documents.
func (s *Store) IsActive() bool {
	return s.Status == StatusActive
}

// Pause stops the store from accepting new documents.
func (s *Store) Pause() {
	s.Status = StatusPaused
}

// Resume reactivates a paused store.
func (s *Store) Resume() {
	s.Status = StatusActive
}

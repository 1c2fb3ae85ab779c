// Package tx defines the transaction management abstraction used by
// domain services. The PostgreSQL implementation lives in
// internal/infrastructure/storage/postgres.
package tx

import "context"

// Manager runs functions within a database transaction.
// Nested calls reuse the transaction already carried by the context.
type Manager interface {
	// RunInTransaction executes fn inside a transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Package ports defines the contracts between the order core and the
// infrastructure: the order repository, the read-only directories it consults
// and the unit of work that binds them to one transaction.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// UserDirectory returns a UserDirectory reading through the current transaction.
	UserDirectory() UserDirectory

	// RestaurantDirectory returns a RestaurantDirectory reading through the current transaction.
	RestaurantDirectory() RestaurantDirectory

	// MenuCatalog returns a MenuCatalog reading through the current transaction.
	MenuCatalog() MenuCatalog
}

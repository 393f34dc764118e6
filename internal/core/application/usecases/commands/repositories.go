// Package commands contains business operations that modify orders.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DirectoryFactory provides the read-only collaborators within a transaction.
	DirectoryFactory interface {
		UserDirectory() ports.UserDirectory
		RestaurantDirectory() ports.RestaurantDirectory
		MenuCatalog() ports.MenuCatalog
	}

	// OrderUoW manages transactions for operations that touch only stored orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that also consult the directories and the menu.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   users := uow.UserDirectory()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DirectoryFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies the current time to handlers.
type Clock func() time.Time

// SystemClock returns the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return SystemClock
	}
	return clock
}

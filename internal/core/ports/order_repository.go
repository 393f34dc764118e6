package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded together with its items.
type OrderRepository interface {
	// Add persists a new order aggregate and its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Items are replaced
	// wholesale when they differ from the stored set. The write is
	// conditional on the aggregate's version and fails with
	// errs.VersionIsInvalidError on mismatch; on success the aggregate's
	// version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding
	// transaction ends. Concurrent mutations of the same order serialize here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order and, through the cascade, its items.
	// Returns errs.ObjectNotFoundError when nothing was deleted.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindPendingOlderThan returns ids of Pending orders placed before cutoff,
	// oldest first, at most limit of them.
	FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error)
}

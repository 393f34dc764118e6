// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Order writes and directory reads share one transaction
//   - Written aggregates are logged once their transaction commits
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    if r := recover(); r != nil {
//	        uow.Rollback(ctx)
//	        panic(r)
//	    }
//	}()
//
//	// Perform repository operations
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Multi-Repository Transactions:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// All operations within same transaction
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	exists, err := uow.RestaurantDirectory().RestaurantExists(ctx, restaurantID)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - A UnitOfWork instance is not safe for concurrent use; create one per operation
//   - Order mutations take a row lock through OrderRepository().GetForUpdate
package postgres

import (
	"context"
	"log/slog"

	"fooddelivery/internal/adapters/out/postgres/directoryrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
//
// Example:
//
//	db := setupGormDB() // your GORM database setup
//	factory := NewGormUnitOfWorkFactory(db, logger)
//	uow := factory.Create()
//	defer func() {
//	    if err := recover(); err != nil {
//	        uow.Rollback(ctx)
//	        panic(err)
//	    }
//	}()
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
// Committed aggregates are logged at debug level; a nil logger discards them.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
// Each instance maintains its own transaction state and aggregate tracking,
// ensuring proper isolation between concurrent operations.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db, logger)
//	uow := factory.Create()
//
//	// Use the unit of work
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// Perform repository operations
//	err := uow.OrderRepository().Add(ctx, order)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Implements the Unit of Work pattern using GORM's
// transaction capabilities to ensure data consistency and proper rollback handling.
//
// The unit of work records every aggregate its repositories write. Commit logs
// them and starts a fresh list; Rollback drops them.
//
// Example usage:
//
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("failed to begin transaction: %w", err)
//	}
//
//	// Perform multiple repository operations
//	order := createNewOrder()
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return fmt.Errorf("failed to add order: %w", err)
//	}
//
//	if err := uow.Commit(ctx); err != nil {
//	    return fmt.Errorf("failed to commit transaction: %w", err)
//	}
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []TrackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("failed to begin transaction: %w", err)
//	}
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit operation fails.
//
// Example:
//
//	// Perform repository operations within transaction
//	err := uow.OrderRepository().Add(ctx, order)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	if err := uow.Commit(ctx); err != nil {
//	    return fmt.Errorf("failed to commit changes: %w", err)
//	}
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.logCommitted(ctx)
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards all changes made within the current transaction.
// Database returns to its state before the transaction began.
// After rollback, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback operation fails.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        uow.Rollback(ctx)
//	        panic(r)
//	    }
//	}()
//
//	// If any operation fails, rollback the transaction
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) logCommitted(ctx context.Context) {
	for _, tracked := range uow.trackedAggregates {
		attrs := []slog.Attr{slog.String("id", tracked.ID.String())}
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			attrs = append(attrs,
				slog.String("status", o.Status().String()),
				slog.Int("version", o.Version()))
		}
		uow.logger.LogAttrs(ctx, slog.LevelDebug, "order committed", attrs...)
	}
}

// OrderRepository provides access to order persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
//
// The returned repository tracks every order it adds or updates.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.Conn(), uow)
}

// UserDirectory reads users through the current transaction.
func (uow *GormUnitOfWork) UserDirectory() ports.UserDirectory {
	return directoryrepo.NewGormDirectory(uow.Conn())
}

// RestaurantDirectory reads restaurants through the current transaction.
func (uow *GormUnitOfWork) RestaurantDirectory() ports.RestaurantDirectory {
	return directoryrepo.NewGormDirectory(uow.Conn())
}

// MenuCatalog reads current menu prices through the current transaction, so
// the snapshot taken for an order is consistent with the rest of the command.
func (uow *GormUnitOfWork) MenuCatalog() ports.MenuCatalog {
	return directoryrepo.NewGormDirectory(uow.Conn())
}

// Conn returns the active transaction, or the base connection outside one.
func (uow *GormUnitOfWork) Conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// This method is typically called by repository implementations when aggregates
// are added, updated, or otherwise modified.
//
// Tracked aggregates are logged by Commit and discarded by Rollback.
//
// Example (typically used by repository implementations):
//
//	func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
//	    dto := fromDomain(aggregate)
//	    if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
//	        return err
//	    }
//	    r.tracker.TrackAggregate(aggregate.ID(), aggregate)
//	    return nil
//	}
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written in the open transaction,
// in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(out, uow.trackedAggregates)
	return out
}

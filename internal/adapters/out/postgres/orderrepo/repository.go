package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row guarded by its version and brings the stored
// item set in line with the aggregate. Items are immutable, so lines that are
// gone are deleted and unknown ones inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"estimated_delivery_time": dto.EstimatedDeliveryTime,
				"actual_delivery_time":    dto.ActualDeliveryTime,
				"status":                  dto.Status,
				"total_amount":            dto.TotalAmount,
				"delivery_address":        dto.DeliveryAddress,
				"special_instructions":    dto.SpecialInstructions,
				"delivery_fee":            dto.DeliveryFee,
				"version":                 gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate)
		}

		return replaceItems(tx, dto)
	})
	if err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, aggregate *order.Order) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}
	return errs.NewVersionIsInvalidErrorWithCause("order",
		fmt.Errorf("order %s is no longer at version %d", aggregate.ID(), aggregate.Version()))
}

func replaceItems(tx *gorm.DB, dto OrderDTO) error {
	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}

	if err := tx.Where("order_id = ? AND id NOT IN ?", dto.ID, keep).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) == 0 {
		return nil
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Items).Error
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the order; the foreign key cascade removes its items.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	return nil
}

// FindPendingOlderThan lists Pending orders placed before cutoff, oldest first.
func (r *GormOrderRepository) FindPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND order_date < ?", int(order.Pending), cutoff).
		Order("order_date, id").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, kid)
	}

	return ids, nil
}

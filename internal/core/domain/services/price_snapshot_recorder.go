package services

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// MenuItemSource returns the current catalog entry for a menu item, or an
// error wrapping errs.ErrObjectNotFound when the item does not exist.
type MenuItemSource interface {
	GetMenuItem(ctx context.Context, menuItemID kernel.UUID) (catalog.MenuItem, error)
}

// PriceSnapshotRecorder freezes catalog prices into order items.
//
// The catalog is read exactly once per item. The returned item holds its own
// copy of the name and price, so later catalog edits do not change it.
//
// Example usage:
//
//	recorder := services.NewPriceSnapshotRecorder(menuCatalog)
//	item, err := recorder.Record(ctx, menuItemID, 2)
//	if errors.Is(err, errs.ErrReferenceNotFound) {
//	    // the menu item does not exist
//	}
type PriceSnapshotRecorder struct {
	menu MenuItemSource
}

func NewPriceSnapshotRecorder(menu MenuItemSource) (*PriceSnapshotRecorder, error) {
	if menu == nil {
		return nil, errs.NewValueIsRequiredError("menu")
	}
	return &PriceSnapshotRecorder{menu: menu}, nil
}

// Record builds a new order item with a fresh id for quantity units of the
// given menu item.
//
// Returns:
//   - a validation error when quantity is not positive (the catalog is not read)
//   - *errs.ReferenceNotFoundError when the menu item is unknown
//   - any other catalog error wrapped as is
func (r *PriceSnapshotRecorder) Record(ctx context.Context, menuItemID kernel.UUID, quantity int) (*order.Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	menuItem, err := r.menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewReferenceNotFoundErrorWithCause("menu item", menuItemID, err)
		}
		return nil, fmt.Errorf("read menu item %s: %w", menuItemID, err)
	}

	return order.NewItem(kernel.NewUUID(), menuItem.ID, quantity, menuItem.Name, menuItem.Price)
}

// ItemRequest is one requested line of an order.
type ItemRequest struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// RecordAll snapshots every request in order. The first failure aborts and
// no items are returned.
func (r *PriceSnapshotRecorder) RecordAll(ctx context.Context, requests []ItemRequest) ([]*order.Item, error) {
	if len(requests) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	items := make([]*order.Item, 0, len(requests))
	for idx, req := range requests {
		item, err := r.Record(ctx, req.MenuItemID, req.Quantity)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", idx, err)
		}
		items = append(items, item)
	}

	return items, nil
}

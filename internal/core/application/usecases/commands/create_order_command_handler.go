package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places new orders.
//
// Inside one transaction it checks that the user and the restaurant exist,
// snapshots every requested menu item at its current price, builds the
// Pending order and stores it. Any failure leaves nothing behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, nil)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrReferenceNotFound) {
//	    // unknown user, restaurant or menu item
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// A nil clock means SystemClock.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle processes the order creation command and returns the stored order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userExists, err := uow.UserDirectory().UserExists(ctx, cmd.UserID())
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !userExists {
		return nil, errs.NewReferenceNotFoundError("user", cmd.UserID())
	}

	restaurantExists, err := uow.RestaurantDirectory().RestaurantExists(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, fmt.Errorf("check restaurant: %w", err)
	}
	if !restaurantExists {
		return nil, errs.NewReferenceNotFoundError("restaurant", cmd.RestaurantID())
	}

	recorder, err := services.NewPriceSnapshotRecorder(uow.MenuCatalog())
	if err != nil {
		return nil, err
	}
	items, err := recorder.RecordAll(ctx, itemRequests(cmd.Lines()))
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.RestaurantID(), cmd.DeliveryAddress(), items, h.clock())
	if err != nil {
		return nil, err
	}
	placed.SetSpecialInstructions(cmd.SpecialInstructions())
	if err = placed.SetDeliveryFee(cmd.DeliveryFee()); err != nil {
		return nil, err
	}
	if err = placed.SetEstimatedDeliveryTime(cmd.EstimatedDeliveryTime()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

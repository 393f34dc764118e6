package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies partial changes to an order.
//
// The order row is locked for the whole transaction. When the command carries
// items they are re-snapshotted at current catalog prices and replace the
// stored set; the total is recomputed by the aggregate.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated order, errs.ObjectNotFoundError when the order
// does not exist, or errs.InvalidTransitionError when it is delivered or
// cancelled.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !current.IsEditable() {
		return nil, errs.NewInvalidTransitionErrorWithCause(current.Status().String(), "UPDATED",
			fmt.Errorf("%s orders can no longer be changed", current.Status()))
	}

	if address := cmd.DeliveryAddress(); address != nil {
		if err = current.ChangeDeliveryAddress(*address); err != nil {
			return nil, err
		}
	}
	if instructions := cmd.SpecialInstructions(); instructions != nil {
		current.SetSpecialInstructions(instructions)
	}
	if fee := cmd.DeliveryFee(); fee != nil {
		if err = current.SetDeliveryFee(fee); err != nil {
			return nil, err
		}
	}
	if eta := cmd.EstimatedDeliveryTime(); eta != nil {
		if err = current.SetEstimatedDeliveryTime(eta); err != nil {
			return nil, err
		}
	}

	if cmd.ReplacesItems() {
		recorder, recErr := services.NewPriceSnapshotRecorder(uow.MenuCatalog())
		if recErr != nil {
			return nil, recErr
		}
		items, recErr := recorder.RecordAll(ctx, itemRequests(cmd.Lines()))
		if recErr != nil {
			return nil, recErr
		}
		if err = current.ReplaceItems(items); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}

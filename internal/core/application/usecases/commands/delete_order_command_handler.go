package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// deletedState names the pseudo-status reported when a delete is refused.
const deletedState = "DELETED"

// DeleteOrderCommandHandler removes an order together with its items.
// Delivered and cancelled orders are kept for revenue and history.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown order and
// errs.InvalidTransitionError for an order in a terminal status.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if current.Status().IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			current.Status().String(), deletedState,
			fmt.Errorf("order %s is %s and is kept", current.ID(), current.Status()),
		)
	}

	if err = orderRepo.Delete(ctx, current.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

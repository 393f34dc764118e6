package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels orders.
//
// Unlike the other handlers it reports an unknown order as (false, nil).
// A delivered order cannot be cancelled; an already cancelled one is
// reported as cancelled again without a write.
//
// Example:
//
//	cancelled, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // already delivered
//	case err != nil:
//	    return err
//	case !cancelled:
//	    // no such order
//	}
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	changed, err := applyStatus(current, order.Cancelled, h.clock())
	if err != nil {
		return false, err
	}
	if !changed {
		return true, nil
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

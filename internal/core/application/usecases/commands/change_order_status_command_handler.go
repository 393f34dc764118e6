package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler drives the order state machine.
//
// The transition is validated against the locked row, so two concurrent
// requests for the same order cannot both pass the check. Requesting the
// terminal status the order already has succeeds without a write.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewChangeOrderStatusCommandHandler creates the handler. A nil clock means SystemClock.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle returns the order after the transition.
//
// Returns:
//   - errs.ObjectNotFoundError when the order does not exist
//   - errs.InvalidTransitionError when the state machine forbids the move
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	changed, err := applyStatus(current, cmd.Status(), h.clock())
	if err != nil {
		return nil, err
	}
	if !changed {
		return current, nil
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}

// applyStatus reports whether the status actually moved.
func applyStatus(o *order.Order, next order.Status, now time.Time) (bool, error) {
	before := o.Status()
	if err := o.ChangeStatus(next, now); err != nil {
		return false, err
	}
	return o.Status() != before, nil
}

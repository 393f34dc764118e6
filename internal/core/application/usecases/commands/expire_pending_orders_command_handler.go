package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// ExpirePendingOrdersCommandHandler cancels orders that stayed Pending too long.
//
// Candidates are listed in one short transaction, then each order is
// cancelled in its own transaction under a row lock. An order that left
// Pending in the meantime is skipped. Failures on single orders do not stop
// the run; they are returned joined together with the number of orders
// that were cancelled.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory, clock Clock) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock()
	candidates, err := h.findCandidates(ctx, now.Add(-cmd.OlderThan()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	var (
		expired   int
		expireErr []error
	)
	for _, id := range candidates {
		if ctx.Err() != nil {
			expireErr = append(expireErr, ctx.Err())
			break
		}

		cancelled, cancelErr := h.expireOne(ctx, id, now)
		if cancelErr != nil {
			expireErr = append(expireErr, fmt.Errorf("expire order %s: %w", id, cancelErr))
			continue
		}
		if cancelled {
			expired++
		}
	}

	return expired, errors.Join(expireErr...)
}

func (h ExpirePendingOrdersCommandHandler) findCandidates(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().FindPendingOlderThan(ctx, cutoff, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h ExpirePendingOrdersCommandHandler) expireOne(ctx context.Context, id kernel.UUID, now time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if current.Status() != order.Pending {
		return false, nil
	}

	if err = current.Cancel(now); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

package postgres_test

import (
	"context"
	"errors"
	"sync"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

type orderUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

// runConcurrently starts every call at once and returns their errors in call order.
func runConcurrently(calls ...func() error) []error {
	results := make([]error, len(calls))
	start := make(chan struct{})

	var wg sync.WaitGroup
	for idx, call := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[idx] = call()
		}()
	}
	close(start)
	wg.Wait()

	return results
}

func (suite *UnitOfWorkIntegrationTestSuite) storedOrder(ctx context.Context) *order.Order {
	o := suite.createTestOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) reload(ctx context.Context, o *order.Order) *order.Order {
	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	return stored
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentStatusChanges_OnlyOneWins() {
	ctx := context.Background()
	target := suite.storedOrder(ctx)
	handler := commands.NewChangeOrderStatusCommandHandler(orderUoWFactory{suite.factory}, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), order.Confirmed)
	suite.Require().NoError(err)

	confirm := func() error {
		_, handleErr := handler.Handle(ctx, cmd)
		return handleErr
	}
	results := runConcurrently(confirm, confirm)

	var succeeded, rejected int
	for _, result := range results {
		switch {
		case result == nil:
			succeeded++
		case errors.Is(result, errs.ErrInvalidTransition):
			rejected++
		default:
			suite.Failf("unexpected error", "%v", result)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, rejected, "The loser sees the committed status, not a stale version")

	stored := suite.reload(ctx, target)
	suite.Equal(order.Confirmed, stored.Status())
	suite.Equal(2, stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentConfirmAndCancel_Serialize() {
	ctx := context.Background()
	target := suite.storedOrder(ctx)
	factory := orderUoWFactory{suite.factory}
	statusHandler := commands.NewChangeOrderStatusCommandHandler(factory, nil)
	cancelHandler := commands.NewCancelOrderCommandHandler(factory, nil)

	confirmCmd, err := commands.NewChangeOrderStatusCommand(target.ID(), order.Confirmed)
	suite.Require().NoError(err)
	cancelCmd, err := commands.NewCancelOrderCommand(target.ID())
	suite.Require().NoError(err)

	var cancelled bool
	results := runConcurrently(
		func() error {
			_, handleErr := statusHandler.Handle(ctx, confirmCmd)
			return handleErr
		},
		func() error {
			var handleErr error
			cancelled, handleErr = cancelHandler.Handle(ctx, cancelCmd)
			return handleErr
		},
	)

	suite.Require().NoError(results[1])
	suite.True(cancelled)

	stored := suite.reload(ctx, target)
	suite.Equal(order.Cancelled, stored.Status())
	if results[0] == nil {
		suite.Equal(3, stored.Version(), "Confirm committed first, then cancel")
	} else {
		suite.True(errors.Is(results[0], errs.ErrInvalidTransition), "%v", results[0])
		suite.Equal(2, stored.Version(), "Cancel committed first, confirm was refused")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentCancels_AreIdempotent() {
	ctx := context.Background()
	target := suite.storedOrder(ctx)
	handler := commands.NewCancelOrderCommandHandler(orderUoWFactory{suite.factory}, nil)
	cmd, err := commands.NewCancelOrderCommand(target.ID())
	suite.Require().NoError(err)

	outcomes := make([]bool, 4)
	calls := make([]func() error, len(outcomes))
	for idx := range calls {
		calls[idx] = func() error {
			var handleErr error
			outcomes[idx], handleErr = handler.Handle(ctx, cmd)
			return handleErr
		}
	}

	for _, result := range runConcurrently(calls...) {
		suite.Require().NoError(result)
	}
	for _, outcome := range outcomes {
		suite.True(outcome)
	}

	stored := suite.reload(ctx, target)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal(2, stored.Version(), "Only the first cancel writes")
}

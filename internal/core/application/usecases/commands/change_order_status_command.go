package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests moving an order to another lifecycle status.
//
// Example:
//
//	status, err := order.ParseStatus("out_for_delivery")
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewChangeOrderStatusCommand(orderID, status)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.UUID, status order.Status) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

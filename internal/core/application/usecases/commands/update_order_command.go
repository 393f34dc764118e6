package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderChanges lists the fields to modify. A nil field is left unchanged.
// A non-nil Items slice replaces every item of the order and must not be empty.
type OrderChanges struct {
	DeliveryAddress       *string
	SpecialInstructions   *string
	DeliveryFee           *decimal.Decimal
	EstimatedDeliveryTime *time.Time
	Items                 []OrderLine
}

// UpdateOrderCommand represents a partial modification of an existing order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	deliveryAddress       *kernel.DeliveryAddress
	specialInstructions   *string
	deliveryFee           *decimal.Decimal
	estimatedDeliveryTime *time.Time
	lines                 []OrderLine
	replaceItems          bool

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.UUID, changes OrderChanges) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		specialInstructions: copyOptionalString(changes.SpecialInstructions),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeliveryAddress(changes.DeliveryAddress),
		cmd.setDeliveryFee(changes.DeliveryFee),
		cmd.setEstimatedDeliveryTime(changes.EstimatedDeliveryTime),
		cmd.setLines(changes.Items),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) DeliveryAddress() *kernel.DeliveryAddress {
	return c.deliveryAddress
}

func (c UpdateOrderCommand) SpecialInstructions() *string {
	return c.specialInstructions
}

func (c UpdateOrderCommand) DeliveryFee() *decimal.Decimal {
	return c.deliveryFee
}

func (c UpdateOrderCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

// ReplacesItems reports whether the command carries a new item set.
func (c UpdateOrderCommand) ReplacesItems() bool {
	return c.replaceItems
}

func (c UpdateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setDeliveryAddress(raw *string) error {
	if raw == nil {
		return nil
	}
	address, err := kernel.NewDeliveryAddress(*raw)
	if err != nil {
		return err
	}
	c.deliveryAddress = &address
	return nil
}

func (c *UpdateOrderCommand) setDeliveryFee(fee *decimal.Decimal) error {
	validated, err := validateDeliveryFee(fee)
	if err != nil {
		return err
	}
	c.deliveryFee = validated
	return nil
}

func (c *UpdateOrderCommand) setEstimatedDeliveryTime(at *time.Time) error {
	if at == nil {
		return nil
	}
	if at.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryTime", errors.New("time is zero"))
	}
	value := *at
	c.estimatedDeliveryTime = &value
	return nil
}

func (c *UpdateOrderCommand) setLines(lines []OrderLine) error {
	if lines == nil {
		return nil
	}
	validated, err := validateOrderLines(lines)
	if err != nil {
		return err
	}
	c.lines = validated
	c.replaceItems = true
	return nil
}

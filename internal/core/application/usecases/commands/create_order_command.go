package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderExtras are the optional attributes of a new order.
type OrderExtras struct {
	SpecialInstructions   *string
	DeliveryFee           *decimal.Decimal
	EstimatedDeliveryTime *time.Time
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), userID, restaurantID, "221B Baker Street",
//	    []OrderLine{{MenuItemID: pizzaID, Quantity: 2}}, OrderExtras{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	userID          kernel.UUID
	restaurantID    kernel.UUID
	deliveryAddress kernel.DeliveryAddress
	lines           []OrderLine

	specialInstructions   *string
	deliveryFee           *decimal.Decimal
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Existence of the user,
// restaurant and menu items is checked by the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	restaurantID kernel.UUID,
	deliveryAddress string,
	lines []OrderLine,
	extras OrderExtras,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		specialInstructions: copyOptionalString(extras.SpecialInstructions),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setLines(lines),
		cmd.setDeliveryFee(extras.DeliveryFee),
		cmd.setEstimatedDeliveryTime(extras.EstimatedDeliveryTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) DeliveryAddress() kernel.DeliveryAddress {
	return c.deliveryAddress
}

func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c CreateOrderCommand) SpecialInstructions() *string {
	return c.specialInstructions
}

func (c CreateOrderCommand) DeliveryFee() *decimal.Decimal {
	return c.deliveryFee
}

func (c CreateOrderCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(raw string) error {
	address, err := kernel.NewDeliveryAddress(raw)
	if err != nil {
		return err
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	validated, err := validateOrderLines(lines)
	if err != nil {
		return err
	}
	c.lines = validated
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee *decimal.Decimal) error {
	validated, err := validateDeliveryFee(fee)
	if err != nil {
		return err
	}
	c.deliveryFee = validated
	return nil
}

func (c *CreateOrderCommand) setEstimatedDeliveryTime(at *time.Time) error {
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

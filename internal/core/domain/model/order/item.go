package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxItemQuantity is the largest quantity a single order line accepts.
const MaxItemQuantity = 10000

// ErrItemIsNotConstructed indicates that the Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a catalog dish, a quantity and the name and
// price the dish had when it was ordered.
//
// The snapshot fields (name and price at order time) are set once by the
// constructor and have no setters, so later catalog changes never reach a
// placed order. The subtotal is always derived from them.
//
// Example:
//
//	item, err := order.NewItem(kernel.NewUUID(), menuItem.ID, 2, menuItem.Name, menuItem.Price)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(item.Subtotal()) // 2 × price
type Item struct {
	id         kernel.UUID
	orderID    *kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	nameAtOrderTime  string
	priceAtOrderTime decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem creates an order line with a fresh price snapshot.
//
// Business rules:
//   - id and menuItemID must be valid UUIDs
//   - quantity must be in 1..MaxItemQuantity
//   - name must not be blank
//   - price must be greater than 0
func NewItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	nameAtOrderTime string,
	priceAtOrderTime decimal.Decimal,
) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setSnapshot(nameAtOrderTime, priceAtOrderTime),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs a persisted order line. The snapshot comes from
// the order_items row, never from the catalog.
func RestoreItem(
	id kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	nameAtOrderTime string,
	priceAtOrderTime decimal.Decimal,
) (*Item, error) {
	item, err := NewItem(id, menuItemID, quantity, nameAtOrderTime, priceAtOrderTime)
	if err != nil {
		return nil, err
	}

	if err = item.attachTo(orderID); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the owning order, nil until the item is attached.
func (i *Item) OrderID() *kernel.UUID {
	return i.orderID
}

func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) NameAtOrderTime() string {
	return i.nameAtOrderTime
}

func (i *Item) PriceAtOrderTime() decimal.Decimal {
	return i.priceAtOrderTime
}

// Subtotal is quantity × price at order time.
func (i *Item) Subtotal() decimal.Decimal {
	return i.priceAtOrderTime.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) attachTo(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if i.orderID != nil && !i.orderID.IsEqual(orderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderItem",
			fmt.Errorf("item %s already belongs to order %s", i.id, i.orderID),
		)
	}
	i.orderID = &orderID
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setSnapshot(name string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("nameAtOrderTime")
	}
	if err := kernel.ValidatePositiveAmount("priceAtOrderTime", price); err != nil {
		return err
	}

	i.nameAtOrderTime = name
	i.priceAtOrderTime = price
	return nil
}

package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer's food order. It is the aggregate root that owns
// its items and drives the order lifecycle from placement to delivery or
// cancellation.
//
// Order follows these invariants:
//   - Must have valid user, restaurant and order identifiers
//   - Must carry at least one item and a non-blank delivery address
//   - totalAmount always equals the sum of item subtotals plus the delivery fee
//   - Status transitions follow the state machine in Status
//   - Items and delivery fee are frozen once the order is delivered or cancelled
//   - actualDeliveryTime is set exactly once, when the order enters Delivered
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID

	orderedAt             time.Time
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time

	status              Status
	deliveryAddress     kernel.DeliveryAddress
	specialInstructions *string
	deliveryFee         *decimal.Decimal

	items       []*Item
	totalAmount decimal.Decimal

	// version is bumped by persistence on every successful write.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order stamped with orderedAt. Optional attributes
// (delivery fee, special instructions, estimated delivery time) are set
// afterwards through their setters.
//
// Example:
//
//	address, _ := kernel.NewDeliveryAddress("221B Baker Street")
//	o, err := order.NewOrder(kernel.NewUUID(), userID, restaurantID, address, items, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	restaurantID kernel.UUID,
	deliveryAddress kernel.DeliveryAddress,
	items []*Item,
	orderedAt time.Time,
) (*Order, error) {
	order := &Order{
		status:  Pending,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setRestaurantID(restaurantID),
		order.setOrderedAt(orderedAt),
		order.ChangeDeliveryAddress(deliveryAddress),
		order.ReplaceItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID                    kernel.UUID
	UserID                kernel.UUID
	RestaurantID          kernel.UUID
	OrderedAt             time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Status                Status
	DeliveryAddress       string
	SpecialInstructions   *string
	DeliveryFee           *decimal.Decimal
	Items                 []*Item
	Version               int
}

// RestoreOrder reconstructs an order from storage without replaying the
// lifecycle. The total is recomputed from the restored items and fee.
func RestoreOrder(p RestoreParams) (*Order, error) {
	address, err := kernel.NewDeliveryAddress(p.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	order := &Order{
		actualDeliveryTime: p.ActualDeliveryTime,
		version:            p.Version,
		guard:              guard.NewConstructorGuard(),
	}

	// Status goes last: terminal orders refuse item and fee changes.
	if err = errors.Join(
		order.setID(p.ID),
		order.setUserID(p.UserID),
		order.setRestaurantID(p.RestaurantID),
		order.setOrderedAt(p.OrderedAt),
		order.ChangeDeliveryAddress(address),
		order.SetEstimatedDeliveryTime(p.EstimatedDeliveryTime),
		order.SetDeliveryFee(p.DeliveryFee),
		order.ReplaceItems(p.Items),
		order.setStatus(p.Status),
	); err != nil {
		return nil, err
	}
	order.SetSpecialInstructions(p.SpecialInstructions)

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) UserID() kernel.UUID {
	return o.userID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// OrderedAt returns the placement time. It never changes after creation.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime is nil until the order is delivered.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryAddress() kernel.DeliveryAddress {
	return o.deliveryAddress
}

func (o *Order) SpecialInstructions() *string {
	return o.specialInstructions
}

// DeliveryFee returns nil when no fee was set; the total then treats it as zero.
func (o *Order) DeliveryFee() *decimal.Decimal {
	return o.deliveryFee
}

// Items returns a copy of the item list.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion records that persistence stored the current state under the
// next version number.
func (o *Order) AdvanceVersion() {
	o.version++
}

// ChangeDeliveryAddress replaces the delivery address.
func (o *Order) ChangeDeliveryAddress(address kernel.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

// SetSpecialInstructions replaces the free-form note. Blank input clears it.
func (o *Order) SetSpecialInstructions(instructions *string) {
	if instructions == nil || strings.TrimSpace(*instructions) == "" {
		o.specialInstructions = nil
		return
	}
	value := strings.TrimSpace(*instructions)
	o.specialInstructions = &value
}

// SetEstimatedDeliveryTime replaces the estimate; nil clears it.
func (o *Order) SetEstimatedDeliveryTime(at *time.Time) error {
	if at == nil {
		o.estimatedDeliveryTime = nil
		return nil
	}
	if at.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryTime", errors.New("time is zero"))
	}
	value := *at
	o.estimatedDeliveryTime = &value
	return nil
}

// SetDeliveryFee replaces the fee, rounded to cents, and recomputes the
// total. nil means no fee. Delivered and cancelled orders keep their fee.
func (o *Order) SetDeliveryFee(fee *decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	var next *decimal.Decimal
	if fee != nil {
		if err := kernel.ValidateNonNegativeAmount("deliveryFee", *fee); err != nil {
			return err
		}
		value := kernel.RoundMoney(*fee)
		next = &value
	}

	total, err := calculateTotal(o.items, next)
	if err != nil {
		return err
	}

	o.deliveryFee = next
	o.totalAmount = total
	return nil
}

// ReplaceItems swaps the whole item list and recomputes the total.
// The list must not be empty and every item must be constructed. Delivered
// and cancelled orders keep their items.
func (o *Order) ReplaceItems(items []*Item) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	total, err := calculateTotal(items, o.deliveryFee)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err = item.attachTo(o.id); err != nil {
			return err
		}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	o.totalAmount = total
	return nil
}

// ChangeStatus moves the order along the state machine.
//
// A terminal status requested again is accepted as a no-op. Entering
// Delivered stamps actualDeliveryTime with now; no other transition
// touches it.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}
	if o.status == next {
		return nil
	}

	if next == Delivered {
		deliveredAt := now
		o.actualDeliveryTime = &deliveredAt
	}
	o.status = next
	return nil
}

// Cancel is ChangeStatus(Cancelled). Cancelling a delivered order fails with
// an invalid transition; cancelling a cancelled order is a no-op.
func (o *Order) Cancel(now time.Time) error {
	return o.ChangeStatus(Cancelled, now)
}

// IsEditable reports whether items, fee and delivery details may still change.
func (o *Order) IsEditable() bool {
	return !o.status.IsTerminal()
}

func (o *Order) ensureEditable() error {
	if o.IsEditable() {
		return nil
	}
	return errs.NewInvalidTransitionErrorWithCause(
		o.status.String(), "UPDATED", fmt.Errorf("%s orders can no longer be changed", o.status))
}

// calculateTotal sums item subtotals and the fee. The result must fit the
// stored NUMERIC(10,2) total.
func calculateTotal(items []*Item, fee *decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	if fee != nil {
		total = total.Add(*fee)
	}

	total = kernel.RoundMoney(total)
	if err := kernel.ValidateStorableAmount("totalAmount", total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderedAt = orderedAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderLine is a requested (menu item, quantity) pair.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

func validateOrderLines(lines []OrderLine) ([]OrderLine, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}

	var lineErrs []error
	for idx, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].menuItemId", idx), err))
		}
		switch {
		case line.Quantity <= 0:
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", idx), fmt.Errorf("%d is not greater than 0", line.Quantity)))
		case line.Quantity > order.MaxItemQuantity:
			lineErrs = append(lineErrs, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("items[%d].quantity", idx), line.Quantity, 1, order.MaxItemQuantity))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	out := make([]OrderLine, len(lines))
	copy(out, lines)
	return out, nil
}

func itemRequests(lines []OrderLine) []services.ItemRequest {
	requests := make([]services.ItemRequest, 0, len(lines))
	for _, line := range lines {
		requests = append(requests, services.ItemRequest{MenuItemID: line.MenuItemID, Quantity: line.Quantity})
	}
	return requests
}

func validateDeliveryFee(fee *decimal.Decimal) (*decimal.Decimal, error) {
	if fee == nil {
		return nil, nil
	}
	if err := errors.Join(
		kernel.ValidateNonNegativeAmount("deliveryFee", *fee),
		kernel.ValidateStorableAmount("deliveryFee", *fee),
	); err != nil {
		return nil, err
	}
	value := *fee
	return &value, nil
}

func copyOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	value := *s
	return &value
}

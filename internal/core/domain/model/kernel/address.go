package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// MaxAddressLength matches the width of the delivery_address column.
const MaxAddressLength = 255

// ErrDeliveryAddressIsNotConstructed is returned when a zero-value DeliveryAddress is used.
var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress constructor")

// DeliveryAddress is the street address an order is delivered to.
// It is an immutable value object; surrounding whitespace is trimmed and
// the result must not be empty.
//
// Example:
//
//	addr, err := kernel.NewDeliveryAddress("  221B Baker Street ")
//	if err != nil {
//	    // blank or too long
//	}
//	fmt.Println(addr) // 221B Baker Street
type DeliveryAddress struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewDeliveryAddress validates and normalizes a raw address.
func NewDeliveryAddress(raw string) (DeliveryAddress, error) {
	addr := DeliveryAddress{
		guard: guard.NewConstructorGuard(),
	}

	if err := addr.setValue(raw); err != nil {
		return DeliveryAddress{}, err
	}

	return addr, nil
}

func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

func (a DeliveryAddress) String() string {
	return a.value
}

func (a DeliveryAddress) IsEqual(other DeliveryAddress) bool {
	return a.value == other.value
}

func (a *DeliveryAddress) setValue(raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	if n := utf8.RuneCountInString(value); n > MaxAddressLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryAddress",
			fmt.Errorf("%d characters exceeds the limit of %d", n, MaxAddressLength),
		)
	}

	a.value = value
	return nil
}

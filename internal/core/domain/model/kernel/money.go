package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for amounts (NUMERIC(10,2)).
const MoneyScale = 2

// MaxAmount is the largest amount a NUMERIC(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// ValidatePositiveAmount rejects zero and negative amounts, e.g. catalog prices.
func ValidatePositiveAmount(paramName string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", amount))
	}
	return nil
}

// ValidateNonNegativeAmount rejects negative amounts, e.g. delivery fees.
func ValidateNonNegativeAmount(paramName string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", amount))
	}
	return nil
}

// ValidateStorableAmount rejects amounts above MaxAmount.
func ValidateStorableAmount(paramName string, amount decimal.Decimal) error {
	if amount.GreaterThan(MaxAmount) {
		return errs.NewValueIsOutOfRangeError(paramName, amount.String(), "0", MaxAmount.String())
	}
	return nil
}

// RoundMoney rounds an amount to the persisted money scale.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

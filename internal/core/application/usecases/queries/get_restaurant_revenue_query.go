package queries

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetRestaurantRevenueQueryIsNotConstructed = errors.New(
	"GetRestaurantRevenueQuery must be created via NewGetRestaurantRevenueQuery constructor",
)

// GetRestaurantRevenueQuery sums what a restaurant earned from delivered
// orders placed inside an optional, inclusive date window.
type GetRestaurantRevenueQuery struct {
	restaurantID kernel.UUID
	fromDate     *time.Time
	toDate       *time.Time

	guard guard.ConstructorGuard
}

func NewGetRestaurantRevenueQuery(restaurantID kernel.UUID, fromDate, toDate *time.Time) (GetRestaurantRevenueQuery, error) {
	var idErr, windowErr error
	if err := restaurantID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		windowErr = errs.NewValueIsInvalidErrorWithCause("fromDate",
			fmt.Errorf("%s is after toDate %s", fromDate.Format(time.RFC3339), toDate.Format(time.RFC3339)))
	}
	if err := errors.Join(idErr, windowErr); err != nil {
		return GetRestaurantRevenueQuery{}, err
	}

	return GetRestaurantRevenueQuery{
		restaurantID: restaurantID,
		fromDate:     fromDate,
		toDate:       toDate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetRestaurantRevenueQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantRevenueQueryIsNotConstructed)
}

func (q GetRestaurantRevenueQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

func (q GetRestaurantRevenueQuery) FromDate() *time.Time {
	return q.fromDate
}

func (q GetRestaurantRevenueQuery) ToDate() *time.Time {
	return q.toDate
}

package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery retrieves one order with its items.
//
// Example:
//
//	query, err := NewGetOrderDetailsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderDetailsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return GetOrderDetailsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

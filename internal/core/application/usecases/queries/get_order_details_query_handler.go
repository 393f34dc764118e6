package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads an order and its items.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("id = ?", query.OrderID().Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderView{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return OrderView{}, err
	}

	view, err := row.toView()
	if err != nil {
		return OrderView{}, err
	}

	views := []OrderView{view}
	if err = attachItems(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}

	return views[0], nil
}

package queries

import (
	"context"
	"strings"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRestaurantRevenueQueryHandler aggregates item subtotals of delivered
// orders. Delivery fees are not revenue and are left out. A restaurant with
// no matching orders, known or not, earns zero.
type GetRestaurantRevenueQueryHandler struct {
	db *gorm.DB
}

func NewGetRestaurantRevenueQueryHandler(db *gorm.DB) GetRestaurantRevenueQueryHandler {
	return GetRestaurantRevenueQueryHandler{db: db}
}

func (h GetRestaurantRevenueQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantRevenueQuery,
) (decimal.Decimal, error) {
	if err := query.Validate(); err != nil {
		return decimal.Zero, err
	}

	var sql strings.Builder
	sql.WriteString(`
		SELECT COALESCE(SUM(oi.quantity * oi.price_at_order_time), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = ?
		  AND o.status = ?`)
	args := []any{query.RestaurantID().Bytes(), int(order.Delivered)}

	if from := query.FromDate(); from != nil {
		sql.WriteString(" AND o.order_date >= ?")
		args = append(args, *from)
	}
	if to := query.ToDate(); to != nil {
		sql.WriteString(" AND o.order_date <= ?")
		args = append(args, *to)
	}

	var revenue decimal.Decimal
	if err := h.db.WithContext(ctx).Raw(sql.String(), args...).Row().Scan(&revenue); err != nil {
		return decimal.Zero, err
	}

	return revenue, nil
}

// Package queries contains read-only operations over stored orders.
// Handlers read straight from the database through GORM and return flat
// response structs; they never load aggregates or take locks.
package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order with its items.
type OrderView struct {
	ID                    kernel.UUID
	UserID                kernel.UUID
	RestaurantID          kernel.UUID
	OrderDate             time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Status                order.Status
	TotalAmount           decimal.Decimal
	DeliveryAddress       string
	SpecialInstructions   *string
	DeliveryFee           *decimal.Decimal
	Items                 []OrderItemView
}

// OrderItemView is one order line as it was priced at order time.
type OrderItemView struct {
	ID               kernel.UUID
	MenuItemID       kernel.UUID
	Quantity         int
	PriceAtOrderTime decimal.Decimal
	NameAtOrderTime  string
	Subtotal         decimal.Decimal
}

// orderRow and orderItemRow mirror the columns the queries select.
type orderRow struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	RestaurantID          uuid.UUID
	OrderDate             time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Status                order.Status
	TotalAmount           decimal.Decimal
	DeliveryAddress       string
	SpecialInstructions   *string
	DeliveryFee           decimal.NullDecimal
}

type orderItemRow struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	MenuItemID       uuid.UUID
	Quantity         int
	PriceAtOrderTime decimal.Decimal
	NameAtOrderTime  string
}

const orderColumns = "id, user_id, restaurant_id, order_date, estimated_delivery_time, actual_delivery_time, " +
	"status, total_amount, delivery_address, special_instructions, delivery_fee"

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	userID, err := kernel.UUIDFromBytes(r.UserID[:])
	if err != nil {
		return OrderView{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(r.RestaurantID[:])
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:                    id,
		UserID:                userID,
		RestaurantID:          restaurantID,
		OrderDate:             r.OrderDate,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		ActualDeliveryTime:    r.ActualDeliveryTime,
		Status:                r.Status,
		TotalAmount:           r.TotalAmount,
		DeliveryAddress:       r.DeliveryAddress,
		SpecialInstructions:   r.SpecialInstructions,
		Items:                 make([]OrderItemView, 0),
	}
	if r.DeliveryFee.Valid {
		fee := r.DeliveryFee.Decimal
		view.DeliveryFee = &fee
	}

	return view, nil
}

func (r orderItemRow) toView() (OrderItemView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderItemView{}, err
	}
	menuItemID, err := kernel.UUIDFromBytes(r.MenuItemID[:])
	if err != nil {
		return OrderItemView{}, err
	}

	return OrderItemView{
		ID:               id,
		MenuItemID:       menuItemID,
		Quantity:         r.Quantity,
		PriceAtOrderTime: r.PriceAtOrderTime,
		NameAtOrderTime:  r.NameAtOrderTime,
		Subtotal:         r.PriceAtOrderTime.Mul(decimal.NewFromInt(int64(r.Quantity))),
	}, nil
}

// attachItems loads the items of the given orders in one query and fills
// their Items slices in the stored line order.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i, view := range views {
		ids = append(ids, view.ID.Bytes())
		index[view.ID.Bytes()] = i
	}

	var rows []orderItemRow
	err := db.WithContext(ctx).
		Table("order_items").
		Select("id, order_id, menu_item_id, quantity, price_at_order_time, name_at_order_time").
		Where("order_id IN ?", ids).
		Order("order_id, position").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		item, itemErr := row.toView()
		if itemErr != nil {
			return itemErr
		}
		i := index[row.OrderID]
		views[i].Items = append(views[i].Items, item)
	}

	return nil
}

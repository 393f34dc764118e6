// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and the orders / order_items tables.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items are owned by the order and removed with it.
type OrderDTO struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID           `gorm:"type:uuid;not null;index"`
	RestaurantID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderDate             time.Time           `gorm:"type:timestamptz;not null;index"`
	EstimatedDeliveryTime *time.Time          `gorm:"type:timestamptz"`
	ActualDeliveryTime    *time.Time          `gorm:"type:timestamptz"`
	Status                int                 `gorm:"type:smallint;not null;index"`
	TotalAmount           decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress       string              `gorm:"type:varchar(255);not null"`
	SpecialInstructions   *string             `gorm:"type:text"`
	DeliveryFee           decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Version               int                 `gorm:"type:int;not null;default:1"`
	Items                 []OrderItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line with its price snapshot. Position keeps the
// order in which the lines were requested.
type OrderItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	Position         int             `gorm:"type:int;not null"`
	Quantity         int             `gorm:"type:int;not null"`
	PriceAtOrderTime decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	NameAtOrderTime  string          `gorm:"type:varchar(255);not null"`
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          orderID,
			MenuItemID:       item.MenuItemID().Bytes(),
			Position:         position,
			Quantity:         item.Quantity(),
			PriceAtOrderTime: item.PriceAtOrderTime(),
			NameAtOrderTime:  item.NameAtOrderTime(),
		})
	}

	var fee decimal.NullDecimal
	if f := aggregate.DeliveryFee(); f != nil {
		fee = decimal.NewNullDecimal(*f)
	}

	return OrderDTO{
		ID:                    orderID,
		UserID:                aggregate.UserID().Bytes(),
		RestaurantID:          aggregate.RestaurantID().Bytes(),
		OrderDate:             aggregate.OrderedAt(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		Status:                int(aggregate.Status()),
		TotalAmount:           aggregate.TotalAmount(),
		DeliveryAddress:       aggregate.DeliveryAddress().String(),
		SpecialInstructions:   aggregate.SpecialInstructions(),
		DeliveryFee:           fee,
		Version:               aggregate.Version(),
		Items:                 items,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder; item snapshots come
// from the order_items rows only.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(id, itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var fee *decimal.Decimal
	if dto.DeliveryFee.Valid {
		value := dto.DeliveryFee.Decimal
		fee = &value
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                    id,
		UserID:                userID,
		RestaurantID:          restaurantID,
		OrderedAt:             dto.OrderDate,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		Status:                order.Status(dto.Status),
		DeliveryAddress:       dto.DeliveryAddress,
		SpecialInstructions:   dto.SpecialInstructions,
		DeliveryFee:           fee,
		Items:                 items,
		Version:               dto.Version,
	})
}

func itemToDomain(orderID kernel.UUID, dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, orderID, menuItemID, dto.Quantity, dto.NameAtOrderTime, dto.PriceAtOrderTime)
}

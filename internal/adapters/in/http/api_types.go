package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount rendered as a JSON number with two fraction digits.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// UnmarshalJSON accepts both 12.5 and "12.5".
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

func moneyPtr(d *decimal.Decimal) *Money {
	if d == nil {
		return nil
	}
	m := Money(*d)
	return &m
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	UserId                openapi_types.UUID `json:"userId"`
	RestaurantId          openapi_types.UUID `json:"restaurantId"`
	DeliveryAddress       string             `json:"deliveryAddress"`
	SpecialInstructions   *string            `json:"specialInstructions,omitempty"`
	DeliveryFee           *Money             `json:"deliveryFee,omitempty"`
	EstimatedDeliveryTime *time.Time         `json:"estimatedDeliveryTime,omitempty"`
	Items                 []NewOrderItem     `json:"items"`
}

// OrderChanges defines model for OrderChanges. Absent fields stay unchanged.
type OrderChanges struct {
	DeliveryAddress       *string         `json:"deliveryAddress,omitempty"`
	SpecialInstructions   *string         `json:"specialInstructions,omitempty"`
	DeliveryFee           *Money          `json:"deliveryFee,omitempty"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	Items                 *[]NewOrderItem `json:"items,omitempty"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id               openapi_types.UUID `json:"id"`
	MenuItemId       openapi_types.UUID `json:"menuItemId"`
	Quantity         int                `json:"quantity"`
	PriceAtOrderTime Money              `json:"priceAtOrderTime"`
	NameAtOrderTime  string             `json:"nameAtOrderTime"`
	Subtotal         Money              `json:"subtotal"`
}

// Order defines model for Order.
type Order struct {
	Id                    openapi_types.UUID `json:"id"`
	UserId                openapi_types.UUID `json:"userId"`
	RestaurantId          openapi_types.UUID `json:"restaurantId"`
	OrderDate             time.Time          `json:"orderDate"`
	EstimatedDeliveryTime *time.Time         `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time         `json:"actualDeliveryTime"`
	Status                string             `json:"status"`
	TotalAmount           Money              `json:"totalAmount"`
	DeliveryAddress       string             `json:"deliveryAddress"`
	SpecialInstructions   *string            `json:"specialInstructions"`
	DeliveryFee           *Money             `json:"deliveryFee"`
	Items                 []OrderItem        `json:"items"`
}

// OrderPage defines model for OrderPage.
type OrderPage struct {
	Content       []Order `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// Revenue defines model for Revenue.
type Revenue struct {
	RestaurantId openapi_types.UUID `json:"restaurantId"`
	Revenue      Money              `json:"revenue"`
}

// ListOrdersParams defines parameters for ListOrdersByUser and ListOrdersByRestaurant.
type ListOrdersParams struct {
	Page     *int       `form:"page,omitempty" json:"page,omitempty"`
	Size     *int       `form:"size,omitempty" json:"size,omitempty"`
	SortBy   *string    `form:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortDir  *string    `form:"sortDir,omitempty" json:"sortDir,omitempty"`
	Status   *string    `form:"status,omitempty" json:"status,omitempty"`
	FromDate *time.Time `form:"fromDate,omitempty" json:"fromDate,omitempty"`
	ToDate   *time.Time `form:"toDate,omitempty" json:"toDate,omitempty"`
}

// RevenueParams defines parameters for GetRestaurantRevenue.
type RevenueParams struct {
	FromDate *time.Time `form:"fromDate,omitempty" json:"fromDate,omitempty"`
	ToDate   *time.Time `form:"toDate,omitempty" json:"toDate,omitempty"`
}

// Package catalog holds the read models the order core consumes from the user
// directory, the restaurant directory and the menu catalog. Orders reference
// these records by id only; they are never owned or mutated by the order core.
package catalog

import (
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// User is the subset of a registered customer the order core needs.
type User struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// Restaurant is the subset of a restaurant record the order core needs.
type Restaurant struct {
	ID   kernel.UUID
	Name string
}

// MenuItem carries the current catalog name and price of a dish. The price
// read here is what gets frozen into an order item.
type MenuItem struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        decimal.Decimal
}

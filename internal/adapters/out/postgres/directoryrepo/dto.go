// Package directoryrepo reads the user, restaurant and menu tables the order
// core references. The order core never writes these tables.
package directoryrepo

import (
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserDTO maps the users table.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Email string    `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// RestaurantDTO maps the restaurants table.
type RestaurantDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for restaurants.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO maps the menu_items table. Price is the current catalog price.
type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func userToDomain(dto UserDTO) (catalog.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.User{}, err
	}
	return catalog.User{ID: id, Name: dto.Name, Email: dto.Email}, nil
}

func restaurantToDomain(dto RestaurantDTO) (catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Restaurant{}, err
	}
	return catalog.Restaurant{ID: id, Name: dto.Name}, nil
}

func menuItemToDomain(dto MenuItemDTO) (catalog.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.MenuItem{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return catalog.MenuItem{}, err
	}
	return catalog.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        dto.Price,
	}, nil
}

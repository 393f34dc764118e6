package directoryrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectory implements ports.UserDirectory, ports.RestaurantDirectory and
// ports.MenuCatalog over one connection or transaction.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a directory reader bound to db.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// UserExists reports whether a user with the given id is registered.
func (r *GormDirectory) UserExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.exists(ctx, &UserDTO{}, id)
}

// GetUser retrieves a user by ID.
func (r *GormDirectory) GetUser(ctx context.Context, id kernel.UUID) (catalog.User, error) {
	var dto UserDTO
	if err := r.first(ctx, &dto, "userId", id); err != nil {
		return catalog.User{}, err
	}
	return userToDomain(dto)
}

// RestaurantExists reports whether a restaurant with the given id exists.
func (r *GormDirectory) RestaurantExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.exists(ctx, &RestaurantDTO{}, id)
}

// GetRestaurant retrieves a restaurant by ID.
func (r *GormDirectory) GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error) {
	var dto RestaurantDTO
	if err := r.first(ctx, &dto, "restaurantId", id); err != nil {
		return catalog.Restaurant{}, err
	}
	return restaurantToDomain(dto)
}

// GetMenuItem reads the current name and price of a dish.
func (r *GormDirectory) GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	var dto MenuItemDTO
	if err := r.first(ctx, &dto, "menuItemId", id); err != nil {
		return catalog.MenuItem{}, err
	}
	return menuItemToDomain(dto)
}

func (r *GormDirectory) exists(ctx context.Context, model any, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormDirectory) first(ctx context.Context, dest any, paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(paramName, id.String())
		}
		return err
	}
	return nil
}

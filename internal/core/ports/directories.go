package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
)

// UserDirectory is the read-only view of registered users.
type UserDirectory interface {
	UserExists(ctx context.Context, id kernel.UUID) (bool, error)

	// GetUser returns errs.ObjectNotFoundError for an unknown id.
	GetUser(ctx context.Context, id kernel.UUID) (catalog.User, error)
}

// RestaurantDirectory is the read-only view of restaurants.
type RestaurantDirectory interface {
	RestaurantExists(ctx context.Context, id kernel.UUID) (bool, error)

	// GetRestaurant returns errs.ObjectNotFoundError for an unknown id.
	GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error)
}

// MenuCatalog exposes current menu item names and prices.
//
// Example:
//
//	item, err := menu.GetMenuItem(ctx, menuItemID)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // dish was removed from the menu
//	}
type MenuCatalog interface {
	GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error)
}

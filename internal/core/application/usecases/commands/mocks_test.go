package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) UserExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) GetUser(ctx context.Context, id kernel.UUID) (catalog.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.User), args.Error(1)
}

type MockRestaurantDirectory struct{ mock.Mock }

func (m *MockRestaurantDirectory) RestaurantExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestaurantDirectory) GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Restaurant), args.Error(1)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.MenuItem), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserDirectory() ports.UserDirectory {
	args := m.Called()
	return args.Get(0).(ports.UserDirectory)
}

func (m *MockUoW) RestaurantDirectory() ports.RestaurantDirectory {
	args := m.Called()
	return args.Get(0).(ports.RestaurantDirectory)
}

func (m *MockUoW) MenuCatalog() ports.MenuCatalog {
	args := m.Called()
	return args.Get(0).(ports.MenuCatalog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func newMenuItem(name, price string) catalog.MenuItem {
	return catalog.MenuItem{
		ID:           kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
		Name:         name,
		Price:        decimal.RequireFromString(price),
	}
}

// newStoredOrder builds an order as the repository would return it, moved
// along the lifecycle through path.
func newStoredOrder(t *testing.T, path ...order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, "Burger", decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	address, err := kernel.NewDeliveryAddress("1 Main St")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), address,
		[]*order.Item{item}, fixedNow.Add(-time.Hour))
	require.NoError(t, err)

	for _, status := range path {
		require.NoError(t, o.ChangeStatus(status, fixedNow.Add(-time.Minute)))
	}
	return o
}

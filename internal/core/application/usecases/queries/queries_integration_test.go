package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/directoryrepo"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesIntegrationTestSuite runs the read handlers against the migrated schema.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository

	userID       kernel.UUID
	otherUserID  kernel.UUID
	restaurantID kernel.UUID
	burgerID     kernel.UUID
	friesID      kernel.UUID
	base         time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	migrator, err := migrations.New(dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(migrator.Up())
	suite.Require().NoError(migrator.Close())

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.orders = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE order_items, orders, menu_items, restaurants, users").Error)

	suite.base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.userID = kernel.NewUUID()
	suite.otherUserID = kernel.NewUUID()
	suite.restaurantID = kernel.NewUUID()
	suite.burgerID = kernel.NewUUID()
	suite.friesID = kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&[]directoryrepo.UserDTO{
		{ID: suite.userID.Bytes(), Name: "Ann", Email: "ann@example.com"},
		{ID: suite.otherUserID.Bytes(), Name: "Bob", Email: "bob@example.com"},
	}).Error)
	suite.Require().NoError(suite.db.Create(&directoryrepo.RestaurantDTO{
		ID: suite.restaurantID.Bytes(), Name: "Diner",
	}).Error)
	suite.Require().NoError(suite.db.Create(&[]directoryrepo.MenuItemDTO{
		{ID: suite.burgerID.Bytes(), RestaurantID: suite.restaurantID.Bytes(), Name: "Burger", Price: decimal.RequireFromString("5.00")},
		{ID: suite.friesID.Bytes(), RestaurantID: suite.restaurantID.Bytes(), Name: "Fries", Price: decimal.RequireFromString("2.50")},
	}).Error)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderDetails_ReturnsOrderWithItems() {
	ctx := context.Background()
	fee := decimal.RequireFromString("3.00")
	stored := suite.storeOrder(suite.userID, suite.base, 2, order.Pending, &fee)

	query, err := queries.NewGetOrderDetailsQuery(stored.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderDetailsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(stored.ID(), view.ID)
	suite.Equal(suite.userID, view.UserID)
	suite.Equal(suite.restaurantID, view.RestaurantID)
	suite.Equal(order.Pending, view.Status)
	suite.True(suite.base.Equal(view.OrderDate))
	suite.True(decimal.RequireFromString("15.50").Equal(view.TotalAmount))
	suite.Require().NotNil(view.DeliveryFee)
	suite.True(fee.Equal(*view.DeliveryFee))

	suite.Require().Len(view.Items, 2)
	suite.Equal("Burger", view.Items[0].NameAtOrderTime)
	suite.Equal(2, view.Items[0].Quantity)
	suite.True(decimal.RequireFromString("10.00").Equal(view.Items[0].Subtotal))
	suite.Equal("Fries", view.Items[1].NameAtOrderTime)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderDetails_SnapshotSurvivesPriceChange() {
	ctx := context.Background()
	stored := suite.storeOrder(suite.userID, suite.base, 1, order.Pending, nil)

	suite.Require().NoError(suite.db.Model(&directoryrepo.MenuItemDTO{}).
		Where("id = ?", suite.burgerID.Bytes()).
		Updates(map[string]any{"price": decimal.RequireFromString("9.99"), "name": "Deluxe Burger"}).Error)

	query, err := queries.NewGetOrderDetailsQuery(stored.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderDetailsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("Burger", view.Items[0].NameAtOrderTime)
	suite.True(decimal.RequireFromString("5.00").Equal(view.Items[0].PriceAtOrderTime))
	suite.True(decimal.RequireFromString("7.50").Equal(view.TotalAmount))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderDetails_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderDetailsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderDetailsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrdersByUser_PagesNewestFirst() {
	ctx := context.Background()
	var ids []kernel.UUID
	for i := range 5 {
		ids = append(ids, suite.storeOrder(suite.userID, suite.base.Add(time.Duration(i)*time.Hour), 1, order.Pending, nil).ID())
	}
	suite.storeOrder(suite.otherUserID, suite.base, 1, order.Pending, nil)

	handler := queries.NewListOrdersQueryHandler(suite.db)

	query, err := queries.NewListOrdersByUserQuery(suite.userID, 0, 2, queries.OrderFilter{}, queries.DefaultSort)
	suite.Require().NoError(err)
	page, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(5), page.TotalElements)
	suite.Equal(3, page.TotalPages)
	suite.Require().Len(page.Orders, 2)
	suite.Equal(ids[4], page.Orders[0].ID)
	suite.Equal(ids[3], page.Orders[1].ID)
	suite.Len(page.Orders[0].Items, 2)

	query, err = queries.NewListOrdersByUserQuery(suite.userID, 2, 2, queries.OrderFilter{}, queries.DefaultSort)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(page.Orders, 1)
	suite.Equal(ids[0], page.Orders[0].ID)

	query, err = queries.NewListOrdersByUserQuery(suite.userID, 7, 2, queries.OrderFilter{}, queries.DefaultSort)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(page.Orders)
	suite.Equal(int64(5), page.TotalElements)
	suite.Equal(3, page.TotalPages)
}

func (suite *QueriesIntegrationTestSuite) TestListOrdersByUser_UnknownUser_ReturnsEmptyPage() {
	query, err := queries.NewListOrdersByUserQuery(kernel.NewUUID(), 0, 20, queries.OrderFilter{}, queries.DefaultSort)
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(page.Orders)
	suite.Zero(page.TotalElements)
	suite.Zero(page.TotalPages)
}

func (suite *QueriesIntegrationTestSuite) TestListOrdersByRestaurant_FiltersAndSorts() {
	ctx := context.Background()
	small := suite.storeOrder(suite.userID, suite.base, 1, order.Delivered, nil)
	large := suite.storeOrder(suite.otherUserID, suite.base.Add(time.Hour), 3, order.Delivered, nil)
	suite.storeOrder(suite.userID, suite.base.Add(2*time.Hour), 2, order.Cancelled, nil)
	late := suite.storeOrder(suite.userID, suite.base.Add(48*time.Hour), 2, order.Delivered, nil)

	handler := queries.NewListOrdersQueryHandler(suite.db)
	delivered := order.Delivered

	query, err := queries.NewListOrdersByRestaurantQuery(suite.restaurantID, 0, 20,
		queries.OrderFilter{Status: &delivered}, queries.NormalizeSort("totalAmount", "asc"))
	suite.Require().NoError(err)
	page, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(page.Orders, 3)
	suite.Equal(small.ID(), page.Orders[0].ID)
	suite.Equal(late.ID(), page.Orders[1].ID)
	suite.Equal(large.ID(), page.Orders[2].ID)

	from := suite.base
	to := suite.base.Add(time.Hour)
	query, err = queries.NewListOrdersByRestaurantQuery(suite.restaurantID, 0, 20,
		queries.OrderFilter{Status: &delivered, FromDate: &from, ToDate: &to}, queries.NormalizeSort("orderDate", "asc"))
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.TotalElements, "Both window bounds are inclusive")
	suite.Require().Len(page.Orders, 2)
	suite.Equal(small.ID(), page.Orders[0].ID)
	suite.Equal(large.ID(), page.Orders[1].ID)
}

func (suite *QueriesIntegrationTestSuite) TestRestaurantRevenue_SumsDeliveredItemsOnly() {
	ctx := context.Background()
	fee := decimal.RequireFromString("4.00")
	suite.storeOrder(suite.userID, suite.base, 1, order.Delivered, &fee)
	suite.storeOrder(suite.userID, suite.base.Add(24*time.Hour), 2, order.Delivered, nil)
	suite.storeOrder(suite.userID, suite.base, 3, order.Cancelled, nil)
	suite.storeOrder(suite.userID, suite.base, 3, order.OutForDelivery, nil)

	handler := queries.NewGetRestaurantRevenueQueryHandler(suite.db)

	query, err := queries.NewGetRestaurantRevenueQuery(suite.restaurantID, nil, nil)
	suite.Require().NoError(err)
	revenue, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("20.00").Equal(revenue), revenue.String())

	to := suite.base
	query, err = queries.NewGetRestaurantRevenueQuery(suite.restaurantID, nil, &to)
	suite.Require().NoError(err)
	revenue, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("7.50").Equal(revenue), revenue.String())

	from := suite.base.Add(time.Minute)
	query, err = queries.NewGetRestaurantRevenueQuery(suite.restaurantID, &from, nil)
	suite.Require().NoError(err)
	revenue, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("12.50").Equal(revenue), revenue.String())
}

func (suite *QueriesIntegrationTestSuite) TestRestaurantRevenue_NoOrders_ReturnsZero() {
	query, err := queries.NewGetRestaurantRevenueQuery(kernel.NewUUID(), nil, nil)
	suite.Require().NoError(err)

	revenue, err := queries.NewGetRestaurantRevenueQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(decimal.Zero.Equal(revenue))
}

// storeOrder persists an order of burgers × 5.00 plus one fries × 2.50 and
// walks it to the requested status.
func (suite *QueriesIntegrationTestSuite) storeOrder(
	userID kernel.UUID,
	orderedAt time.Time,
	burgers int,
	status order.Status,
	fee *decimal.Decimal,
) *order.Order {
	ctx := context.Background()

	burger, err := order.NewItem(kernel.NewUUID(), suite.burgerID, burgers, "Burger", decimal.RequireFromString("5.00"))
	suite.Require().NoError(err)
	fries, err := order.NewItem(kernel.NewUUID(), suite.friesID, 1, "Fries", decimal.RequireFromString("2.50"))
	suite.Require().NoError(err)
	address, err := kernel.NewDeliveryAddress("1 Main Street")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), userID, suite.restaurantID, address, []*order.Item{burger, fries}, orderedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetDeliveryFee(fee))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	path := map[order.Status][]order.Status{
		order.Pending:        nil,
		order.OutForDelivery: {order.Confirmed, order.Preparing, order.OutForDelivery},
		order.Delivered:      {order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered},
		order.Cancelled:      {order.Cancelled},
	}[status]
	for _, next := range path {
		suite.Require().NoError(o.ChangeStatus(next, orderedAt.Add(30*time.Minute)))
		suite.Require().NoError(suite.orders.Update(ctx, o))
	}

	return o
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

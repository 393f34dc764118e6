package cmd

import (
	"context"
	"log/slog"

	httpapi "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		clock:      commands.SystemClock,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantRevenueQueryHandler() queries.GetRestaurantRevenueQueryHandler {
	return queries.NewGetRestaurantRevenueQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrder:       c.CreateUpdateOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		GetOrderDetails:   c.CreateGetOrderDetailsQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		RestaurantRevenue: c.CreateGetRestaurantRevenueQueryHandler(),
	}, c.logger)
}

// CreateJobManager returns the background jobs enabled by the config.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var enabled []jobs.Job
	if c.config.ExpiryEnabled() {
		enabled = append(enabled, jobs.NewPendingOrderExpiryJob(
			c.CreateExpirePendingOrdersCommandHandler(),
			c.config.OrderPendingTTL,
			c.config.OrderExpiryBatchSize,
			c.config.OrderExpirySchedule,
			c.logger,
		))
	}
	return jobs.NewJobManager(enabled...)
}

// HealthCheck pings the database.
func (c *CompositionRoot) HealthCheck(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// Package http exposes the order core over REST with echo. Requests are
// validated against the embedded OpenAPI contract before they reach Server.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (bool, error)
	}

	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	GetOrderDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.OrderPage, error)
	}

	RestaurantRevenueHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantRevenueQuery) (decimal.Decimal, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	UpdateOrder       UpdateOrderHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	CancelOrder       CancelOrderHandler
	DeleteOrder       DeleteOrderHandler
	GetOrderDetails   GetOrderDetailsHandler
	ListOrders        ListOrdersHandler
	RestaurantRevenue RestaurantRevenueHandler
}

// Server implements the order endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	extras := commands.OrderExtras{
		SpecialInstructions:   body.SpecialInstructions,
		EstimatedDeliveryTime: body.EstimatedDeliveryTime,
	}
	if body.DeliveryFee != nil {
		fee := body.DeliveryFee.Decimal()
		extras.DeliveryFee = &fee
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		toKernelUUID(body.UserId),
		toKernelUUID(body.RestaurantId),
		body.DeliveryAddress,
		orderLines(body.Items),
		extras,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrder handles GET /api/orders/{orderId} and GET /api/orders/{orderId}/details.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.handlers.GetOrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOrder handles PUT /api/orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body OrderChanges
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	changes := commands.OrderChanges{
		DeliveryAddress:       body.DeliveryAddress,
		SpecialInstructions:   body.SpecialInstructions,
		EstimatedDeliveryTime: body.EstimatedDeliveryTime,
	}
	if body.DeliveryFee != nil {
		fee := body.DeliveryFee.Decimal()
		changes.DeliveryFee = &fee
	}
	if body.Items != nil {
		changes.Items = orderLines(*body.Items)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, changes)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// UpdateOrderStatus handles PATCH /api/orders/{orderId}/status?status=X.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	status, err := order.ParseStatus(ctx.QueryParam("status"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	changed, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(changed))
}

// CancelOrder handles DELETE /api/orders/{orderId} and its
// POST /api/orders/{orderId}/cancel alias.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if !cancelled {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "order not found: " + orderID.String(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/admin/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListOrdersByUser handles GET /api/orders/user/{userId}.
func (s *Server) ListOrdersByUser(ctx echo.Context) error {
	return s.listOrders(ctx, "userId", queries.NewListOrdersByUserQuery)
}

// ListOrdersByRestaurant handles GET /api/orders/restaurant/{restaurantId}.
func (s *Server) ListOrdersByRestaurant(ctx echo.Context) error {
	return s.listOrders(ctx, "restaurantId", queries.NewListOrdersByRestaurantQuery)
}

type listQueryFactory func(
	ownerID kernel.UUID,
	page, size int,
	filter queries.OrderFilter,
	sort queries.Sort,
) (queries.ListOrdersQuery, error)

func (s *Server) listOrders(ctx echo.Context, ownerParam string, newQuery listQueryFactory) error {
	ownerID, err := bindPathUUID(ctx, ownerParam)
	if err != nil {
		return s.writeError(ctx, err)
	}

	params, err := bindListOrdersParams(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	filter := queries.OrderFilter{FromDate: params.FromDate, ToDate: params.ToDate}
	if params.Status != nil {
		status, parseErr := order.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		filter.Status = &status
	}

	page, size := 0, queries.DefaultPageSize
	if params.Page != nil {
		page = *params.Page
	}
	if params.Size != nil {
		size = *params.Size
	}

	query, err := newQuery(ownerID, page, size, filter, queries.NormalizeSort(deref(params.SortBy), deref(params.SortDir)))
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pageFromResult(result))
}

// GetRestaurantRevenue handles GET /api/orders/restaurant/{restaurantId}/revenue.
func (s *Server) GetRestaurantRevenue(ctx echo.Context) error {
	restaurantID, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	params, err := bindRevenueParams(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetRestaurantRevenueQuery(restaurantID, params.FromDate, params.ToDate)
	if err != nil {
		return s.writeError(ctx, err)
	}

	revenue, err := s.handlers.RestaurantRevenue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Revenue{
		RestaurantId: restaurantID.Bytes(),
		Revenue:      Money(revenue),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

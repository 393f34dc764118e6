package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const swaggerInstance = "orders"

// HealthCheck reports whether the service can serve traffic.
type HealthCheck func(ctx context.Context) error

// NewRouter builds the echo instance serving the order endpoints. Requests
// are checked against contract before they reach server.
func NewRouter(server *Server, contract []byte, health HealthCheck, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := loadContract(contract)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		if health != nil {
			if checkErr := health(c.Request().Context()); checkErr != nil {
				return c.JSON(http.StatusServiceUnavailable, Error{
					Code:    http.StatusServiceUnavailable,
					Message: "Unhealthy",
				})
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	RegisterHandlers(e, server)

	return e, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers binds the order endpoints to their paths.
func RegisterHandlers(router EchoRouter, server *Server) {
	router.POST("/api/orders", server.CreateOrder)
	router.GET("/api/orders/:orderId", server.GetOrder)
	router.GET("/api/orders/:orderId/details", server.GetOrder)
	router.PUT("/api/orders/:orderId", server.UpdateOrder)
	router.DELETE("/api/orders/:orderId", server.CancelOrder)
	router.PATCH("/api/orders/:orderId/status", server.UpdateOrderStatus)
	router.POST("/api/orders/:orderId/cancel", server.CancelOrder)
	router.DELETE("/api/admin/orders/:orderId", server.DeleteOrder)
	router.GET("/api/orders/user/:userId", server.ListOrdersByUser)
	router.GET("/api/orders/restaurant/:restaurantId", server.ListOrdersByRestaurant)
	router.GET("/api/orders/restaurant/:restaurantId/revenue", server.GetRestaurantRevenue)
}

func loadContract(contract []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contract)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the contract with a
// 400. Paths the contract does not describe pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return badRequest(c, "%s", findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return badRequest(c, "%s", validationMessage(validateErr))
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", reqErr.Parameter.Name, reasonOf(reqErr))
		}
		if reqErr.RequestBody != nil {
			return "request body: " + reasonOf(reqErr)
		}
	}
	return err.Error()
}

func reasonOf(reqErr *openapi3filter.RequestError) string {
	if reqErr.Err != nil {
		return reqErr.Err.Error()
	}
	return reqErr.Reason
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// registerSwaggerDoc publishes the contract to the swagger UI as JSON.
func registerSwaggerDoc(doc *openapi3.T) error {
	if swag.GetSwagger(swaggerInstance) != nil {
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	swag.Register(swaggerInstance, swaggerDoc{json: string(raw)})
	return nil
}

package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrReferenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err))
		message = http.StatusText(code)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, format string, args ...any) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	})
}

// HTTPErrorHandler renders errors that escape handlers, such as unknown
// routes, in the same {"code", "message"} shape.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", slog.Any("error", err))
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(code)
		} else {
			writeErr = ctx.JSON(code, Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", slog.Any("error", writeErr))
		}
	}
}

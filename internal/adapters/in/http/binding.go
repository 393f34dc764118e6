package http

import (
	"fmt"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// bindPathUUID reads a uuid path parameter the way generated oapi-codegen
// wrappers do.
func bindPathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("invalid format: %w", err))
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return id, nil
}

func bindListOrdersParams(ctx echo.Context) (ListOrdersParams, error) {
	var params ListOrdersParams
	query := ctx.QueryParams()

	bindings := []struct {
		name string
		dest any
	}{
		{"page", &params.Page},
		{"size", &params.Size},
		{"sortBy", &params.SortBy},
		{"sortDir", &params.SortDir},
		{"status", &params.Status},
		{"fromDate", &params.FromDate},
		{"toDate", &params.ToDate},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return ListOrdersParams{}, errs.NewValueIsInvalidErrorWithCause(b.name, err)
		}
	}

	return params, nil
}

func bindRevenueParams(ctx echo.Context) (RevenueParams, error) {
	var params RevenueParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "fromDate", query, &params.FromDate); err != nil {
		return RevenueParams{}, errs.NewValueIsInvalidErrorWithCause("fromDate", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "toDate", query, &params.ToDate); err != nil {
		return RevenueParams{}, errs.NewValueIsInvalidErrorWithCause("toDate", err)
	}

	return params, nil
}

// toKernelUUID converts a body id; uuid.Nil becomes the zero kernel.UUID so
// the command constructor reports it as a missing value.
func toKernelUUID(id uuid.UUID) kernel.UUID {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}
	}
	return kid
}

func orderLines(items []NewOrderItem) []commands.OrderLine {
	lines := make([]commands.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, commands.OrderLine{
			MenuItemID: toKernelUUID(item.MenuItemId),
			Quantity:   item.Quantity,
		})
	}
	return lines
}

package queries_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSort(t *testing.T) {
	testCases := []struct {
		name    string
		sortBy  string
		sortDir string
		want    queries.Sort
	}{
		{"known key asc", "totalAmount", "asc", queries.Sort{Field: queries.SortByTotalAmount, Direction: queries.Asc}},
		{"case insensitive", "STATUS", "ASC", queries.Sort{Field: queries.SortByStatus, Direction: queries.Asc}},
		{"known key desc", "orderDate", "desc", queries.Sort{Field: queries.SortByOrderDate, Direction: queries.Desc}},
		{"known key unknown dir", "totalAmount", "sideways", queries.Sort{Field: queries.SortByTotalAmount, Direction: queries.Desc}},
		{"known key empty dir", "status", "", queries.Sort{Field: queries.SortByStatus, Direction: queries.Desc}},
		{"unknown key forces default", "deliveryAddress", "asc", queries.DefaultSort},
		{"injection attempt", "total_amount; DROP TABLE orders", "asc", queries.DefaultSort},
		{"empty key", "", "asc", queries.DefaultSort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, queries.NormalizeSort(tc.sortBy, tc.sortDir))
		})
	}
}

func TestNewListOrdersByUserQuery_Valid(t *testing.T) {
	userID := kernel.NewUUID()
	delivered := order.Delivered
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query, err := queries.NewListOrdersByUserQuery(userID, 2, 100,
		queries.OrderFilter{Status: &delivered, FromDate: &from, ToDate: &to},
		queries.Sort{Field: "TOTALAMOUNT", Direction: "Asc"})

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, userID, query.OwnerID())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 100, query.Size())
	assert.Equal(t, queries.Sort{Field: queries.SortByTotalAmount, Direction: queries.Asc}, query.Sort())
}

func TestNewListOrdersQuery_Paging(t *testing.T) {
	testCases := []struct {
		name  string
		page  int
		size  int
		param string
	}{
		{"negative page", -1, 10, "page"},
		{"zero size", 0, 0, "size"},
		{"size over limit", 0, queries.MaxPageSize + 1, "size"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queries.NewListOrdersByRestaurantQuery(kernel.NewUUID(), tc.page, tc.size,
				queries.OrderFilter{}, queries.DefaultSort)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), tc.param)
		})
	}
}

func TestNewListOrdersQuery_InvertedWindow(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Second)

	_, err := queries.NewListOrdersByUserQuery(kernel.NewUUID(), 0, 10,
		queries.OrderFilter{FromDate: &from, ToDate: &to}, queries.DefaultSort)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.True(t, errs.IsValidation(err))
}

func TestNewListOrdersQuery_SameInstantWindowIsValid(t *testing.T) {
	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewListOrdersByUserQuery(kernel.NewUUID(), 0, 10,
		queries.OrderFilter{FromDate: &at, ToDate: &at}, queries.DefaultSort)

	require.NoError(t, err)
}

func TestNewListOrdersQuery_InvalidOwnerAndStatus(t *testing.T) {
	unknown := order.Unknown

	_, err := queries.NewListOrdersByRestaurantQuery(kernel.UUID{}, 0, 10,
		queries.OrderFilter{Status: &unknown}, queries.DefaultSort)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "restaurantId")
}

func TestListOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	require.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}

func TestNewGetRestaurantRevenueQuery(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	query, err := queries.NewGetRestaurantRevenueQuery(kernel.NewUUID(), &from, &to)
	require.NoError(t, err)
	assert.Equal(t, from, *query.FromDate())

	_, err = queries.NewGetRestaurantRevenueQuery(kernel.NewUUID(), &to, &from)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetRestaurantRevenueQuery(kernel.UUID{}, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GetRestaurantRevenueQuery{}.Validate(),
		queries.ErrGetRestaurantRevenueQueryIsNotConstructed)
}

func TestNewGetOrderDetailsQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderDetailsQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.OrderID())

	_, err = queries.NewGetOrderDetailsQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// MaxPageSize is the largest page a list query may request.
	MaxPageSize = 100

	// DefaultPageSize is used by transports when the caller omits size.
	DefaultPageSize = 20
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersByUserQuery or NewListOrdersByRestaurantQuery constructor",
)

// SortField is one of the allow-listed order attributes a list can be sorted by.
type SortField string

const (
	SortByOrderDate   SortField = "orderDate"
	SortByTotalAmount SortField = "totalAmount"
	SortByStatus      SortField = "status"
)

var sortColumns = map[SortField]string{
	SortByOrderDate:   "order_date",
	SortByTotalAmount: "total_amount",
	SortByStatus:      "status",
}

// SortDirection is asc or desc.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort is a normalized ordering request.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is newest orders first.
var DefaultSort = Sort{Field: SortByOrderDate, Direction: Desc}

// NormalizeSort maps free-form sort parameters onto the allow-list.
//
// Keys and directions match case-insensitively. An unknown or empty key
// yields DefaultSort regardless of direction. A known key with an unknown or
// empty direction sorts descending.
func NormalizeSort(sortBy, sortDir string) Sort {
	field, ok := parseSortField(sortBy)
	if !ok {
		return DefaultSort
	}

	direction := Desc
	if strings.EqualFold(strings.TrimSpace(sortDir), string(Asc)) {
		direction = Asc
	}

	return Sort{Field: field, Direction: direction}
}

func parseSortField(raw string) (SortField, bool) {
	raw = strings.TrimSpace(raw)
	for field := range sortColumns {
		if strings.EqualFold(raw, string(field)) {
			return field, true
		}
	}
	return "", false
}

// orderClause renders the SQL ORDER BY; the id tie-breaker keeps pages stable.
func (s Sort) orderClause() string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = sortColumns[DefaultSort.Field]
	}
	direction := "DESC"
	if s.Direction == Asc {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

// OrderFilter narrows a list. Nil fields do not filter; bounds are inclusive.
type OrderFilter struct {
	Status   *order.Status
	FromDate *time.Time
	ToDate   *time.Time
}

// Validate checks the status value and that the date window is not inverted.
func (f OrderFilter) Validate() error {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.FromDate != nil && f.ToDate != nil && f.FromDate.After(*f.ToDate) {
		return errs.NewValueIsInvalidErrorWithCause("fromDate",
			fmt.Errorf("%s is after toDate %s", f.FromDate.Format(time.RFC3339), f.ToDate.Format(time.RFC3339)))
	}
	return nil
}

type ownerKind int

const (
	ownerUser ownerKind = iota + 1
	ownerRestaurant
)

func (k ownerKind) column() string {
	if k == ownerRestaurant {
		return "restaurant_id"
	}
	return "user_id"
}

// ListOrdersQuery lists the orders of one user or one restaurant, one page at
// a time.
//
// Example:
//
//	query, err := NewListOrdersByUserQuery(userID, 0, 20,
//	    OrderFilter{Status: &delivered}, NormalizeSort("totalAmount", "asc"))
//	if err != nil {
//	    return err // bad page, size or date window
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	owner   ownerKind
	ownerID kernel.UUID
	page    int
	size    int
	filter  OrderFilter
	sort    Sort

	guard guard.ConstructorGuard
}

func NewListOrdersByUserQuery(userID kernel.UUID, page, size int, filter OrderFilter, sort Sort) (ListOrdersQuery, error) {
	return newListOrdersQuery(ownerUser, "userId", userID, page, size, filter, sort)
}

func NewListOrdersByRestaurantQuery(
	restaurantID kernel.UUID,
	page, size int,
	filter OrderFilter,
	sort Sort,
) (ListOrdersQuery, error) {
	return newListOrdersQuery(ownerRestaurant, "restaurantId", restaurantID, page, size, filter, sort)
}

func newListOrdersQuery(
	owner ownerKind,
	ownerParam string,
	ownerID kernel.UUID,
	page, size int,
	filter OrderFilter,
	sort Sort,
) (ListOrdersQuery, error) {
	var ownerErr, pageErr, sizeErr error
	if err := ownerID.Validate(); err != nil {
		ownerErr = errs.NewValueIsRequiredErrorWithCause(ownerParam, err)
	}
	if page < 0 {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 0, math.MaxInt32)
	}
	if size < 1 || size > MaxPageSize {
		sizeErr = errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	}

	if err := errors.Join(ownerErr, pageErr, sizeErr, filter.Validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		owner:   owner,
		ownerID: ownerID,
		page:    page,
		size:    size,
		filter:  filter,
		sort:    NormalizeSort(string(sort.Field), string(sort.Direction)),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) Size() int {
	return q.size
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Sort() Sort {
	return q.sort
}

// OrderPage is one page of a list result.
type OrderPage struct {
	Orders        []OrderView
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

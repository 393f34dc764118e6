package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves paged order lists for users and restaurants.
//
// Filters AND-compose. The total is counted with the same filters, so
// TotalPages is ceil(TotalElements / Size). A page past the end is returned
// empty with the correct totals.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	filtered := func(db *gorm.DB) *gorm.DB {
		db = db.Table("orders").Where(query.owner.column()+" = ?", query.OwnerID().Bytes())

		filter := query.Filter()
		if filter.Status != nil {
			db = db.Where("status = ?", int(*filter.Status))
		}
		if filter.FromDate != nil {
			db = db.Where("order_date >= ?", *filter.FromDate)
		}
		if filter.ToDate != nil {
			db = db.Where("order_date <= ?", *filter.ToDate)
		}
		return db
	}

	var total int64
	if err := filtered(h.db.WithContext(ctx)).Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	result := OrderPage{
		Orders:        make([]OrderView, 0),
		Page:          query.Page(),
		Size:          query.Size(),
		TotalElements: total,
		TotalPages:    int((total + int64(query.Size()) - 1) / int64(query.Size())),
	}

	offset := int64(query.Page()) * int64(query.Size())
	if offset >= total {
		return result, nil
	}

	var rows []orderRow
	err := filtered(h.db.WithContext(ctx)).
		Select(orderColumns).
		Order(query.Sort().orderClause()).
		Offset(int(offset)).
		Limit(query.Size()).
		Scan(&rows).Error
	if err != nil {
		return OrderPage{}, err
	}

	for _, row := range rows {
		view, viewErr := row.toView()
		if viewErr != nil {
			return OrderPage{}, viewErr
		}
		result.Orders = append(result.Orders, view)
	}

	if err = attachItems(ctx, h.db, result.Orders); err != nil {
		return OrderPage{}, err
	}

	return result, nil
}

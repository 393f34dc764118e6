package http

import (
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
)

func orderFromAggregate(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			Id:               item.ID().Bytes(),
			MenuItemId:       item.MenuItemID().Bytes(),
			Quantity:         item.Quantity(),
			PriceAtOrderTime: Money(item.PriceAtOrderTime()),
			NameAtOrderTime:  item.NameAtOrderTime(),
			Subtotal:         Money(item.Subtotal()),
		})
	}

	return Order{
		Id:                    o.ID().Bytes(),
		UserId:                o.UserID().Bytes(),
		RestaurantId:          o.RestaurantID().Bytes(),
		OrderDate:             o.OrderedAt(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		Status:                o.Status().String(),
		TotalAmount:           Money(o.TotalAmount()),
		DeliveryAddress:       o.DeliveryAddress().String(),
		SpecialInstructions:   o.SpecialInstructions(),
		DeliveryFee:           moneyPtr(o.DeliveryFee()),
		Items:                 items,
	}
}

func orderFromView(v queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			Id:               item.ID.Bytes(),
			MenuItemId:       item.MenuItemID.Bytes(),
			Quantity:         item.Quantity,
			PriceAtOrderTime: Money(item.PriceAtOrderTime),
			NameAtOrderTime:  item.NameAtOrderTime,
			Subtotal:         Money(item.Subtotal),
		})
	}

	return Order{
		Id:                    v.ID.Bytes(),
		UserId:                v.UserID.Bytes(),
		RestaurantId:          v.RestaurantID.Bytes(),
		OrderDate:             v.OrderDate,
		EstimatedDeliveryTime: v.EstimatedDeliveryTime,
		ActualDeliveryTime:    v.ActualDeliveryTime,
		Status:                v.Status.String(),
		TotalAmount:           Money(v.TotalAmount),
		DeliveryAddress:       v.DeliveryAddress,
		SpecialInstructions:   v.SpecialInstructions,
		DeliveryFee:           moneyPtr(v.DeliveryFee),
		Items:                 items,
	}
}

func pageFromResult(p queries.OrderPage) OrderPage {
	content := make([]Order, 0, len(p.Orders))
	for _, view := range p.Orders {
		content = append(content, orderFromView(view))
	}

	return OrderPage{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

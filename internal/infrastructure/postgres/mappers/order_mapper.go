package mappers

import (
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	lineItems := make([]domain.LineItem, len(model.LineItems))
	for i := range model.LineItems {
		lineItems[i] = *ToDomainLineItem(&model.LineItems[i])
	}
	return &domain.Order{
		ID:                model.ID,
		StoreID:           model.StoreID,
		ShopifyOrderID:    model.ShopifyOrderID,
		Name:              model.Name,
		OrderNumber:       model.OrderNumber,
		Subtotal:          model.Subtotal,
		Total:             model.Total,
		Shipping:          model.Shipping,
		Tax:               model.Tax,
		Discounts:         model.Discounts,
		Refunds:           model.Refunds,
		Currency:          model.Currency,
		FinancialStatus:   model.FinancialStatus,
		FulfillmentStatus: model.FulfillmentStatus,
		CustomerFirstName: model.CustomerFirstName,
		CustomerLastName:  model.CustomerLastName,
		Gateway:           model.Gateway,
		PaymentMethods:    model.PaymentMethods,
		LineItems:         lineItems,
		ShopifyCreatedAt:  model.ShopifyCreatedAt,
		ShopifyUpdatedAt:  model.ShopifyUpdatedAt,
		LastSyncedAt:      model.LastSyncedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	lineItems := make([]models.LineItemModel, len(order.LineItems))
	for i := range order.LineItems {
		lineItems[i] = *ToGORMLineItem(&order.LineItems[i])
	}
	return &models.OrderModel{
		ID:                order.ID,
		StoreID:           order.StoreID,
		ShopifyOrderID:    order.ShopifyOrderID,
		Name:              order.Name,
		OrderNumber:       order.OrderNumber,
		Subtotal:          order.Subtotal,
		Total:             order.Total,
		Shipping:          order.Shipping,
		Tax:               order.Tax,
		Discounts:         order.Discounts,
		Refunds:           order.Refunds,
		Currency:          order.Currency,
		FinancialStatus:   order.FinancialStatus,
		FulfillmentStatus: order.FulfillmentStatus,
		CustomerFirstName: order.CustomerFirstName,
		CustomerLastName:  order.CustomerLastName,
		Gateway:           order.Gateway,
		PaymentMethods:    order.PaymentMethods,
		LineItems:         lineItems,
		ShopifyCreatedAt:  order.ShopifyCreatedAt,
		ShopifyUpdatedAt:  order.ShopifyUpdatedAt,
		LastSyncedAt:      order.LastSyncedAt,
	}
}

func ToDomainLineItem(model *models.LineItemModel) *domain.LineItem {
	return &domain.LineItem{
		ID:                model.ID,
		OrderID:           model.OrderID,
		ShopifyLineItemID: model.ShopifyLineItemID,
		ProductID:         model.ProductID,
		VariantID:         model.VariantID,
		Title:             model.Title,
		SKU:               model.SKU,
		Quantity:          model.Quantity,
		Price:             model.Price,
		TotalDiscount:     model.TotalDiscount,
	}
}

func ToGORMLineItem(item *domain.LineItem) *models.LineItemModel {
	return &models.LineItemModel{
		ID:                item.ID,
		OrderID:           item.OrderID,
		ShopifyLineItemID: item.ShopifyLineItemID,
		ProductID:         item.ProductID,
		VariantID:         item.VariantID,
		Title:             item.Title,
		SKU:               item.SKU,
		Quantity:          item.Quantity,
		Price:             item.Price,
		TotalDiscount:     item.TotalDiscount,
	}
}

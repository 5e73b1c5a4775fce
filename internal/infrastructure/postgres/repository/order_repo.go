package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/mappers"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) BulkInsertOrders(orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	orderModels := make([]models.OrderModel, len(orders))
	for i, order := range orders {
		if order.ID == "" {
			order.ID = uuid.NewString()
		}
		for j := range order.LineItems {
			if order.LineItems[j].ID == "" {
				order.LineItems[j].ID = uuid.NewString()
			}
			order.LineItems[j].OrderID = order.ID
		}
		orderModels[i] = *mappers.ToGORMOrder(order)
	}

	// One insert per batch; line items ride along through the
	// association.
	if err := r.DB.CreateInBatches(orderModels, 100).Error; err != nil {
		return fmt.Errorf("bulk insert orders: %w", err)
	}
	return nil
}

func (r *DefaultOrderRepository) ExistingShopifyIDs(storeID string, shopifyIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(shopifyIDs))
	if len(shopifyIDs) == 0 {
		return existing, nil
	}

	var found []string
	if err := r.DB.Model(&models.OrderModel{}).
		Where("store_id = ?", storeID).
		Where("shopify_order_id IN (?)", shopifyIDs).
		Pluck("shopify_order_id", &found).Error; err != nil {
		return nil, fmt.Errorf("query existing shopify ids: %w", err)
	}

	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

func (r *DefaultOrderRepository) UpdateOrderStatuses(storeID, shopifyOrderID string, update domain.OrderStatusUpdate) error {
	fields := map[string]interface{}{
		"financial_status":   update.FinancialStatus,
		"fulfillment_status": update.FulfillmentStatus,
		"last_synced_at":     update.LastSyncedAt,
	}
	// Payment descriptors are filled in only when missing locally.
	if update.Gateway != "" {
		fields["gateway"] = gorm.Expr("CASE WHEN gateway = '' THEN ? ELSE gateway END", update.Gateway)
	}
	if update.PaymentMethods != "" {
		fields["payment_methods"] = gorm.Expr("CASE WHEN payment_methods = '' THEN ? ELSE payment_methods END", update.PaymentMethods)
	}

	result := r.DB.Model(&models.OrderModel{}).
		Where("store_id = ? AND shopify_order_id = ?", storeID, shopifyOrderID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update order statuses: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *DefaultOrderRepository) UpdateOrderRefunds(storeID, shopifyOrderID string, refunds float64) error {
	result := r.DB.Model(&models.OrderModel{}).
		Where("store_id = ? AND shopify_order_id = ?", storeID, shopifyOrderID).
		Update("refunds", refunds)
	if result.Error != nil {
		return fmt.Errorf("update order refunds: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *DefaultOrderRepository) CountOrdersInWindow(storeID string, from, to time.Time) (int64, error) {
	var total int64
	if err := r.DB.Model(&models.OrderModel{}).
		Where("store_id = ?", storeID).
		Where("shopify_created_at BETWEEN ? AND ?", from, to).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count orders in window: %w", err)
	}
	return total, nil
}

func (r *DefaultOrderRepository) GetOrdersInWindow(storeID string, from, to time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.Preload("LineItems").
		Where("store_id = ?", storeID).
		Where("shopify_created_at BETWEEN ? AND ?", from, to).
		Order("shopify_created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("find orders in window: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) FindRefundSuspects(storeID string) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.
		Where("store_id = ?", storeID).
		Where("financial_status IN (?)", []domain.FinancialStatus{domain.FinancialRefunded, domain.FinancialPartiallyRefunded}).
		Where("refunds = 0").
		Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("find refund suspects: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) GetOrderByShopifyID(storeID, shopifyOrderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.Preload("LineItems").
		First(&orderModel, "store_id = ? AND shopify_order_id = ?", storeID, shopifyOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testStore = "store-1"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.OrderModel{},
		&models.LineItemModel{},
		&models.ProductModel{},
		&models.VariantModel{},
		&models.SyncStatusModel{},
	))
	return db
}

func testOrder(shopifyID string, refunds float64) *domain.Order {
	return &domain.Order{
		StoreID:          testStore,
		ShopifyOrderID:   shopifyID,
		Name:             "#" + shopifyID,
		Total:            100,
		Refunds:          refunds,
		Currency:         "USD",
		FinancialStatus:  domain.FinancialPaid,
		ShopifyCreatedAt: time.Now().Add(-time.Hour),
		LastSyncedAt:     time.Now(),
		LineItems: []domain.LineItem{
			{ShopifyLineItemID: shopifyID + "-li", Title: "item", Quantity: 2, Price: 50},
		},
	}
}

func TestBulkInsertAndExistingIDs(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))

	require.NoError(t, repo.BulkInsertOrders([]*domain.Order{
		testOrder("1", 0),
		testOrder("2", 0),
	}))

	existing, err := repo.ExistingShopifyIDs(testStore, []string{"1", "2", "3"})
	require.NoError(t, err)
	assert.True(t, existing["1"])
	assert.True(t, existing["2"])
	assert.False(t, existing["3"])

	// Line items ride along with the insert.
	order, err := repo.GetOrderByShopifyID(testStore, "1")
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assert.EqualValues(t, 2, order.LineItems[0].Quantity)
}

func TestUpdateOrderStatuses_NeverTouchesRefunds(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))
	require.NoError(t, repo.BulkInsertOrders([]*domain.Order{testOrder("1", 12.50)}))

	require.NoError(t, repo.UpdateOrderStatuses(testStore, "1", domain.OrderStatusUpdate{
		FinancialStatus:   domain.FinancialRefunded,
		FulfillmentStatus: "fulfilled",
		LastSyncedAt:      time.Now(),
	}))

	order, err := repo.GetOrderByShopifyID(testStore, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.FinancialRefunded, order.FinancialStatus)
	assert.InDelta(t, 12.50, order.Refunds, 0.001)
}

func TestUpdateOrderStatuses_GatewayFilledOnlyWhenMissing(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))

	withGateway := testOrder("1", 0)
	withGateway.Gateway = "shopify_payments"
	withoutGateway := testOrder("2", 0)
	require.NoError(t, repo.BulkInsertOrders([]*domain.Order{withGateway, withoutGateway}))

	update := domain.OrderStatusUpdate{
		FinancialStatus: domain.FinancialPaid,
		Gateway:         "manual",
		LastSyncedAt:    time.Now(),
	}
	require.NoError(t, repo.UpdateOrderStatuses(testStore, "1", update))
	require.NoError(t, repo.UpdateOrderStatuses(testStore, "2", update))

	kept, err := repo.GetOrderByShopifyID(testStore, "1")
	require.NoError(t, err)
	assert.Equal(t, "shopify_payments", kept.Gateway)

	filled, err := repo.GetOrderByShopifyID(testStore, "2")
	require.NoError(t, err)
	assert.Equal(t, "manual", filled.Gateway)
}

func TestUpdateOrderStatuses_UnknownOrder(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))

	err := repo.UpdateOrderStatuses(testStore, "missing", domain.OrderStatusUpdate{
		FinancialStatus: domain.FinancialPaid,
		LastSyncedAt:    time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestFindRefundSuspects(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))

	refundedNoTotal := testOrder("1", 0)
	refundedNoTotal.FinancialStatus = domain.FinancialRefunded
	refundedWithTotal := testOrder("2", 9.99)
	refundedWithTotal.FinancialStatus = domain.FinancialPartiallyRefunded
	paid := testOrder("3", 0)
	require.NoError(t, repo.BulkInsertOrders([]*domain.Order{refundedNoTotal, refundedWithTotal, paid}))

	suspects, err := repo.FindRefundSuspects(testStore)
	require.NoError(t, err)
	require.Len(t, suspects, 1)
	assert.Equal(t, "1", suspects[0].ShopifyOrderID)
}

func TestCountOrdersInWindow(t *testing.T) {
	repo := NewDefaultOrderRepository(openTestDB(t))

	inside := testOrder("1", 0)
	outside := testOrder("2", 0)
	outside.ShopifyCreatedAt = time.Now().AddDate(0, 0, -60)
	require.NoError(t, repo.BulkInsertOrders([]*domain.Order{inside, outside}))

	count, err := repo.CountOrdersInWindow(testStore, time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

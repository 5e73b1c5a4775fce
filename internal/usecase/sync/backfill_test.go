package sync

import (
	"context"
	"testing"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, env *testEnv, shopifyID string, status domain.FinancialStatus, refunds float64) {
	t.Helper()
	require.NoError(t, env.orderRepo.BulkInsertOrders([]*domain.Order{{
		StoreID:          testStore,
		ShopifyOrderID:   shopifyID,
		Name:             "#" + shopifyID,
		Total:            100,
		Refunds:          refunds,
		Currency:         "USD",
		FinancialStatus:  status,
		ShopifyCreatedAt: time.Now().Add(-time.Hour),
		LastSyncedAt:     time.Now(),
	}}))
}

func TestBackfillRefunds_UpdatesSuspects(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "1001", domain.FinancialRefunded, 0)
	seedOrder(t, env, "1002", domain.FinancialPaid, 0)
	seedOrder(t, env, "1003", domain.FinancialPartiallyRefunded, 10)

	env.store.refunds["1001"] = &domain.RefundDetails{
		Transactions:   []domain.RefundTransaction{{Kind: domain.TransactionRefund, Amount: 20}},
		ShippingRefund: 5,
	}

	result, err := env.uc.BackfillRefunds(context.Background(), testStore)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Failed)

	order, err := env.orderRepo.GetOrderByShopifyID(testStore, "1001")
	require.NoError(t, err)
	assert.InDelta(t, 25, order.Refunds, 0.001)

	// The paid order and the already-enriched one were never suspects.
	assert.Zero(t, env.store.refundCallCount("1002"))
	assert.Zero(t, env.store.refundCallCount("1003"))
}

func TestBackfillRefunds_SubCentDifferenceIgnored(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "2001", domain.FinancialRefunded, 0)
	env.store.refunds["2001"] = &domain.RefundDetails{
		Transactions: []domain.RefundTransaction{{Kind: domain.TransactionRefund, Amount: 0.005}},
	}

	result, err := env.uc.BackfillRefunds(context.Background(), testStore)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 0, result.Updated)
}

func TestBackfillRefunds_CountsAdjustmentsAndVoids(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "3001", domain.FinancialRefunded, 0)
	env.store.refunds["3001"] = &domain.RefundDetails{
		Transactions: []domain.RefundTransaction{
			{Kind: domain.TransactionRefund, Amount: 10},
			{Kind: domain.TransactionVoid, Amount: 2},
			{Kind: "capture", Amount: 50},
		},
		OrderAdjustments: []domain.OrderAdjustment{
			{Kind: "refund_discrepancy", Amount: -1.50},
			{Kind: "promotion", Amount: 99},
		},
	}

	result, err := env.uc.BackfillRefunds(context.Background(), testStore)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	order, err := env.orderRepo.GetOrderByShopifyID(testStore, "3001")
	require.NoError(t, err)
	// 10 refund + 2 void + |−1.50| discrepancy; captures and
	// non-refund adjustments excluded.
	assert.InDelta(t, 13.50, order.Refunds, 0.001)
}

func TestBackfillRefunds_RowFailureIsolated(t *testing.T) {
	env := newTestEnv(t)
	seedOrder(t, env, "4001", domain.FinancialRefunded, 0)
	seedOrder(t, env, "4002", domain.FinancialRefunded, 0)

	env.store.refundErr["4001"] = &domain.TransientError{Reason: "timeout"}
	env.store.refunds["4002"] = &domain.RefundDetails{
		Transactions: []domain.RefundTransaction{{Kind: domain.TransactionRefund, Amount: 7}},
	}

	result, err := env.uc.BackfillRefunds(context.Background(), testStore)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)
}

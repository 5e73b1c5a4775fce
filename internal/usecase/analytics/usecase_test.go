package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testStore = "store-1"

type fakeShippingRepo struct {
	costs map[string]float64
	err   error
}

func (f *fakeShippingRepo) CostsByOrderNames(orderNames []string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	found := make(map[string]float64)
	for _, name := range orderNames {
		if cost, ok := f.costs[name]; ok {
			found[name] = cost
		}
	}
	return found, nil
}

type testEnv struct {
	db          *gorm.DB
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	feeRepo     domain.FeeConfigRepository
	shipping    *fakeShippingRepo
	uc          *DefaultAnalyticsUsecase
}

func newTestEnv(t *testing.T) *testEnv {
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
		&models.FeeConfigurationModel{},
		&models.AdditionalCostModel{},
		&models.SubscriptionFeeModel{},
	))

	env := &testEnv{
		db:          db,
		orderRepo:   repository.NewDefaultOrderRepository(db),
		productRepo: repository.NewDefaultProductRepository(db),
		feeRepo:     repository.NewDefaultFeeConfigRepository(db),
		shipping:    &fakeShippingRepo{costs: map[string]float64{}},
	}
	env.uc = NewDefaultAnalyticsUsecase(
		env.orderRepo, env.productRepo, env.feeRepo, env.shipping,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return env
}

func (env *testEnv) window() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -30), now
}

func (env *testEnv) seedOrder(t *testing.T, shopifyID string, total, refunds float64, items []domain.LineItem) {
	t.Helper()
	require.NoError(t, env.orderRepo.BulkInsertOrders([]*domain.Order{{
		StoreID:          testStore,
		ShopifyOrderID:   shopifyID,
		Name:             "#" + shopifyID,
		Total:            total,
		Subtotal:         total,
		Refunds:          refunds,
		Currency:         "USD",
		FinancialStatus:  domain.FinancialPaid,
		LineItems:        items,
		ShopifyCreatedAt: time.Now().Add(-time.Hour),
		LastSyncedAt:     time.Now(),
	}}))
}

func (env *testEnv) seedVariantWithCost(t *testing.T, productID, variantID string, cost float64) {
	t.Helper()
	require.NoError(t, env.productRepo.UpsertProducts([]*domain.Product{{
		StoreID:          testStore,
		ShopifyProductID: productID,
		Title:            "p",
		Status:           "active",
		Variants:         []domain.Variant{{ShopifyVariantID: variantID, Price: 10, CostPerItem: &cost}},
		LastSyncedAt:     time.Now(),
	}}))
}

func lineItems(variantIDs ...string) []domain.LineItem {
	items := make([]domain.LineItem, len(variantIDs))
	for i, vid := range variantIDs {
		items[i] = domain.LineItem{
			ShopifyLineItemID: fmt.Sprintf("li-%d", i),
			VariantID:         vid,
			Title:             "item",
			Quantity:          1,
			Price:             10,
		}
	}
	return items
}

func TestComputeSummary_FeeScenario(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.feeRepo.SaveFeeConfiguration(&domain.FeeConfiguration{
		StoreID:               testStore,
		PaymentGatewayRate:    0.029,
		ProcessingFeePerOrder: 0.30,
	}))
	for i := 0; i < 10; i++ {
		env.seedOrder(t, fmt.Sprintf("%d", 1000+i), 100, 0, nil)
	}

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, summary.Revenue, 0.001)
	assert.EqualValues(t, 10, summary.OrderCount)
	assert.InDelta(t, 29.00, summary.GatewayFee, 0.001)
	assert.InDelta(t, 3.00, summary.ProcessingFee, 0.001)
	assert.InDelta(t, 1000.0-29.0-3.0, summary.NetRevenue, 0.001)
	assert.True(t, summary.RefundsByOrderDate)
}

func TestComputeSummary_CogsCoverageHybrid(t *testing.T) {
	env := newTestEnv(t)
	// 3 of 10 line items have actual cost data.
	for i := 0; i < 3; i++ {
		env.seedVariantWithCost(t, fmt.Sprintf("p%d", i), fmt.Sprintf("v%d", i), 4)
	}
	var items []domain.LineItem
	for i := 0; i < 10; i++ {
		items = append(items, lineItems(fmt.Sprintf("v%d", i))...)
	}
	env.seedOrder(t, "1", 100, 0, items)

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.InDelta(t, 30.0, summary.CostOfGoods.CoveragePct, 0.001)
	assert.Equal(t, domain.CostMethodHybrid, summary.CostOfGoods.Method)
}

func TestComputeSummary_CogsCoverageEstimated(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.feeRepo.SaveFeeConfiguration(&domain.FeeConfiguration{
		StoreID:         testStore,
		DefaultCogsRate: 0.4,
	}))
	env.seedOrder(t, "1", 100, 0, lineItems("v1", "v2"))

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.Zero(t, summary.CostOfGoods.CoveragePct)
	assert.Equal(t, domain.CostMethodEstimated, summary.CostOfGoods.Method)
	// Two items, each 10 x 1 x 0.4.
	assert.InDelta(t, 8.0, summary.CostOfGoods.Amount, 0.001)
}

func TestComputeSummary_CogsCoverageActual(t *testing.T) {
	env := newTestEnv(t)
	env.seedVariantWithCost(t, "p1", "v1", 3)
	env.seedVariantWithCost(t, "p2", "v2", 5)
	env.seedOrder(t, "1", 100, 0, lineItems("v1", "v2"))

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, summary.CostOfGoods.CoveragePct, 0.001)
	assert.Equal(t, domain.CostMethodActual, summary.CostOfGoods.Method)
	assert.InDelta(t, 8.0, summary.CostOfGoods.Amount, 0.001)
}

func TestComputeSummary_ShippingAverageFallback(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 50, 0, nil)
	env.seedOrder(t, "2", 50, 0, nil)
	env.seedOrder(t, "3", 50, 0, nil)
	// Two orders have real records averaging $6; the third gets the
	// average, never a configured guess.
	env.shipping.costs = map[string]float64{"#1": 4, "#2": 8}

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.Equal(t, domain.CostMethodAverage, summary.ShippingCost.Method)
	assert.InDelta(t, 18.0, summary.ShippingCost.Amount, 0.001)
	assert.InDelta(t, 100.0*2/3, summary.ShippingCost.CoveragePct, 0.001)
}

func TestComputeSummary_ShippingNoneWithoutData(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 50, 0, nil)

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.Equal(t, domain.CostMethodNone, summary.ShippingCost.Method)
	assert.Zero(t, summary.ShippingCost.Amount)
}

func TestComputeSummary_ShippingSourceFailureDegrades(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 50, 0, nil)
	env.shipping.err = domain.ErrShippingSourceDown

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.Equal(t, domain.CostMethodError, summary.ShippingCost.Method)
	assert.Zero(t, summary.ShippingCost.Amount)
}

func TestComputeSummary_AdditionalCostFormula(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 100, 0, lineItems("v1", "v2"))
	env.seedOrder(t, "2", 100, 0, lineItems("v3"))
	require.NoError(t, env.feeRepo.SaveAdditionalCost(&domain.AdditionalCost{
		StoreID:            testStore,
		Name:               "packaging",
		PercentagePerOrder: 1,   // 1% of revenue
		PercentagePerItem:  0.5, // 0.5% x revenue x items
		FlatPerOrder:       2,
		FlatPerItem:        1,
		IsActive:           true,
	}))
	require.NoError(t, env.feeRepo.SaveAdditionalCost(&domain.AdditionalCost{
		StoreID:      testStore,
		Name:         "inactive",
		FlatPerOrder: 1000,
	}))

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	// revenue=200, orders=2, items=3:
	// 200x0.01 + 200x3x0.005 + 2x2 + 3x1 = 2 + 3 + 4 + 3
	assert.InDelta(t, 12.0, summary.AdditionalCosts, 0.001)
}

func TestComputeSummary_SubscriptionProration(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 100, 0, nil)
	require.NoError(t, env.feeRepo.SaveSubscriptionFee(&domain.SubscriptionFee{
		StoreID:  testStore,
		Name:     "app",
		Interval: domain.IntervalMonthly,
		Amount:   29,
		IsActive: true,
	}))
	require.NoError(t, env.feeRepo.SaveSubscriptionFee(&domain.SubscriptionFee{
		StoreID:  testStore,
		Name:     "warehouse",
		Interval: domain.IntervalYearly,
		Amount:   365,
		IsActive: true,
	}))

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	windowDays := to.Sub(from).Hours() / 24
	expected := (29*12/365.0)*windowDays + 1.0*windowDays
	assert.InDelta(t, expected, summary.SubscriptionCosts, 0.01)
}

func TestComputeSummary_RefundsReduceNetRevenue(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 100, 12.50, nil)
	env.seedOrder(t, "2", 100, 0, nil)

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.InDelta(t, 12.50, summary.Refunds, 0.001)
	assert.InDelta(t, 200.0-12.50, summary.NetRevenue, 0.001)
	assert.InDelta(t, summary.NetRevenue, summary.NetProfit, 0.001)
}

func TestComputeSummary_MissingFeeConfigDefaultsToZero(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "1", 100, 0, nil)

	from, to := env.window()
	summary, err := env.uc.ComputeSummary(context.Background(), testStore, from, to)
	require.NoError(t, err)

	assert.Zero(t, summary.GatewayFee)
	assert.Zero(t, summary.ProcessingFee)
}

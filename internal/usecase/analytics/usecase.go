package analytics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type AnalyticsUsecase interface {
	ComputeSummary(ctx context.Context, storeID string, from, to time.Time) (*domain.FinancialSummary, error)
}

// DefaultAnalyticsUsecase aggregates the mirror into a financial
// summary. It reads only local data plus the optional secondary
// shipping source; it never calls the remote commerce API.
type DefaultAnalyticsUsecase struct {
	OrderRepo    domain.OrderRepository
	ProductRepo  domain.ProductRepository
	FeeRepo      domain.FeeConfigRepository
	ShippingRepo domain.ShippingCostRepository

	logger *slog.Logger
}

func NewDefaultAnalyticsUsecase(
	orderRepo domain.OrderRepository,
	productRepo domain.ProductRepository,
	feeRepo domain.FeeConfigRepository,
	shippingRepo domain.ShippingCostRepository,
	logger *slog.Logger) *DefaultAnalyticsUsecase {

	return &DefaultAnalyticsUsecase{
		OrderRepo:    orderRepo,
		ProductRepo:  productRepo,
		FeeRepo:      feeRepo,
		ShippingRepo: shippingRepo,
		logger:       logger,
	}
}

// ComputeSummary builds the summary for the window in fixed rule
// order: order aggregation, cost of goods, shipping cost, fees and
// declared costs, then the net figures. Refund totals come from the
// mirror's cached per-order field and are therefore grouped by
// order-creation date; the summary discloses that instead of hiding
// it.
func (uc *DefaultAnalyticsUsecase) ComputeSummary(ctx context.Context, storeID string, from, to time.Time) (*domain.FinancialSummary, error) {
	orders, err := uc.OrderRepo.GetOrdersInWindow(storeID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &domain.FinancialSummary{
		StoreID:            storeID,
		From:               from,
		To:                 to,
		RefundsByOrderDate: true,
	}

	summary.OrderCount = int64(len(orders))
	for _, order := range orders {
		summary.Revenue += order.Total
		summary.ShippingRevenue += order.Shipping
		summary.Tax += order.Tax
		summary.Discounts += order.Discounts
		summary.Refunds += order.Refunds
		for _, item := range order.LineItems {
			summary.ItemCount += item.Quantity
		}
	}

	feeConfig, err := uc.feeConfiguration(storeID)
	if err != nil {
		return nil, err
	}

	cogs, err := uc.costOfGoods(storeID, orders, feeConfig.DefaultCogsRate)
	if err != nil {
		return nil, err
	}
	summary.CostOfGoods = cogs

	summary.ShippingCost = uc.shippingCost(storeID, orders)

	summary.GatewayFee = summary.Revenue * feeConfig.PaymentGatewayRate
	summary.ProcessingFee = float64(summary.OrderCount) * feeConfig.ProcessingFeePerOrder

	additional, err := uc.additionalCosts(storeID, summary.Revenue, summary.OrderCount, summary.ItemCount)
	if err != nil {
		return nil, err
	}
	summary.AdditionalCosts = additional

	subscription, err := uc.subscriptionCosts(storeID, from, to)
	if err != nil {
		return nil, err
	}
	summary.SubscriptionCosts = subscription

	summary.NetRevenue = summary.Revenue - summary.Refunds - summary.GatewayFee - summary.ProcessingFee
	summary.NetProfit = summary.NetRevenue - summary.CostOfGoods.Amount - summary.AdditionalCosts - summary.SubscriptionCosts - summary.ShippingCost.Amount
	return summary, nil
}

// feeConfiguration falls back to an all-zero configuration when the
// store never saved one, so the summary still computes.
func (uc *DefaultAnalyticsUsecase) feeConfiguration(storeID string) (*domain.FeeConfiguration, error) {
	cfg, err := uc.FeeRepo.GetFeeConfiguration(storeID)
	if errors.Is(err, domain.ErrFeeConfigNotFound) {
		return &domain.FeeConfiguration{StoreID: storeID}, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// costOfGoods joins line items to variant cost data. Items with a
// known cost contribute costPerItem x quantity; the rest are
// estimated as their revenue share x defaultCogsRate. Coverage is the
// fraction of line item rows with actual data.
func (uc *DefaultAnalyticsUsecase) costOfGoods(storeID string, orders []*domain.Order, defaultCogsRate float64) (domain.CostBreakdown, error) {
	costs, err := uc.ProductRepo.VariantCosts(storeID)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	var amount float64
	var totalItems, coveredItems int
	for _, order := range orders {
		for _, item := range order.LineItems {
			totalItems++
			if cost, ok := costs[item.VariantID]; ok {
				coveredItems++
				amount += cost * float64(item.Quantity)
				continue
			}
			amount += item.Price * float64(item.Quantity) * defaultCogsRate
		}
	}

	breakdown := domain.CostBreakdown{Amount: amount}
	switch {
	case totalItems == 0:
		breakdown.CoveragePct = 0
		breakdown.Method = domain.CostMethodNone
	case coveredItems == totalItems:
		breakdown.CoveragePct = 100
		breakdown.Method = domain.CostMethodActual
	case coveredItems == 0:
		breakdown.CoveragePct = 0
		breakdown.Method = domain.CostMethodEstimated
	default:
		breakdown.CoveragePct = float64(coveredItems) / float64(totalItems) * 100
		breakdown.Method = domain.CostMethodHybrid
	}
	return breakdown, nil
}

// shippingCost sums actual records from the secondary source. Orders
// without a record get the average of the known costs when any exist;
// with zero real records the figure is exactly 0/"none" rather than a
// guess from configuration. A source failure degrades to 0/"error"
// and never aborts the aggregation.
func (uc *DefaultAnalyticsUsecase) shippingCost(storeID string, orders []*domain.Order) domain.CostBreakdown {
	if uc.ShippingRepo == nil || len(orders) == 0 {
		return domain.CostBreakdown{Method: domain.CostMethodNone}
	}

	names := make([]string, len(orders))
	for i, order := range orders {
		names[i] = order.Name
	}

	known, err := uc.ShippingRepo.CostsByOrderNames(names)
	if err != nil {
		uc.logger.Warn("shipping cost source failed",
			slog.String("store_id", storeID),
			slog.String("error", err.Error()))
		return domain.CostBreakdown{Method: domain.CostMethodError}
	}
	if len(known) == 0 {
		return domain.CostBreakdown{Method: domain.CostMethodNone}
	}

	var actualTotal float64
	matched := 0
	for _, name := range names {
		if cost, ok := known[name]; ok {
			actualTotal += cost
			matched++
		}
	}
	if matched == 0 {
		return domain.CostBreakdown{Method: domain.CostMethodNone}
	}

	breakdown := domain.CostBreakdown{
		Amount:      actualTotal,
		CoveragePct: float64(matched) / float64(len(orders)) * 100,
		Method:      domain.CostMethodActual,
	}
	if matched < len(orders) {
		average := actualTotal / float64(matched)
		breakdown.Amount += average * float64(len(orders)-matched)
		breakdown.Method = domain.CostMethodAverage
	}
	return breakdown
}

// additionalCosts applies each active declared cost. The per-item
// percentage term deliberately multiplies total revenue by the item
// count; downstream consumers depend on that exact formula.
func (uc *DefaultAnalyticsUsecase) additionalCosts(storeID string, revenue float64, orderCount, itemCount int64) (float64, error) {
	rows, err := uc.FeeRepo.ListActiveAdditionalCosts(storeID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, row := range rows {
		total += revenue * row.PercentagePerOrder / 100
		total += revenue * float64(itemCount) * row.PercentagePerItem / 100
		total += float64(orderCount) * row.FlatPerOrder
		total += float64(itemCount) * row.FlatPerItem
	}
	return total, nil
}

func (uc *DefaultAnalyticsUsecase) subscriptionCosts(storeID string, from, to time.Time) (float64, error) {
	fees, err := uc.FeeRepo.ListActiveSubscriptionFees(storeID)
	if err != nil {
		return 0, err
	}

	windowDays := to.Sub(from).Hours() / 24
	if windowDays < 0 {
		windowDays = 0
	}

	var total float64
	for _, fee := range fees {
		total += fee.DailyRate() * windowDays
	}
	return total, nil
}

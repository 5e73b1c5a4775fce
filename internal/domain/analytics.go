package domain

import "time"

type CostMethod string

const (
	CostMethodActual    CostMethod = "actual"
	CostMethodHybrid    CostMethod = "hybrid"
	CostMethodEstimated CostMethod = "estimated"
	CostMethodAverage   CostMethod = "average"
	CostMethodNone      CostMethod = "none"
	CostMethodError     CostMethod = "error"
)

// CostBreakdown is one line of the summary with disclosed confidence:
// how much of the figure rests on actual data versus estimation.
type CostBreakdown struct {
	Amount      float64    `json:"amount"`
	CoveragePct float64    `json:"coverage_pct"`
	Method      CostMethod `json:"method"`
}

// FinancialSummary is the aggregated result over a reporting window.
// Every subtraction step is independently reportable.
type FinancialSummary struct {
	StoreID string    `json:"store_id"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`

	OrderCount int64 `json:"order_count"`
	ItemCount  int64 `json:"item_count"`

	Revenue         float64 `json:"revenue"`
	ShippingRevenue float64 `json:"shipping_revenue"`
	Tax             float64 `json:"tax"`
	Discounts       float64 `json:"discounts"`
	Refunds         float64 `json:"refunds"`
	// Refund totals are grouped by order-creation date, not
	// refund-processing date; consumers must disclose this.
	RefundsByOrderDate bool `json:"refunds_by_order_date"`

	CostOfGoods  CostBreakdown `json:"cost_of_goods"`
	ShippingCost CostBreakdown `json:"shipping_cost"`

	GatewayFee        float64 `json:"gateway_fee"`
	ProcessingFee     float64 `json:"processing_fee"`
	AdditionalCosts   float64 `json:"additional_costs"`
	SubscriptionCosts float64 `json:"subscription_costs"`

	NetRevenue float64 `json:"net_revenue"`
	NetProfit  float64 `json:"net_profit"`
}

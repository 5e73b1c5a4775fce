package domain

import (
	"context"
	"time"
)

// StorefrontAPI is the narrow capability the sync engine consumes from
// the remote commerce API. Implementations hide transport, auth and
// pagination details; every call may fail with one of the typed
// errors in remote_errors.go.
type StorefrontAPI interface {
	// ListOrders fetches one page of orders created inside the window.
	// An empty cursor starts from the beginning; the returned cursor
	// is empty once the listing is exhausted.
	ListOrders(ctx context.Context, req ListOrdersRequest) (*OrderPage, error)
	// CountOrders returns the remote order count inside the window,
	// used for progress reporting and completion checks.
	CountOrders(ctx context.Context, createdAtMin, createdAtMax time.Time) (int64, error)
	// GetOrderRefunds fetches the refund sub-resources of one order.
	GetOrderRefunds(ctx context.Context, shopifyOrderID string) (*RefundDetails, error)
	ListProducts(ctx context.Context, cursor string) (*ProductPage, error)
	// GetVariantCosts resolves cost-per-item keyed by product then
	// variant ID.
	GetVariantCosts(ctx context.Context, shopifyProductIDs []string) (map[string]map[string]float64, error)
}

type ListOrdersRequest struct {
	CreatedAtMin time.Time
	CreatedAtMax time.Time
	PageSize     int
	Cursor       string
}

type OrderPage struct {
	Orders     []*RemoteOrder
	NextCursor string
}

type ProductPage struct {
	Products   []*Product
	NextCursor string
}

// RemoteOrder is an order as returned by the remote API, before it is
// adopted into the mirror. TotalRefunded is non-nil when the API
// inlined the refund total, sparing the extra refunds call.
type RemoteOrder struct {
	Order
	TotalRefunded *float64
}

type RefundTransactionKind string

const (
	TransactionRefund RefundTransactionKind = "refund"
	TransactionVoid   RefundTransactionKind = "void"
)

type RefundTransaction struct {
	Kind   RefundTransactionKind
	Amount float64
}

type OrderAdjustment struct {
	Kind   string
	Amount float64
}

type RefundDetails struct {
	Transactions     []RefundTransaction
	ShippingRefund   float64
	OrderAdjustments []OrderAdjustment
}

// RefundAdjustmentKinds are the order-adjustment kinds counted toward
// the refund total. Adjustment amounts may be signed; callers take
// the absolute value.
var RefundAdjustmentKinds = map[string]bool{
	"refund_discrepancy": true,
	"shipping_refund":    true,
	"tax_refund":         true,
	"fee_refund":         true,
}

// TotalRefunded sums refund and void transactions, the shipping
// refund and the absolute value of refund-tagged order adjustments.
func (d *RefundDetails) TotalRefunded() float64 {
	total := d.ShippingRefund
	for _, tx := range d.Transactions {
		if tx.Kind == TransactionRefund || tx.Kind == TransactionVoid {
			total += tx.Amount
		}
	}
	for _, adj := range d.OrderAdjustments {
		if RefundAdjustmentKinds[adj.Kind] {
			amount := adj.Amount
			if amount < 0 {
				amount = -amount
			}
			total += amount
		}
	}
	return total
}

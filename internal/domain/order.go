package domain

import "time"

type FinancialStatus string

const (
	FinancialPending           FinancialStatus = "pending"
	FinancialPaid              FinancialStatus = "paid"
	FinancialRefunded          FinancialStatus = "refunded"
	FinancialPartiallyRefunded FinancialStatus = "partially_refunded"
	FinancialVoided            FinancialStatus = "voided"
)

// Order mirrors a remote Shopify order. Identity is the remote order
// ID, which is stable and never reused: exactly one row per
// (store, shopify order id).
type Order struct {
	ID             string
	StoreID        string
	ShopifyOrderID string
	Name           string
	OrderNumber    int64

	Subtotal  float64
	Total     float64
	Shipping  float64
	Tax       float64
	Discounts float64
	// Refunds is write-once-enriched: captured when the order is first
	// mirrored and only changed afterwards by the refund backfill.
	Refunds  float64
	Currency string

	FinancialStatus   FinancialStatus
	FulfillmentStatus string

	CustomerFirstName string
	CustomerLastName  string
	Gateway           string
	PaymentMethods    string

	LineItems []LineItem

	ShopifyCreatedAt time.Time
	ShopifyUpdatedAt time.Time
	LastSyncedAt     time.Time
}

// RefundImplied reports whether the order's status suggests refund
// activity that the cached refund total may be missing.
func (o *Order) RefundImplied() bool {
	return o.FinancialStatus == FinancialRefunded || o.FinancialStatus == FinancialPartiallyRefunded
}

// LineItem belongs to exactly one Order and is cascade-deleted with it.
type LineItem struct {
	ID                string
	OrderID           string
	ShopifyLineItemID string
	ProductID         string
	VariantID         string
	Title             string
	SKU               string
	Quantity          int64
	Price             float64
	TotalDiscount     float64
}

type OrderRepository interface {
	BulkInsertOrders(orders []*Order) error
	// ExistingShopifyIDs returns which of the given remote IDs are
	// already mirrored for the store, in a single query.
	ExistingShopifyIDs(storeID string, shopifyIDs []string) (map[string]bool, error)
	// UpdateOrderStatuses updates status fields only; it never touches
	// the cached refund total.
	UpdateOrderStatuses(storeID, shopifyOrderID string, update OrderStatusUpdate) error
	UpdateOrderRefunds(storeID, shopifyOrderID string, refunds float64) error
	CountOrdersInWindow(storeID string, from, to time.Time) (int64, error)
	GetOrdersInWindow(storeID string, from, to time.Time) ([]*Order, error)
	// FindRefundSuspects returns orders whose status implies refund
	// activity but whose cached refund total is still zero.
	FindRefundSuspects(storeID string) ([]*Order, error)
	GetOrderByShopifyID(storeID, shopifyOrderID string) (*Order, error)
}

// OrderStatusUpdate carries the only fields the existing-order sync
// path is allowed to change.
type OrderStatusUpdate struct {
	FinancialStatus   FinancialStatus
	FulfillmentStatus string
	Gateway           string
	PaymentMethods    string
	LastSyncedAt      time.Time
}

package models

import (
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type OrderModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	StoreID        string `gorm:"uniqueIndex:idx_store_shopify_order;index:idx_store_created"`
	ShopifyOrderID string `gorm:"uniqueIndex:idx_store_shopify_order"`
	Name           string `gorm:"index:idx_order_name"`
	OrderNumber    int64

	Subtotal  float64
	Total     float64
	Shipping  float64
	Tax       float64
	Discounts float64
	Refunds   float64
	Currency  string

	FinancialStatus   domain.FinancialStatus `gorm:"index:idx_financial_status"`
	FulfillmentStatus string

	CustomerFirstName string
	CustomerLastName  string
	Gateway           string
	PaymentMethods    string

	LineItems []LineItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE;"`

	ShopifyCreatedAt time.Time `gorm:"index:idx_store_created"`
	ShopifyUpdatedAt time.Time
	LastSyncedAt     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type LineItemModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	OrderID           string `gorm:"type:uuid;index"`
	ShopifyLineItemID string
	ProductID         string
	VariantID         string `gorm:"index:idx_line_item_variant"`
	Title             string
	SKU               string
	Quantity          int64
	Price             float64
	TotalDiscount     float64
	CreatedAt         time.Time
}

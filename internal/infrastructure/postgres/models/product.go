package models

import "time"

type ProductModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	StoreID          string `gorm:"uniqueIndex:idx_store_shopify_product"`
	ShopifyProductID string `gorm:"uniqueIndex:idx_store_shopify_product"`
	Title            string
	Status           string
	Vendor           string
	Variants         []VariantModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE;"`
	LastSyncedAt     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type VariantModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	ProductID        string `gorm:"type:uuid;index"`
	ShopifyVariantID string `gorm:"index:idx_shopify_variant"`
	Title            string
	SKU              string
	Price            float64
	// Nullable on purpose: NULL means no cost data, 0 is a real
	// zero-cost item.
	CostPerItem *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

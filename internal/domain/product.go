package domain

import "time"

// Product mirrors a remote Shopify product. Products own Variants.
type Product struct {
	ID               string
	StoreID          string
	ShopifyProductID string
	Title            string
	Status           string
	Vendor           string
	Variants         []Variant
	LastSyncedAt     time.Time
}

// Variant carries pricing and cost data. CostPerItem is nil when no
// cost data exists upstream, which is distinct from a real zero-cost
// item.
type Variant struct {
	ID               string
	ProductID        string
	ShopifyVariantID string
	Title            string
	SKU              string
	Price            float64
	CostPerItem      *float64
}

type ProductRepository interface {
	UpsertProducts(products []*Product) error
	UpdateVariantCost(storeID, shopifyVariantID string, cost float64) error
	// ShopifyProductIDs lists the remote IDs of every mirrored product
	// of the store.
	ShopifyProductIDs(storeID string) ([]string, error)
	// VariantCosts returns cost-per-item keyed by shopify variant ID
	// for every variant of the store that has cost data.
	VariantCosts(storeID string) (map[string]float64, error)
	CountProducts(storeID string) (int64, error)
}

package shopify

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type productsResponse struct {
	Products []productWire `json:"products"`
}

type productWire struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Status   string        `json:"status"`
	Vendor   string        `json:"vendor"`
	Variants []variantWire `json:"variants"`
}

type variantWire struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	SKU             string `json:"sku"`
	Price           string `json:"price"`
	InventoryItemID int64  `json:"inventory_item_id"`
}

type inventoryItemsResponse struct {
	InventoryItems []inventoryItemWire `json:"inventory_items"`
}

type inventoryItemWire struct {
	ID int64 `json:"id"`
	// Cost is null when the merchant never entered one; that must not
	// collapse into zero.
	Cost *string `json:"cost"`
}

func (c *Client) ListProducts(ctx context.Context, cursor string) (*domain.ProductPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageSize))
	if cursor != "" {
		query.Set("page_info", cursor)
	}

	var body productsResponse
	header, err := c.get(ctx, "/products.json", query, &body)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(body.Products))
	for i := range body.Products {
		products[i] = toDomainProduct(&body.Products[i])
	}
	return &domain.ProductPage{
		Products:   products,
		NextCursor: nextPageInfo(header),
	}, nil
}

func toDomainProduct(wire *productWire) *domain.Product {
	variants := make([]domain.Variant, len(wire.Variants))
	for i, v := range wire.Variants {
		variants[i] = domain.Variant{
			ShopifyVariantID: strconv.FormatInt(v.ID, 10),
			Title:            v.Title,
			SKU:              v.SKU,
			Price:            parseMoney(v.Price),
		}
	}
	return &domain.Product{
		ShopifyProductID: strconv.FormatInt(wire.ID, 10),
		Title:            wire.Title,
		Status:           wire.Status,
		Vendor:           wire.Vendor,
		Variants:         variants,
	}
}

// GetVariantCosts resolves cost-per-item for the given products. Cost
// lives on the inventory item, not the variant, so this is a two-step
// fetch: variants for their inventory_item_id, then the inventory
// items in batches.
func (c *Client) GetVariantCosts(ctx context.Context, shopifyProductIDs []string) (map[string]map[string]float64, error) {
	costs := make(map[string]map[string]float64, len(shopifyProductIDs))
	if len(shopifyProductIDs) == 0 {
		return costs, nil
	}

	// variant -> (product, inventory item) wiring from the product
	// payloads.
	type variantRef struct {
		productID string
		variantID string
	}
	byInventoryItem := make(map[int64]variantRef)

	for start := 0; start < len(shopifyProductIDs); start += 250 {
		end := start + 250
		if end > len(shopifyProductIDs) {
			end = len(shopifyProductIDs)
		}
		query := url.Values{}
		query.Set("ids", strings.Join(shopifyProductIDs[start:end], ","))
		query.Set("fields", "id,variants")
		query.Set("limit", "250")

		var body productsResponse
		if _, err := c.get(ctx, "/products.json", query, &body); err != nil {
			return nil, err
		}
		for _, product := range body.Products {
			productID := strconv.FormatInt(product.ID, 10)
			for _, variant := range product.Variants {
				if variant.InventoryItemID == 0 {
					continue
				}
				byInventoryItem[variant.InventoryItemID] = variantRef{
					productID: productID,
					variantID: strconv.FormatInt(variant.ID, 10),
				}
			}
		}
	}

	itemIDs := make([]string, 0, len(byInventoryItem))
	for id := range byInventoryItem {
		itemIDs = append(itemIDs, strconv.FormatInt(id, 10))
	}

	for start := 0; start < len(itemIDs); start += 100 {
		end := start + 100
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		query := url.Values{}
		query.Set("ids", strings.Join(itemIDs[start:end], ","))
		query.Set("limit", "100")

		var body inventoryItemsResponse
		if _, err := c.get(ctx, "/inventory_items.json", query, &body); err != nil {
			return nil, err
		}
		for _, item := range body.InventoryItems {
			if item.Cost == nil {
				continue
			}
			ref, ok := byInventoryItem[item.ID]
			if !ok {
				continue
			}
			if costs[ref.productID] == nil {
				costs[ref.productID] = make(map[string]float64)
			}
			costs[ref.productID][ref.variantID] = parseMoney(*item.Cost)
		}
	}

	return costs, nil
}

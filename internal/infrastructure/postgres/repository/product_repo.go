package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/mappers"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) UpsertProducts(products []*domain.Product) error {
	for _, product := range products {
		var existing models.ProductModel
		err := r.DB.Preload("Variants").
			First(&existing, "store_id = ? AND shopify_product_id = ?", product.StoreID, product.ShopifyProductID).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if product.ID == "" {
				product.ID = uuid.NewString()
			}
			for i := range product.Variants {
				if product.Variants[i].ID == "" {
					product.Variants[i].ID = uuid.NewString()
				}
				product.Variants[i].ProductID = product.ID
			}
			if err := r.DB.Create(mappers.ToGORMProduct(product)).Error; err != nil {
				return fmt.Errorf("insert product %s: %w", product.ShopifyProductID, err)
			}
		case err != nil:
			return fmt.Errorf("lookup product %s: %w", product.ShopifyProductID, err)
		default:
			if err := r.updateExisting(&existing, product); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DefaultProductRepository) updateExisting(existing *models.ProductModel, product *domain.Product) error {
	if err := r.DB.Model(existing).Updates(map[string]interface{}{
		"title":          product.Title,
		"status":         product.Status,
		"vendor":         product.Vendor,
		"last_synced_at": product.LastSyncedAt,
	}).Error; err != nil {
		return fmt.Errorf("update product %s: %w", product.ShopifyProductID, err)
	}

	known := make(map[string]*models.VariantModel, len(existing.Variants))
	for i := range existing.Variants {
		known[existing.Variants[i].ShopifyVariantID] = &existing.Variants[i]
	}

	for i := range product.Variants {
		variant := &product.Variants[i]
		if current, ok := known[variant.ShopifyVariantID]; ok {
			updates := map[string]interface{}{
				"title": variant.Title,
				"sku":   variant.SKU,
				"price": variant.Price,
			}
			// Cost data is updated only when the remote actually has
			// it; a nil upstream cost must not erase a known one.
			if variant.CostPerItem != nil {
				updates["cost_per_item"] = *variant.CostPerItem
			}
			if err := r.DB.Model(&models.VariantModel{}).
				Where("id = ?", current.ID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("update variant %s: %w", variant.ShopifyVariantID, err)
			}
			continue
		}
		if variant.ID == "" {
			variant.ID = uuid.NewString()
		}
		variant.ProductID = existing.ID
		variantModel := models.VariantModel{
			ID:               variant.ID,
			ProductID:        variant.ProductID,
			ShopifyVariantID: variant.ShopifyVariantID,
			Title:            variant.Title,
			SKU:              variant.SKU,
			Price:            variant.Price,
			CostPerItem:      variant.CostPerItem,
		}
		if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&variantModel).Error; err != nil {
			return fmt.Errorf("insert variant %s: %w", variant.ShopifyVariantID, err)
		}
	}
	return nil
}

func (r *DefaultProductRepository) UpdateVariantCost(storeID, shopifyVariantID string, cost float64) error {
	result := r.DB.Model(&models.VariantModel{}).
		Where("shopify_variant_id = ?", shopifyVariantID).
		Where("product_id IN (?)", r.DB.Model(&models.ProductModel{}).Select("id").Where("store_id = ?", storeID)).
		Update("cost_per_item", cost)
	if result.Error != nil {
		return fmt.Errorf("update variant cost: %w", result.Error)
	}
	return nil
}

func (r *DefaultProductRepository) ShopifyProductIDs(storeID string) ([]string, error) {
	var ids []string
	if err := r.DB.Model(&models.ProductModel{}).
		Where("store_id = ?", storeID).
		Pluck("shopify_product_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	return ids, nil
}

func (r *DefaultProductRepository) VariantCosts(storeID string) (map[string]float64, error) {
	type variantCost struct {
		ShopifyVariantID string
		CostPerItem      float64
	}
	var rows []variantCost
	if err := r.DB.Model(&models.VariantModel{}).
		Select("variant_models.shopify_variant_id, variant_models.cost_per_item").
		Joins("JOIN product_models ON product_models.id = variant_models.product_id").
		Where("product_models.store_id = ?", storeID).
		Where("variant_models.cost_per_item IS NOT NULL").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query variant costs: %w", err)
	}

	costs := make(map[string]float64, len(rows))
	for _, row := range rows {
		costs[row.ShopifyVariantID] = row.CostPerItem
	}
	return costs, nil
}

func (r *DefaultProductRepository) CountProducts(storeID string) (int64, error) {
	var total int64
	if err := r.DB.Model(&models.ProductModel{}).
		Where("store_id = ?", storeID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

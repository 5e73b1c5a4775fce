package mappers

import (
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
)

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	variants := make([]domain.Variant, len(model.Variants))
	for i := range model.Variants {
		variants[i] = domain.Variant{
			ID:               model.Variants[i].ID,
			ProductID:        model.Variants[i].ProductID,
			ShopifyVariantID: model.Variants[i].ShopifyVariantID,
			Title:            model.Variants[i].Title,
			SKU:              model.Variants[i].SKU,
			Price:            model.Variants[i].Price,
			CostPerItem:      model.Variants[i].CostPerItem,
		}
	}
	return &domain.Product{
		ID:               model.ID,
		StoreID:          model.StoreID,
		ShopifyProductID: model.ShopifyProductID,
		Title:            model.Title,
		Status:           model.Status,
		Vendor:           model.Vendor,
		Variants:         variants,
		LastSyncedAt:     model.LastSyncedAt,
	}
}

func ToGORMProduct(product *domain.Product) *models.ProductModel {
	variants := make([]models.VariantModel, len(product.Variants))
	for i := range product.Variants {
		variants[i] = models.VariantModel{
			ID:               product.Variants[i].ID,
			ProductID:        product.Variants[i].ProductID,
			ShopifyVariantID: product.Variants[i].ShopifyVariantID,
			Title:            product.Variants[i].Title,
			SKU:              product.Variants[i].SKU,
			Price:            product.Variants[i].Price,
			CostPerItem:      product.Variants[i].CostPerItem,
		}
	}
	return &models.ProductModel{
		ID:               product.ID,
		StoreID:          product.StoreID,
		ShopifyProductID: product.ShopifyProductID,
		Title:            product.Title,
		Status:           product.Status,
		Vendor:           product.Vendor,
		Variants:         variants,
		LastSyncedAt:     product.LastSyncedAt,
	}
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/mappers"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultFeeConfigRepository struct {
	DB *gorm.DB
}

func NewDefaultFeeConfigRepository(db *gorm.DB) *DefaultFeeConfigRepository {
	return &DefaultFeeConfigRepository{DB: db}
}

func (r *DefaultFeeConfigRepository) GetFeeConfiguration(storeID string) (*domain.FeeConfiguration, error) {
	var model models.FeeConfigurationModel
	err := r.DB.First(&model, "store_id = ?", storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFeeConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fee configuration: %w", err)
	}
	return mappers.ToDomainFeeConfiguration(&model), nil
}

func (r *DefaultFeeConfigRepository) SaveFeeConfiguration(cfg *domain.FeeConfiguration) error {
	model := mappers.ToGORMFeeConfiguration(cfg)
	if err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		UpdateAll: true,
	}).Create(model).Error; err != nil {
		return fmt.Errorf("save fee configuration: %w", err)
	}
	return nil
}

func (r *DefaultFeeConfigRepository) ListActiveAdditionalCosts(storeID string) ([]*domain.AdditionalCost, error) {
	var costModels []models.AdditionalCostModel
	if err := r.DB.Where("store_id = ? AND is_active = ?", storeID, true).
		Find(&costModels).Error; err != nil {
		return nil, fmt.Errorf("list additional costs: %w", err)
	}

	costs := make([]*domain.AdditionalCost, len(costModels))
	for i := range costModels {
		costs[i] = mappers.ToDomainAdditionalCost(&costModels[i])
	}
	return costs, nil
}

func (r *DefaultFeeConfigRepository) SaveAdditionalCost(cost *domain.AdditionalCost) error {
	if cost.ID == "" {
		cost.ID = uuid.NewString()
		cost.CreatedAt = time.Now()
	}
	if err := r.DB.Save(mappers.ToGORMAdditionalCost(cost)).Error; err != nil {
		return fmt.Errorf("save additional cost: %w", err)
	}
	return nil
}

// DeactivateAdditionalCost flips the active flag; rows are never
// deleted so the audit trail survives.
func (r *DefaultFeeConfigRepository) DeactivateAdditionalCost(storeID, costID string) error {
	if err := r.DB.Model(&models.AdditionalCostModel{}).
		Where("store_id = ? AND id = ?", storeID, costID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate additional cost: %w", err)
	}
	return nil
}

func (r *DefaultFeeConfigRepository) ListActiveSubscriptionFees(storeID string) ([]*domain.SubscriptionFee, error) {
	var feeModels []models.SubscriptionFeeModel
	if err := r.DB.Where("store_id = ? AND is_active = ?", storeID, true).
		Find(&feeModels).Error; err != nil {
		return nil, fmt.Errorf("list subscription fees: %w", err)
	}

	fees := make([]*domain.SubscriptionFee, len(feeModels))
	for i := range feeModels {
		fees[i] = mappers.ToDomainSubscriptionFee(&feeModels[i])
	}
	return fees, nil
}

func (r *DefaultFeeConfigRepository) SaveSubscriptionFee(fee *domain.SubscriptionFee) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
		fee.CreatedAt = time.Now()
	}
	if err := r.DB.Save(mappers.ToGORMSubscriptionFee(fee)).Error; err != nil {
		return fmt.Errorf("save subscription fee: %w", err)
	}
	return nil
}

func (r *DefaultFeeConfigRepository) DeactivateSubscriptionFee(storeID, feeID string) error {
	if err := r.DB.Model(&models.SubscriptionFeeModel{}).
		Where("store_id = ? AND id = ?", storeID, feeID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate subscription fee: %w", err)
	}
	return nil
}

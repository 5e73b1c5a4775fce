package mappers

import (
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
)

func ToDomainFeeConfiguration(model *models.FeeConfigurationModel) *domain.FeeConfiguration {
	return &domain.FeeConfiguration{
		StoreID:               model.StoreID,
		PaymentGatewayRate:    model.PaymentGatewayRate,
		ProcessingFeePerOrder: model.ProcessingFeePerOrder,
		DefaultCogsRate:       model.DefaultCogsRate,
		ChargebackRate:        model.ChargebackRate,
		ReturnProcessingRate:  model.ReturnProcessingRate,
	}
}

func ToGORMFeeConfiguration(cfg *domain.FeeConfiguration) *models.FeeConfigurationModel {
	return &models.FeeConfigurationModel{
		StoreID:               cfg.StoreID,
		PaymentGatewayRate:    cfg.PaymentGatewayRate,
		ProcessingFeePerOrder: cfg.ProcessingFeePerOrder,
		DefaultCogsRate:       cfg.DefaultCogsRate,
		ChargebackRate:        cfg.ChargebackRate,
		ReturnProcessingRate:  cfg.ReturnProcessingRate,
	}
}

func ToDomainAdditionalCost(model *models.AdditionalCostModel) *domain.AdditionalCost {
	return &domain.AdditionalCost{
		ID:                 model.ID,
		StoreID:            model.StoreID,
		Name:               model.Name,
		PercentagePerOrder: model.PercentagePerOrder,
		PercentagePerItem:  model.PercentagePerItem,
		FlatPerOrder:       model.FlatPerOrder,
		FlatPerItem:        model.FlatPerItem,
		IsActive:           model.IsActive,
		CreatedAt:          model.CreatedAt,
	}
}

func ToGORMAdditionalCost(cost *domain.AdditionalCost) *models.AdditionalCostModel {
	return &models.AdditionalCostModel{
		ID:                 cost.ID,
		StoreID:            cost.StoreID,
		Name:               cost.Name,
		PercentagePerOrder: cost.PercentagePerOrder,
		PercentagePerItem:  cost.PercentagePerItem,
		FlatPerOrder:       cost.FlatPerOrder,
		FlatPerItem:        cost.FlatPerItem,
		IsActive:           cost.IsActive,
		CreatedAt:          cost.CreatedAt,
	}
}

func ToDomainSubscriptionFee(model *models.SubscriptionFeeModel) *domain.SubscriptionFee {
	return &domain.SubscriptionFee{
		ID:        model.ID,
		StoreID:   model.StoreID,
		Name:      model.Name,
		Interval:  domain.SubscriptionInterval(model.Interval),
		Amount:    model.Amount,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMSubscriptionFee(fee *domain.SubscriptionFee) *models.SubscriptionFeeModel {
	return &models.SubscriptionFeeModel{
		ID:        fee.ID,
		StoreID:   fee.StoreID,
		Name:      fee.Name,
		Interval:  string(fee.Interval),
		Amount:    fee.Amount,
		IsActive:  fee.IsActive,
		CreatedAt: fee.CreatedAt,
	}
}

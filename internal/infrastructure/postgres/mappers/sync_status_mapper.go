package mappers

import (
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
)

func ToDomainSyncStatus(model *models.SyncStatusModel) *domain.SyncStatus {
	return &domain.SyncStatus{
		StoreID:        model.StoreID,
		DataType:       model.DataType,
		SyncInProgress: model.SyncInProgress,
		LastHeartbeat:  model.LastHeartbeat,
		LastSyncAt:     model.LastSyncAt,
		ErrorMessage:   model.ErrorMessage,
		TimeframeDays:  model.TimeframeDays,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMSyncStatus(status *domain.SyncStatus) *models.SyncStatusModel {
	return &models.SyncStatusModel{
		StoreID:        status.StoreID,
		DataType:       status.DataType,
		SyncInProgress: status.SyncInProgress,
		LastHeartbeat:  status.LastHeartbeat,
		LastSyncAt:     status.LastSyncAt,
		ErrorMessage:   status.ErrorMessage,
		TimeframeDays:  status.TimeframeDays,
		UpdatedAt:      status.UpdatedAt,
	}
}

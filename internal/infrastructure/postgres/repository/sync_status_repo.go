package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/mappers"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSyncStatusRepository persists the ledger. All writes are
// last-write-wins upserts keyed by (store_id, data_type); no locking
// beyond that is attempted.
type DefaultSyncStatusRepository struct {
	DB *gorm.DB
}

func NewDefaultSyncStatusRepository(db *gorm.DB) *DefaultSyncStatusRepository {
	return &DefaultSyncStatusRepository{DB: db}
}

func (r *DefaultSyncStatusRepository) Get(storeID string, dataType domain.SyncDataType) (*domain.SyncStatus, error) {
	var model models.SyncStatusModel
	err := r.DB.First(&model, "store_id = ? AND data_type = ?", storeID, dataType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Created lazily on first sync attempt; absent means idle.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sync status: %w", err)
	}
	return mappers.ToDomainSyncStatus(&model), nil
}

func (r *DefaultSyncStatusRepository) Upsert(status *domain.SyncStatus) error {
	model := mappers.ToGORMSyncStatus(status)
	model.UpdatedAt = time.Now()
	if err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "data_type"}},
		UpdateAll: true,
	}).Create(model).Error; err != nil {
		return fmt.Errorf("upsert sync status: %w", err)
	}
	return nil
}

func (r *DefaultSyncStatusRepository) MarkRunning(storeID string, dataType domain.SyncDataType, timeframeDays int) error {
	now := time.Now()
	return r.Upsert(&domain.SyncStatus{
		StoreID:        storeID,
		DataType:       dataType,
		SyncInProgress: true,
		LastHeartbeat:  &now,
		LastSyncAt:     r.lastSyncAt(storeID, dataType),
		TimeframeDays:  timeframeDays,
	})
}

func (r *DefaultSyncStatusRepository) RenewHeartbeat(storeID string, dataType domain.SyncDataType) error {
	now := time.Now()
	if err := r.DB.Model(&models.SyncStatusModel{}).
		Where("store_id = ? AND data_type = ?", storeID, dataType).
		Updates(map[string]interface{}{
			"last_heartbeat": &now,
			"updated_at":     now,
		}).Error; err != nil {
		return fmt.Errorf("renew heartbeat: %w", err)
	}
	return nil
}

func (r *DefaultSyncStatusRepository) MarkCompleted(storeID string, dataType domain.SyncDataType) error {
	now := time.Now()
	if err := r.DB.Model(&models.SyncStatusModel{}).
		Where("store_id = ? AND data_type = ?", storeID, dataType).
		Updates(map[string]interface{}{
			"sync_in_progress": false,
			"last_heartbeat":   nil,
			"last_sync_at":     &now,
			"error_message":    nil,
			"updated_at":       now,
		}).Error; err != nil {
		return fmt.Errorf("mark sync completed: %w", err)
	}
	return nil
}

func (r *DefaultSyncStatusRepository) MarkFailed(storeID string, dataType domain.SyncDataType, errMsg string) error {
	now := time.Now()
	if err := r.DB.Model(&models.SyncStatusModel{}).
		Where("store_id = ? AND data_type = ?", storeID, dataType).
		Updates(map[string]interface{}{
			"sync_in_progress": false,
			"last_heartbeat":   nil,
			"error_message":    &errMsg,
			"updated_at":       now,
		}).Error; err != nil {
		return fmt.Errorf("mark sync failed: %w", err)
	}
	return nil
}

func (r *DefaultSyncStatusRepository) ClearInProgress(storeID string, dataType domain.SyncDataType) error {
	if err := r.DB.Model(&models.SyncStatusModel{}).
		Where("store_id = ? AND data_type = ?", storeID, dataType).
		Updates(map[string]interface{}{
			"sync_in_progress": false,
			"updated_at":       time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("clear in-progress flag: %w", err)
	}
	return nil
}

func (r *DefaultSyncStatusRepository) ListInProgress() ([]*domain.SyncStatus, error) {
	var statusModels []models.SyncStatusModel
	if err := r.DB.Where("sync_in_progress = ?", true).Find(&statusModels).Error; err != nil {
		return nil, fmt.Errorf("list in-progress syncs: %w", err)
	}

	statuses := make([]*domain.SyncStatus, len(statusModels))
	for i := range statusModels {
		statuses[i] = mappers.ToDomainSyncStatus(&statusModels[i])
	}
	return statuses, nil
}

func (r *DefaultSyncStatusRepository) lastSyncAt(storeID string, dataType domain.SyncDataType) *time.Time {
	var model models.SyncStatusModel
	if err := r.DB.First(&model, "store_id = ? AND data_type = ?", storeID, dataType).Error; err != nil {
		return nil
	}
	return model.LastSyncAt
}

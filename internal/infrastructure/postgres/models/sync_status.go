package models

import (
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type SyncStatusModel struct {
	StoreID        string              `gorm:"primaryKey"`
	DataType       domain.SyncDataType `gorm:"primaryKey"`
	SyncInProgress bool                `gorm:"index:idx_sync_in_progress"`
	LastHeartbeat  *time.Time
	LastSyncAt     *time.Time
	ErrorMessage   *string
	TimeframeDays  int
	UpdatedAt      time.Time
}

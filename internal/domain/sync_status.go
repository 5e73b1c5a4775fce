package domain

import "time"

type SyncDataType string

const (
	SyncOrders        SyncDataType = "orders"
	SyncProducts      SyncDataType = "products"
	SyncProductsCosts SyncDataType = "products_costs"
)

// SyncStatus is the durable ledger entry for one (store, data type)
// pair. It is the only way outside observers learn sync health. The
// row is a lease, not a lock: writes are last-write-wins upserts and
// the in-progress flag is best-effort.
type SyncStatus struct {
	StoreID        string
	DataType       SyncDataType
	SyncInProgress bool
	LastHeartbeat  *time.Time
	LastSyncAt     *time.Time
	ErrorMessage   *string
	// TimeframeDays is the window the currently running sync declared,
	// so late-joining observers compute progress against the same
	// window.
	TimeframeDays int
	UpdatedAt     time.Time
}

// HeartbeatStale reports whether the entry claims to be running
// without a liveness signal newer than the threshold.
func (s *SyncStatus) HeartbeatStale(now time.Time, staleAfter time.Duration) bool {
	if !s.SyncInProgress {
		return false
	}
	if s.LastHeartbeat == nil {
		return true
	}
	return now.Sub(*s.LastHeartbeat) > staleAfter
}

type SyncStatusRepository interface {
	Get(storeID string, dataType SyncDataType) (*SyncStatus, error)
	// Upsert writes the full entry, last-write-wins on
	// (store_id, data_type).
	Upsert(status *SyncStatus) error
	// MarkRunning flips the entry to in-progress, stamps the heartbeat
	// and records the declared timeframe.
	MarkRunning(storeID string, dataType SyncDataType, timeframeDays int) error
	RenewHeartbeat(storeID string, dataType SyncDataType) error
	// MarkCompleted clears the in-progress flag, heartbeat and error,
	// and stamps lastSyncAt.
	MarkCompleted(storeID string, dataType SyncDataType) error
	// MarkFailed clears the in-progress flag and heartbeat so a dead
	// run is not mistaken for a live one, and persists the error.
	MarkFailed(storeID string, dataType SyncDataType, errMsg string) error
	// ClearInProgress flips only the flag, used by stop-sync.
	ClearInProgress(storeID string, dataType SyncDataType) error
	ListInProgress() ([]*SyncStatus, error)
}

package domain

import "time"

type SyncEventType string

const (
	SyncEventStarted     SyncEventType = "sync_started"
	SyncEventCompleted   SyncEventType = "sync_completed"
	SyncEventFailed      SyncEventType = "sync_failed"
	SyncEventGhostReaped SyncEventType = "sync_ghost_reaped"
)

type SyncEvent struct {
	EventID      string        `json:"event_id"`
	Type         SyncEventType `json:"type"`
	StoreID      string        `json:"store_id"`
	DataType     SyncDataType  `json:"data_type"`
	RunID        string        `json:"run_id,omitempty"`
	NewCount     int           `json:"new_count,omitempty"`
	UpdatedCount int           `json:"updated_count,omitempty"`
	Error        string        `json:"error,omitempty"`
	OccurredAt   time.Time     `json:"occurred_at"`
}

// SyncEventPublisher delivers lifecycle events to interested
// consumers. Publishing is best-effort: failures are logged, never
// propagated into a run result.
type SyncEventPublisher interface {
	Publish(event SyncEvent) error
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics holds the operational metrics of the sync engine.
type SyncMetrics struct {
	SyncRunsStartedTotal   prometheus.CounterVec
	SyncRunsCompletedTotal prometheus.CounterVec
	SyncRunsFailedTotal    prometheus.CounterVec

	OrdersInsertedTotal prometheus.CounterVec
	OrdersUpdatedTotal  prometheus.CounterVec
	RowFailuresTotal    prometheus.CounterVec

	RemoteCallsTotal   prometheus.CounterVec
	RemoteCallDuration prometheus.HistogramVec

	BreakerTripsTotal prometheus.CounterVec
	GhostsReapedTotal prometheus.CounterVec

	SyncRunDuration prometheus.HistogramVec
}

func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{
		SyncRunsStartedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_runs_started_total",
				Help: "Total sync runs started",
			},
			[]string{"store_id", "data_type"},
		),

		SyncRunsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_runs_completed_total",
				Help: "Total sync runs completed successfully",
			},
			[]string{"store_id", "data_type"},
		),

		SyncRunsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_runs_failed_total",
				Help: "Total sync runs that ended with a run-level error",
			},
			[]string{"store_id", "data_type", "error_type"},
		),

		OrdersInsertedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_orders_inserted_total",
				Help: "Orders newly mirrored from the remote API",
			},
			[]string{"store_id"},
		),

		OrdersUpdatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_orders_updated_total",
				Help: "Existing mirrored orders updated in place",
			},
			[]string{"store_id"},
		),

		RowFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_row_failures_total",
				Help: "Per-row failures isolated during a batch",
			},
			[]string{"store_id", "data_type"},
		),

		RemoteCallsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remote_calls_total",
				Help: "Calls issued to the remote commerce API",
			},
			[]string{"operation", "outcome"},
		),

		RemoteCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "remote_call_duration_seconds",
				Help:    "Duration of remote commerce API calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"operation"},
		),

		BreakerTripsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_trips_total",
				Help: "Circuit breaker transitions to open",
			},
			[]string{"reason"},
		),

		GhostsReapedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghost_syncs_reaped_total",
				Help: "Ledger entries force-reset by the liveness monitor",
			},
			[]string{"store_id", "data_type", "reason"},
		),

		SyncRunDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sync_run_duration_seconds",
				Help:    "Wall-clock duration of sync runs",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"store_id", "data_type"},
		),
	}
}

func (m *SyncMetrics) RecordRunStarted(storeID, dataType string) {
	m.SyncRunsStartedTotal.WithLabelValues(storeID, dataType).Inc()
}

func (m *SyncMetrics) RecordRunCompleted(storeID, dataType string, durationSeconds float64, inserted, updated int) {
	m.SyncRunsCompletedTotal.WithLabelValues(storeID, dataType).Inc()
	m.SyncRunDuration.WithLabelValues(storeID, dataType).Observe(durationSeconds)
	if inserted > 0 {
		m.OrdersInsertedTotal.WithLabelValues(storeID).Add(float64(inserted))
	}
	if updated > 0 {
		m.OrdersUpdatedTotal.WithLabelValues(storeID).Add(float64(updated))
	}
}

func (m *SyncMetrics) RecordRunFailed(storeID, dataType, errorType string) {
	m.SyncRunsFailedTotal.WithLabelValues(storeID, dataType, errorType).Inc()
}

func (m *SyncMetrics) RecordRowFailure(storeID, dataType string) {
	m.RowFailuresTotal.WithLabelValues(storeID, dataType).Inc()
}

func (m *SyncMetrics) RecordRemoteCall(operation, outcome string, durationSeconds float64) {
	m.RemoteCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.RemoteCallDuration.WithLabelValues(operation).Observe(durationSeconds)
}

func (m *SyncMetrics) RecordBreakerTrip(reason string) {
	m.BreakerTripsTotal.WithLabelValues(reason).Inc()
}

func (m *SyncMetrics) RecordGhostReaped(storeID, dataType, reason string) {
	m.GhostsReapedTotal.WithLabelValues(storeID, dataType, reason).Inc()
}

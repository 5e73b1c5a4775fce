package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/profitpulse/shop-sync-service/internal/config"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/metrics"
)

type SyncUsecase interface {
	SyncOrders(ctx context.Context, storeID string, timeframeDays int) (*SyncResult, error)
	BackfillRefunds(ctx context.Context, storeID string) (*BackfillResult, error)
	SyncProducts(ctx context.Context, storeID string) (*SyncResult, error)
	SyncProductCosts(ctx context.Context, storeID string) (*SyncResult, error)

	StartSync(storeID string, dataType domain.SyncDataType, timeframeDays int) (*StartResult, error)
	StopSync(storeID string, dataType domain.SyncDataType) error
	GetStatus(ctx context.Context, storeID string, timeframeDays int) (*StatusReport, error)
	ReapGhosts(ctx context.Context) (*ReapResult, error)
}

// SyncResult is the outcome of one run. Partial-row failures do not
// fail the run; they are counted here and logged.
type SyncResult struct {
	RunID        string
	StoreID      string
	DataType     domain.SyncDataType
	NewCount     int
	UpdatedCount int
	FailedCount  int
	Success      bool
	Error        string
	Duration     time.Duration
}

type BackfillResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type StartResult struct {
	Accepted          bool
	AlreadyInProgress bool
}

type StatusReport struct {
	StoreID      string              `json:"store_id"`
	DataType     domain.SyncDataType `json:"data_type"`
	OrdersTotal  int64               `json:"orders_total"`
	OrdersSynced int64               `json:"orders_synced"`
	ProgressPct  float64             `json:"progress_pct"`
	IsActive     bool                `json:"is_active"`
	IsNeeded     bool                `json:"is_needed"`
	LastSyncAt   *time.Time          `json:"last_sync_at,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
}

type ReapDetail struct {
	StoreID  string              `json:"store_id"`
	DataType domain.SyncDataType `json:"data_type"`
	Reason   string              `json:"reason"`
}

type ReapResult struct {
	CleanedCount int          `json:"cleaned_count"`
	Details      []ReapDetail `json:"details"`
}

type DefaultSyncUsecase struct {
	OrderRepo   domain.OrderRepository
	ProductRepo domain.ProductRepository
	StatusRepo  domain.SyncStatusRepository
	Storefront  domain.StorefrontAPI
	Breaker     *CircuitBreaker
	Gate        *CallGate
	Publisher   domain.SyncEventPublisher
	Metrics     *metrics.SyncMetrics
	Tuning      config.SyncTuning

	logger   *slog.Logger
	newRunID func() string
}

func NewDefaultSyncUsecase(
	orderRepo domain.OrderRepository,
	productRepo domain.ProductRepository,
	statusRepo domain.SyncStatusRepository,
	storefront domain.StorefrontAPI,
	breaker *CircuitBreaker,
	gate *CallGate,
	publisher domain.SyncEventPublisher,
	syncMetrics *metrics.SyncMetrics,
	tuning config.SyncTuning,
	logger *slog.Logger) (*DefaultSyncUsecase, error) {

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	if syncMetrics != nil {
		breaker.OnTrip(syncMetrics.RecordBreakerTrip)
		gate.OnCall(syncMetrics.RecordRemoteCall)
	}

	return &DefaultSyncUsecase{
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		StatusRepo:  statusRepo,
		Storefront:  storefront,
		Breaker:     breaker,
		Gate:        gate,
		Publisher:   publisher,
		Metrics:     syncMetrics,
		Tuning:      tuning,
		logger:      logger,
		newRunID:    idGenerator,
	}, nil
}

// acquireLease claims the ledger entry for the run. A fresh-heartbeat
// in-progress entry blocks; a stale one is taken over, since the row
// is a lease rather than a lock.
func (uc *DefaultSyncUsecase) acquireLease(storeID string, dataType domain.SyncDataType, timeframeDays int) error {
	status, err := uc.StatusRepo.Get(storeID, dataType)
	if err != nil {
		return err
	}
	if status != nil && status.SyncInProgress && !status.HeartbeatStale(time.Now(), uc.Tuning.StaleThreshold) {
		return domain.ErrSyncInProgress
	}
	return uc.StatusRepo.MarkRunning(storeID, dataType, timeframeDays)
}

// stopRequested re-reads the ledger between batches; a cleared flag
// means a stop was requested or a reaper took the row over.
func (uc *DefaultSyncUsecase) stopRequested(storeID string, dataType domain.SyncDataType) bool {
	status, err := uc.StatusRepo.Get(storeID, dataType)
	if err != nil || status == nil {
		return false
	}
	return !status.SyncInProgress
}

func (uc *DefaultSyncUsecase) publish(event domain.SyncEvent) {
	if uc.Publisher == nil {
		return
	}
	event.EventID = uc.newRunID()
	event.OccurredAt = time.Now()
	if err := uc.Publisher.Publish(event); err != nil {
		uc.logger.Warn("failed to publish sync event",
			slog.String("type", string(event.Type)),
			slog.String("store_id", event.StoreID),
			slog.String("error", err.Error()))
	}
}

// errorType buckets a run-level error for the failure counter.
func errorType(err error) string {
	var rateLimited *domain.RateLimitedError
	var transient *domain.TransientError
	var fatal *domain.FatalError
	switch {
	case errors.Is(err, domain.ErrCircuitOpen):
		return "circuit_open"
	case errors.As(err, &rateLimited):
		return "rate_limited"
	case errors.As(err, &fatal):
		return "fatal"
	case errors.As(err, &transient):
		return "transient"
	default:
		return "internal"
	}
}

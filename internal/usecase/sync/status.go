package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

// StartSync spawns the requested sync on a background goroutine and
// answers immediately. The run itself takes the ledger lease; the
// pre-check here only gives callers a synchronous alreadyInProgress
// answer instead of a fire-and-forget failure.
func (uc *DefaultSyncUsecase) StartSync(storeID string, dataType domain.SyncDataType, timeframeDays int) (*StartResult, error) {
	if err := uc.Breaker.Allow(); err != nil {
		return nil, err
	}

	status, err := uc.StatusRepo.Get(storeID, dataType)
	if err != nil {
		return nil, err
	}
	if status != nil && status.SyncInProgress && !status.HeartbeatStale(time.Now(), uc.Tuning.StaleThreshold) {
		return &StartResult{AlreadyInProgress: true}, nil
	}

	go func() {
		ctx := context.Background()
		var err error
		switch dataType {
		case domain.SyncProducts:
			_, err = uc.SyncProducts(ctx, storeID)
		case domain.SyncProductsCosts:
			_, err = uc.SyncProductCosts(ctx, storeID)
		default:
			_, err = uc.SyncOrders(ctx, storeID, timeframeDays)
		}
		if err != nil {
			uc.logger.Error("background sync failed",
				slog.String("store_id", storeID),
				slog.String("data_type", string(dataType)),
				slog.String("error", err.Error()))
		}
	}()

	return &StartResult{Accepted: true}, nil
}

// StopSync clears the in-progress flag. The running goroutine notices
// between batches and winds down; this is a request, not a kill.
func (uc *DefaultSyncUsecase) StopSync(storeID string, dataType domain.SyncDataType) error {
	return uc.StatusRepo.ClearInProgress(storeID, dataType)
}

// GetStatus reports order-sync health and progress. Reading repairs:
// a stale in-progress entry is reaped and a stuck-complete one is
// closed before the report is built, so observers never see a dead
// run as live.
func (uc *DefaultSyncUsecase) GetStatus(ctx context.Context, storeID string, timeframeDays int) (*StatusReport, error) {
	if timeframeDays <= 0 {
		timeframeDays = uc.Tuning.DefaultTimeframeDays
	}

	status, err := uc.StatusRepo.Get(storeID, domain.SyncOrders)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if status != nil && status.HeartbeatStale(now, uc.Tuning.StaleThreshold) {
		uc.reapGhost(status, &ReapResult{Details: []ReapDetail{}})
		status, err = uc.StatusRepo.Get(storeID, domain.SyncOrders)
		if err != nil {
			return nil, err
		}
	} else if status != nil && status.SyncInProgress && uc.stuckComplete(ctx, status, now) {
		uc.reapStuckComplete(status, &ReapResult{Details: []ReapDetail{}})
		status, err = uc.StatusRepo.Get(storeID, domain.SyncOrders)
		if err != nil {
			return nil, err
		}
	}

	report := &StatusReport{
		StoreID:  storeID,
		DataType: domain.SyncOrders,
	}
	if status != nil {
		report.IsActive = status.SyncInProgress
		report.LastSyncAt = status.LastSyncAt
		report.ErrorMessage = status.ErrorMessage
		// A live run declared its own window; progress is computed
		// against that, not against what the caller asked for.
		if status.SyncInProgress && status.TimeframeDays > 0 {
			timeframeDays = status.TimeframeDays
		}
	}

	from := now.AddDate(0, 0, -timeframeDays)
	synced, err := uc.OrderRepo.CountOrdersInWindow(storeID, from, now)
	if err != nil {
		return nil, err
	}
	report.OrdersSynced = synced

	report.OrdersTotal = uc.remoteOrderTotal(ctx, storeID, from, now, synced)
	report.ProgressPct = progressPct(synced, report.OrdersTotal)
	report.IsNeeded = status == nil || status.LastSyncAt == nil || synced < report.OrdersTotal
	return report, nil
}

// remoteOrderTotal degrades to the local count when the remote count
// is unavailable, e.g. while the breaker is open.
func (uc *DefaultSyncUsecase) remoteOrderTotal(ctx context.Context, storeID string, from, to time.Time, local int64) int64 {
	var total int64
	err := uc.Gate.Do(ctx, "count_orders", func(ctx context.Context) error {
		count, err := uc.Storefront.CountOrders(ctx, from, to)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err != nil {
		uc.logger.Warn("remote order count unavailable",
			slog.String("store_id", storeID),
			slog.String("error", err.Error()))
		return local
	}
	return total
}

func progressPct(synced, total int64) float64 {
	if total <= 0 {
		return 100
	}
	pct := float64(synced) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

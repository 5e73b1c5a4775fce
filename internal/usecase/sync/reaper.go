package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

const ghostSyncMessage = "auto-completed ghost sync"

// ReapGhosts walks every in-progress ledger entry and resets the ones
// whose run is provably dead. A ghost is an entry without a fresh
// heartbeat: the process that wrote it crashed or was killed before
// its completion write. An entry with a fresh heartbeat whose mirror
// already holds at least as many orders as the remote window is
// treated as stuck-complete and closed as well.
func (uc *DefaultSyncUsecase) ReapGhosts(ctx context.Context) (*ReapResult, error) {
	entries, err := uc.StatusRepo.ListInProgress()
	if err != nil {
		return nil, err
	}

	result := &ReapResult{Details: []ReapDetail{}}
	now := time.Now()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if entry.HeartbeatStale(now, uc.Tuning.StaleThreshold) {
			uc.reapGhost(entry, result)
			continue
		}

		if entry.DataType == domain.SyncOrders && uc.stuckComplete(ctx, entry, now) {
			uc.reapStuckComplete(entry, result)
		}
	}
	return result, nil
}

func (uc *DefaultSyncUsecase) reapGhost(entry *domain.SyncStatus, result *ReapResult) {
	if err := uc.StatusRepo.MarkFailed(entry.StoreID, entry.DataType, ghostSyncMessage); err != nil {
		uc.logger.Error("failed to reap ghost sync",
			slog.String("store_id", entry.StoreID),
			slog.String("data_type", string(entry.DataType)),
			slog.String("error", err.Error()))
		return
	}

	result.CleanedCount++
	result.Details = append(result.Details, ReapDetail{
		StoreID:  entry.StoreID,
		DataType: entry.DataType,
		Reason:   "stale_heartbeat",
	})
	if uc.Metrics != nil {
		uc.Metrics.RecordGhostReaped(entry.StoreID, string(entry.DataType), "stale_heartbeat")
	}
	uc.publish(domain.SyncEvent{
		Type:     domain.SyncEventGhostReaped,
		StoreID:  entry.StoreID,
		DataType: entry.DataType,
		Error:    ghostSyncMessage,
	})
	uc.logger.Warn("reaped ghost sync",
		slog.String("store_id", entry.StoreID),
		slog.String("data_type", string(entry.DataType)))
}

// stuckComplete compares the mirror against the remote window count.
// An unknown remote count never reaps: only positive evidence that
// the work is done closes a live-looking entry.
func (uc *DefaultSyncUsecase) stuckComplete(ctx context.Context, entry *domain.SyncStatus, now time.Time) bool {
	timeframeDays := entry.TimeframeDays
	if timeframeDays <= 0 {
		timeframeDays = uc.Tuning.DefaultTimeframeDays
	}
	from := now.AddDate(0, 0, -timeframeDays)

	var remoteCount int64
	err := uc.Gate.Do(ctx, "count_orders", func(ctx context.Context) error {
		count, err := uc.Storefront.CountOrders(ctx, from, now)
		if err != nil {
			return err
		}
		remoteCount = count
		return nil
	})
	if err != nil {
		return false
	}

	localCount, err := uc.OrderRepo.CountOrdersInWindow(entry.StoreID, from, now)
	if err != nil {
		return false
	}
	return remoteCount > 0 && localCount >= remoteCount
}

func (uc *DefaultSyncUsecase) reapStuckComplete(entry *domain.SyncStatus, result *ReapResult) {
	if err := uc.StatusRepo.MarkCompleted(entry.StoreID, entry.DataType); err != nil {
		uc.logger.Error("failed to close stuck-complete sync",
			slog.String("store_id", entry.StoreID),
			slog.String("data_type", string(entry.DataType)),
			slog.String("error", err.Error()))
		return
	}

	result.CleanedCount++
	result.Details = append(result.Details, ReapDetail{
		StoreID:  entry.StoreID,
		DataType: entry.DataType,
		Reason:   "stuck_complete",
	})
	if uc.Metrics != nil {
		uc.Metrics.RecordGhostReaped(entry.StoreID, string(entry.DataType), "stuck_complete")
	}
	uc.logger.Info("closed stuck-complete sync",
		slog.String("store_id", entry.StoreID),
		slog.String("data_type", string(entry.DataType)))
}

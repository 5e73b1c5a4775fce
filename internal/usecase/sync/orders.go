package sync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

// SyncOrders mirrors the store's orders for the trailing window. New
// orders are adopted with their refund totals resolved; existing
// orders get status-only updates so an enriched refund figure is
// never overwritten by the plain order payload.
func (uc *DefaultSyncUsecase) SyncOrders(ctx context.Context, storeID string, timeframeDays int) (*SyncResult, error) {
	if timeframeDays <= 0 {
		timeframeDays = uc.Tuning.DefaultTimeframeDays
	}

	result := &SyncResult{
		RunID:    uc.newRunID(),
		StoreID:  storeID,
		DataType: domain.SyncOrders,
	}

	if err := uc.Breaker.Allow(); err != nil {
		return result, err
	}
	if err := uc.acquireLease(storeID, domain.SyncOrders, timeframeDays); err != nil {
		return result, err
	}

	started := time.Now()
	from := started.AddDate(0, 0, -timeframeDays)

	uc.logger.Info("order sync started",
		slog.String("run_id", result.RunID),
		slog.String("store_id", storeID),
		slog.Int("timeframe_days", timeframeDays))
	if uc.Metrics != nil {
		uc.Metrics.RecordRunStarted(storeID, string(domain.SyncOrders))
	}
	uc.publish(domain.SyncEvent{
		Type:     domain.SyncEventStarted,
		StoreID:  storeID,
		DataType: domain.SyncOrders,
		RunID:    result.RunID,
	})

	runErr := uc.syncOrderPages(ctx, storeID, from, started, result)

	result.Duration = time.Since(started)
	if runErr != nil {
		return result, uc.finishFailed(storeID, domain.SyncOrders, result, runErr)
	}
	uc.finishCompleted(storeID, domain.SyncOrders, result)
	return result, nil
}

func (uc *DefaultSyncUsecase) syncOrderPages(ctx context.Context, storeID string, from, started time.Time, result *SyncResult) error {
	cursor := ""
	lastHeartbeat := started
	deadline := started.Add(uc.Tuning.WallClockBudget)

	for {
		var page *domain.OrderPage
		err := uc.Gate.Do(ctx, "list_orders", func(ctx context.Context) error {
			fetched, err := uc.Storefront.ListOrders(ctx, domain.ListOrdersRequest{
				CreatedAtMin: from,
				CreatedAtMax: started,
				Cursor:       cursor,
			})
			if err != nil {
				return err
			}
			page = fetched
			return nil
		})
		if err != nil {
			return err
		}

		exhausted, err := uc.adoptOrderPage(ctx, storeID, page.Orders, started, deadline, result)
		if err != nil {
			return err
		}
		// A partial run is still a successful run.
		if exhausted {
			uc.logger.Warn("order sync stopping on wall-clock budget",
				slog.String("run_id", result.RunID),
				slog.String("store_id", storeID))
			return nil
		}

		if time.Since(lastHeartbeat) >= uc.Tuning.HeartbeatInterval {
			if err := uc.StatusRepo.RenewHeartbeat(storeID, domain.SyncOrders); err != nil {
				uc.logger.Warn("failed to renew heartbeat",
					slog.String("store_id", storeID),
					slog.String("error", err.Error()))
			}
			lastHeartbeat = time.Now()
		}

		// The stop flag is re-read between batches.
		if uc.stopRequested(storeID, domain.SyncOrders) {
			uc.logger.Info("order sync stopping on request",
				slog.String("run_id", result.RunID),
				slog.String("store_id", storeID))
			return nil
		}

		cursor = page.NextCursor
		if cursor == "" {
			return nil
		}
	}
}

// adoptOrderPage partitions one page into new and existing orders with
// a single existence query, then walks the two paths. The wall-clock
// budget gates every row, not just every page: one slow page must not
// overrun the whole run. Returns true when the budget ran out.
func (uc *DefaultSyncUsecase) adoptOrderPage(ctx context.Context, storeID string, remote []*domain.RemoteOrder, now, deadline time.Time, result *SyncResult) (bool, error) {
	if len(remote) == 0 {
		return false, nil
	}

	ids := make([]string, len(remote))
	for i, order := range remote {
		ids[i] = order.ShopifyOrderID
	}
	existing, err := uc.OrderRepo.ExistingShopifyIDs(storeID, ids)
	if err != nil {
		return false, err
	}

	var (
		toInsert       []*domain.Order
		wg             sync.WaitGroup
		refundFailures int64
		exhausted      bool
	)
	for _, order := range remote {
		if time.Now().After(deadline) {
			exhausted = true
			break
		}

		if existing[order.ShopifyOrderID] {
			uc.updateExistingOrder(storeID, order, now, result)
			continue
		}

		adopted := order.Order
		adopted.StoreID = storeID
		adopted.LastSyncedAt = now
		toInsert = append(toInsert, &adopted)

		// Inline totals win; a refund-implying status without one needs
		// the extra refunds call. Those lookups fan out through the
		// gate so the worker bound paces them, not the page walk.
		if order.TotalRefunded != nil {
			adopted.Refunds = *order.TotalRefunded
			continue
		}
		if !order.RefundImplied() {
			continue
		}
		wg.Add(1)
		go func(remote *domain.RemoteOrder, target *domain.Order) {
			defer wg.Done()
			total, failed := uc.fetchRefundTotal(ctx, storeID, remote)
			target.Refunds = total
			if failed {
				atomic.AddInt64(&refundFailures, 1)
			}
		}(order, &adopted)
	}
	wg.Wait()
	result.FailedCount += int(refundFailures)

	if len(toInsert) > 0 {
		if err := uc.OrderRepo.BulkInsertOrders(toInsert); err != nil {
			return exhausted, err
		}
		result.NewCount += len(toInsert)
	}
	return exhausted, nil
}

// fetchRefundTotal captures the initial refund total for a new order.
// A failed fetch does not block adoption: the order lands with a zero
// total and the backfill picks it up.
func (uc *DefaultSyncUsecase) fetchRefundTotal(ctx context.Context, storeID string, order *domain.RemoteOrder) (float64, bool) {
	var details *domain.RefundDetails
	err := uc.Gate.Do(ctx, "get_order_refunds", func(ctx context.Context) error {
		fetched, err := uc.Storefront.GetOrderRefunds(ctx, order.ShopifyOrderID)
		if err != nil {
			return err
		}
		details = fetched
		return nil
	})
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordRowFailure(storeID, string(domain.SyncOrders))
		}
		uc.logger.Warn("failed to resolve refunds for new order",
			slog.String("store_id", storeID),
			slog.String("shopify_order_id", order.ShopifyOrderID),
			slog.String("error", err.Error()))
		return 0, true
	}
	return details.TotalRefunded(), false
}

// updateExistingOrder applies the status-only update path with
// per-row isolation.
func (uc *DefaultSyncUsecase) updateExistingOrder(storeID string, order *domain.RemoteOrder, now time.Time, result *SyncResult) {
	err := uc.OrderRepo.UpdateOrderStatuses(storeID, order.ShopifyOrderID, domain.OrderStatusUpdate{
		FinancialStatus:   order.FinancialStatus,
		FulfillmentStatus: order.FulfillmentStatus,
		Gateway:           order.Gateway,
		PaymentMethods:    order.PaymentMethods,
		LastSyncedAt:      now,
	})
	if err != nil {
		result.FailedCount++
		if uc.Metrics != nil {
			uc.Metrics.RecordRowFailure(storeID, string(domain.SyncOrders))
		}
		uc.logger.Warn("failed to update order",
			slog.String("store_id", storeID),
			slog.String("shopify_order_id", order.ShopifyOrderID),
			slog.String("error", err.Error()))
		return
	}
	result.UpdatedCount++
}

func (uc *DefaultSyncUsecase) finishCompleted(storeID string, dataType domain.SyncDataType, result *SyncResult) {
	result.Success = true
	if err := uc.StatusRepo.MarkCompleted(storeID, dataType); err != nil {
		uc.logger.Error("failed to mark sync completed",
			slog.String("store_id", storeID),
			slog.String("data_type", string(dataType)),
			slog.String("error", err.Error()))
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordRunCompleted(storeID, string(dataType), result.Duration.Seconds(), result.NewCount, result.UpdatedCount)
	}
	uc.publish(domain.SyncEvent{
		Type:         domain.SyncEventCompleted,
		StoreID:      storeID,
		DataType:     dataType,
		RunID:        result.RunID,
		NewCount:     result.NewCount,
		UpdatedCount: result.UpdatedCount,
	})
	uc.logger.Info("sync completed",
		slog.String("run_id", result.RunID),
		slog.String("store_id", storeID),
		slog.String("data_type", string(dataType)),
		slog.Int("new", result.NewCount),
		slog.Int("updated", result.UpdatedCount),
		slog.Int("failed", result.FailedCount),
		slog.Duration("duration", result.Duration))
}

func (uc *DefaultSyncUsecase) finishFailed(storeID string, dataType domain.SyncDataType, result *SyncResult, runErr error) error {
	result.Success = false
	result.Error = runErr.Error()
	if err := uc.StatusRepo.MarkFailed(storeID, dataType, runErr.Error()); err != nil {
		uc.logger.Error("failed to mark sync failed",
			slog.String("store_id", storeID),
			slog.String("data_type", string(dataType)),
			slog.String("error", err.Error()))
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordRunFailed(storeID, string(dataType), errorType(runErr))
	}
	uc.publish(domain.SyncEvent{
		Type:     domain.SyncEventFailed,
		StoreID:  storeID,
		DataType: dataType,
		RunID:    result.RunID,
		Error:    runErr.Error(),
	})
	uc.logger.Error("sync failed",
		slog.String("run_id", result.RunID),
		slog.String("store_id", storeID),
		slog.String("data_type", string(dataType)),
		slog.String("error", runErr.Error()))
	return runErr
}

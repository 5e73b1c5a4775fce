package sync

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

// refundUpdateEpsilon keeps the backfill from churning rows over
// sub-cent float noise.
const refundUpdateEpsilon = 0.01

// BackfillRefunds re-resolves refund totals for orders whose status
// implies refund activity but whose cached total is still zero. It is
// deliberately slow: one refunds call per suspect with a fixed delay
// in between.
func (uc *DefaultSyncUsecase) BackfillRefunds(ctx context.Context, storeID string) (*BackfillResult, error) {
	suspects, err := uc.OrderRepo.FindRefundSuspects(storeID)
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{Checked: len(suspects)}
	if len(suspects) == 0 {
		return result, nil
	}

	uc.logger.Info("refund backfill started",
		slog.String("store_id", storeID),
		slog.Int("suspects", len(suspects)))

	for i, order := range suspects {
		if err := ctx.Err(); err != nil {
			return result, err
		}

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
			result.Failed++
			uc.logger.Warn("refund backfill row failed",
				slog.String("store_id", storeID),
				slog.String("shopify_order_id", order.ShopifyOrderID),
				slog.String("error", err.Error()))
			// An open breaker will reject every remaining row too.
			if uc.Breaker.Open() {
				return result, err
			}
			continue
		}

		total := details.TotalRefunded()
		if math.Abs(total-order.Refunds) > refundUpdateEpsilon {
			if err := uc.OrderRepo.UpdateOrderRefunds(storeID, order.ShopifyOrderID, total); err != nil {
				result.Failed++
				uc.logger.Warn("failed to store backfilled refunds",
					slog.String("store_id", storeID),
					slog.String("shopify_order_id", order.ShopifyOrderID),
					slog.String("error", err.Error()))
				continue
			}
			result.Updated++
		}

		if i < len(suspects)-1 && uc.Tuning.BackfillInterCallDelay > 0 {
			select {
			case <-time.After(uc.Tuning.BackfillInterCallDelay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}

	uc.logger.Info("refund backfill finished",
		slog.String("store_id", storeID),
		slog.Int("checked", result.Checked),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed))
	return result, nil
}

package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

// SyncProducts mirrors the store's product catalog, variants included.
func (uc *DefaultSyncUsecase) SyncProducts(ctx context.Context, storeID string) (*SyncResult, error) {
	result := &SyncResult{
		RunID:    uc.newRunID(),
		StoreID:  storeID,
		DataType: domain.SyncProducts,
	}

	if err := uc.Breaker.Allow(); err != nil {
		return result, err
	}
	if err := uc.acquireLease(storeID, domain.SyncProducts, 0); err != nil {
		return result, err
	}

	started := time.Now()
	if uc.Metrics != nil {
		uc.Metrics.RecordRunStarted(storeID, string(domain.SyncProducts))
	}
	uc.publish(domain.SyncEvent{
		Type:     domain.SyncEventStarted,
		StoreID:  storeID,
		DataType: domain.SyncProducts,
		RunID:    result.RunID,
	})

	runErr := uc.syncProductPages(ctx, storeID, started, result)

	result.Duration = time.Since(started)
	if runErr != nil {
		return result, uc.finishFailed(storeID, domain.SyncProducts, result, runErr)
	}
	uc.finishCompleted(storeID, domain.SyncProducts, result)
	return result, nil
}

func (uc *DefaultSyncUsecase) syncProductPages(ctx context.Context, storeID string, started time.Time, result *SyncResult) error {
	cursor := ""
	lastHeartbeat := started

	// The upsert cannot tell inserts from updates, so the split is
	// computed against the IDs known before the run.
	knownIDs, err := uc.ProductRepo.ShopifyProductIDs(storeID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = true
	}

	for {
		var page *domain.ProductPage
		err := uc.Gate.Do(ctx, "list_products", func(ctx context.Context) error {
			fetched, err := uc.Storefront.ListProducts(ctx, cursor)
			if err != nil {
				return err
			}
			page = fetched
			return nil
		})
		if err != nil {
			return err
		}

		now := time.Now()
		for _, product := range page.Products {
			product.StoreID = storeID
			product.LastSyncedAt = now
		}
		if err := uc.ProductRepo.UpsertProducts(page.Products); err != nil {
			return err
		}
		for _, product := range page.Products {
			if known[product.ShopifyProductID] {
				result.UpdatedCount++
				continue
			}
			known[product.ShopifyProductID] = true
			result.NewCount++
		}

		if time.Since(lastHeartbeat) >= uc.Tuning.HeartbeatInterval {
			if err := uc.StatusRepo.RenewHeartbeat(storeID, domain.SyncProducts); err != nil {
				uc.logger.Warn("failed to renew heartbeat",
					slog.String("store_id", storeID),
					slog.String("error", err.Error()))
			}
			lastHeartbeat = time.Now()
		}
		if time.Since(started) > uc.Tuning.WallClockBudget {
			return nil
		}
		if uc.stopRequested(storeID, domain.SyncProducts) {
			return nil
		}

		cursor = page.NextCursor
		if cursor == "" {
			return nil
		}
	}
}

// SyncProductCosts refreshes cost-per-item for every mirrored product.
// Costs live on inventory items upstream, so the adapter resolves them
// in batches; unknown costs stay nil rather than collapsing to zero.
func (uc *DefaultSyncUsecase) SyncProductCosts(ctx context.Context, storeID string) (*SyncResult, error) {
	result := &SyncResult{
		RunID:    uc.newRunID(),
		StoreID:  storeID,
		DataType: domain.SyncProductsCosts,
	}

	if err := uc.Breaker.Allow(); err != nil {
		return result, err
	}
	if err := uc.acquireLease(storeID, domain.SyncProductsCosts, 0); err != nil {
		return result, err
	}

	started := time.Now()
	if uc.Metrics != nil {
		uc.Metrics.RecordRunStarted(storeID, string(domain.SyncProductsCosts))
	}

	runErr := uc.refreshCosts(ctx, storeID, result)

	result.Duration = time.Since(started)
	if runErr != nil {
		return result, uc.finishFailed(storeID, domain.SyncProductsCosts, result, runErr)
	}
	uc.finishCompleted(storeID, domain.SyncProductsCosts, result)
	return result, nil
}

func (uc *DefaultSyncUsecase) refreshCosts(ctx context.Context, storeID string, result *SyncResult) error {
	productIDs, err := uc.ProductRepo.ShopifyProductIDs(storeID)
	if err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	var costs map[string]map[string]float64
	err = uc.Gate.Do(ctx, "get_variant_costs", func(ctx context.Context) error {
		fetched, err := uc.Storefront.GetVariantCosts(ctx, productIDs)
		if err != nil {
			return err
		}
		costs = fetched
		return nil
	})
	if err != nil {
		return err
	}

	for _, variants := range costs {
		for variantID, cost := range variants {
			if err := uc.ProductRepo.UpdateVariantCost(storeID, variantID, cost); err != nil {
				result.FailedCount++
				if uc.Metrics != nil {
					uc.Metrics.RecordRowFailure(storeID, string(domain.SyncProductsCosts))
				}
				uc.logger.Warn("failed to store variant cost",
					slog.String("store_id", storeID),
					slog.String("shopify_variant_id", variantID),
					slog.String("error", err.Error()))
				continue
			}
			result.UpdatedCount++
		}
	}
	return nil
}

package background

import (
	"context"
	"log"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/config"
	syncusecase "github.com/profitpulse/shop-sync-service/internal/usecase/sync"
)

type BackgroundTasks struct {
	SyncUsecase syncusecase.SyncUsecase
	StoreID     string
	Tuning      config.SyncTuning
}

func NewBackgroundTasks(syncUC syncusecase.SyncUsecase, storeID string, tuning config.SyncTuning) *BackgroundTasks {
	return &BackgroundTasks{
		SyncUsecase: syncUC,
		StoreID:     storeID,
		Tuning:      tuning,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startGhostReaper(ctx)
	go bt.startCostRefresh(ctx)
}

func (bt *BackgroundTasks) startGhostReaper(ctx context.Context) {
	ticker := time.NewTicker(bt.Tuning.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := bt.SyncUsecase.ReapGhosts(ctx)
			if err != nil {
				log.Printf("Ghost reaper error: %v\n", err)
				continue
			}
			if result.CleanedCount > 0 {
				log.Printf("Ghost reaper cleaned %d entries\n", result.CleanedCount)
			}
		}
	}
}

func (bt *BackgroundTasks) startCostRefresh(ctx context.Context) {
	ticker := time.NewTicker(bt.Tuning.CostRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bt.SyncUsecase.SyncProductCosts(ctx, bt.StoreID); err != nil {
				log.Printf("Product cost refresh error: %v\n", err)
			}
		}
	}
}

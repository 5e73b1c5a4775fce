package setup

import (
	"fmt"

	"github.com/profitpulse/shop-sync-service/internal/usecase/analytics"
	syncusecase "github.com/profitpulse/shop-sync-service/internal/usecase/sync"
)

type UseCases struct {
	SyncUsecase      syncusecase.SyncUsecase
	AnalyticsUsecase analytics.AnalyticsUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	tuning := deps.Config.SyncTuning

	breaker := syncusecase.NewCircuitBreaker(
		tuning.FailureThreshold,
		tuning.RateLimitThreshold,
		tuning.FailureCooldown,
		tuning.RateLimitCooldown,
	)
	gate := syncusecase.NewCallGate(tuning.GateWorkers, tuning.InterCallDelay, breaker)

	syncUsecase, err := syncusecase.NewDefaultSyncUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.ProductRepo,
		deps.Repositories.StatusRepo,
		deps.Storefront,
		breaker,
		gate,
		deps.Publisher,
		deps.Metrics,
		tuning,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("sync usecase: %w", err)
	}

	analyticsUsecase := analytics.NewDefaultAnalyticsUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.ProductRepo,
		deps.Repositories.FeeRepo,
		deps.Repositories.ShippingRepo,
		deps.Logger,
	)

	return &UseCases{
		SyncUsecase:      syncUsecase,
		AnalyticsUsecase: analyticsUsecase,
	}, nil
}

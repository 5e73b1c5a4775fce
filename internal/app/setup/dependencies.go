package setup

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/profitpulse/shop-sync-service/internal/config"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/kafka"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/metrics"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/repository"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/shipdb"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/shopify"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.SyncConfig
	DB           *gorm.DB
	Logger       *slog.Logger
	Publisher    *kafka.SyncEventPublisher
	Metrics      *metrics.SyncMetrics
	Storefront   domain.StorefrontAPI
	Repositories *Repositories
}

type Repositories struct {
	OrderRepo    domain.OrderRepository
	ProductRepo  domain.ProductRepository
	StatusRepo   domain.SyncStatusRepository
	FeeRepo      domain.FeeConfigRepository
	ShippingRepo domain.ShippingCostRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	logger := initLogger(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	eventPublisher := kafka.NewSyncEventPublisher(brokers, cfg.KafkaService.Topic)

	storefront := shopify.NewClient(cfg.ShopifyAPI)

	repos := &Repositories{
		OrderRepo:   repository.NewDefaultOrderRepository(db),
		ProductRepo: repository.NewDefaultProductRepository(db),
		StatusRepo:  repository.NewDefaultSyncStatusRepository(db),
		FeeRepo:     repository.NewDefaultFeeConfigRepository(db),
	}

	// The shipping cost source is optional; without it summaries
	// degrade per the shipping cost rules.
	if cfg.ShippingDB.Dsn != "" {
		shippingRepo, err := shipdb.NewDefaultShippingCostRepository(cfg.ShippingDB.Dsn)
		if err != nil {
			return nil, fmt.Errorf("shipping cost source: %w", err)
		}
		repos.ShippingRepo = shippingRepo
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		Logger:       logger,
		Publisher:    eventPublisher,
		Metrics:      metrics.NewSyncMetrics(),
		Storefront:   storefront,
		Repositories: repos,
	}, nil
}

func initLogger(cfg *config.SyncConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogConfig.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

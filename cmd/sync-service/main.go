package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/profitpulse/shop-sync-service/internal/app/background"
	"github.com/profitpulse/shop-sync-service/internal/app/setup"
	deliveryhttp "github.com/profitpulse/shop-sync-service/internal/delivery/http"
	"github.com/profitpulse/shop-sync-service/internal/delivery/http/handlers"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer deps.Publisher.Close()

	if deps.Config.MirrorDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, deps.Config.MirrorDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to initialize usecases: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := background.NewBackgroundTasks(useCases.SyncUsecase, deps.Config.ShopifyAPI.StoreID, deps.Config.SyncTuning)
	tasks.StartAll(ctx)

	syncHandler := handlers.NewSyncHandler(useCases.SyncUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(useCases.AnalyticsUsecase, deps.Config.SyncTuning.DefaultTimeframeDays)

	server := deliveryhttp.NewServer(syncHandler, analyticsHandler)

	address := fmt.Sprintf("%s:%s", deps.Config.HTTPServer.Host, deps.Config.HTTPServer.Port)
	log.Printf("sync service listening on %s", address)
	if err := server.Start(address); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}

package postgres

import (
	"log"

	"github.com/profitpulse/shop-sync-service/internal/config"
	"github.com/profitpulse/shop-sync-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.SyncConfig) *gorm.DB {
	dsn := cfg.MirrorDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.OrderModel{},
		&models.LineItemModel{},
		&models.ProductModel{},
		&models.VariantModel{},
		&models.SyncStatusModel{},
		&models.FeeConfigurationModel{},
		&models.AdditionalCostModel{},
		&models.SubscriptionFeeModel{},
	)

	return db
}

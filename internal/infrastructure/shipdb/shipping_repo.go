package shipdb

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ShippingCostModel lives in the secondary shipping database and is
// keyed by order name, not order ID — the carrier exports only know
// the display name.
type ShippingCostModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderName string `gorm:"index:idx_shipping_order_name"`
	Cost      float64
	Carrier   string
	ShippedAt time.Time
	CreatedAt time.Time
}

func (ShippingCostModel) TableName() string {
	return "shipping_costs"
}

type DefaultShippingCostRepository struct {
	DB *gorm.DB
}

// NewDefaultShippingCostRepository opens the secondary shipping
// database. The source is optional: callers treat a connect error as
// "no shipping data", never as a reason to abort.
func NewDefaultShippingCostRepository(dsn string) (*DefaultShippingCostRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open shipping db: %w", err)
	}
	db.AutoMigrate(&ShippingCostModel{})
	return &DefaultShippingCostRepository{DB: db}, nil
}

func NewShippingCostRepositoryWithDB(db *gorm.DB) *DefaultShippingCostRepository {
	return &DefaultShippingCostRepository{DB: db}
}

func (r *DefaultShippingCostRepository) CostsByOrderNames(orderNames []string) (map[string]float64, error) {
	costs := make(map[string]float64, len(orderNames))
	if len(orderNames) == 0 {
		return costs, nil
	}

	type row struct {
		OrderName string
		Total     float64
	}
	var rows []row
	if err := r.DB.Model(&ShippingCostModel{}).
		Select("order_name, SUM(cost) as total").
		Where("order_name IN (?)", orderNames).
		Group("order_name").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query shipping costs: %w", err)
	}

	for _, r := range rows {
		costs[r.OrderName] = r.Total
	}
	return costs, nil
}

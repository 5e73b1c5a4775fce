package models

import "time"

type FeeConfigurationModel struct {
	StoreID               string `gorm:"primaryKey"`
	PaymentGatewayRate    float64
	ProcessingFeePerOrder float64
	DefaultCogsRate       float64
	ChargebackRate        float64
	ReturnProcessingRate  float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type AdditionalCostModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	StoreID            string `gorm:"index:idx_additional_cost_store"`
	Name               string
	PercentagePerOrder float64
	PercentagePerItem  float64
	FlatPerOrder       float64
	FlatPerItem        float64
	IsActive           bool `gorm:"index:idx_additional_cost_active"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type SubscriptionFeeModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	StoreID   string `gorm:"index:idx_subscription_fee_store"`
	Name      string
	Interval  string
	Amount    float64
	IsActive  bool `gorm:"index:idx_subscription_fee_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

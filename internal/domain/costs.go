package domain

import "time"

// FeeConfiguration holds per-store rates and flat fees used only as
// fallbacks when actual data is absent.
type FeeConfiguration struct {
	StoreID               string
	PaymentGatewayRate    float64
	ProcessingFeePerOrder float64
	DefaultCogsRate       float64
	ChargebackRate        float64
	ReturnProcessingRate  float64
}

// AdditionalCost is a user-declared per-transaction cost. Inactive
// rows are excluded from every calculation but kept for audit.
type AdditionalCost struct {
	ID                 string
	StoreID            string
	Name               string
	PercentagePerOrder float64
	PercentagePerItem  float64
	FlatPerOrder       float64
	FlatPerItem        float64
	IsActive           bool
	CreatedAt          time.Time
}

type SubscriptionInterval string

const (
	IntervalMonthly SubscriptionInterval = "monthly"
	IntervalYearly  SubscriptionInterval = "yearly"
)

// SubscriptionFee is a user-declared recurring cost, prorated to a
// daily rate when applied to a reporting window.
type SubscriptionFee struct {
	ID        string
	StoreID   string
	Name      string
	Interval  SubscriptionInterval
	Amount    float64
	IsActive  bool
	CreatedAt time.Time
}

// DailyRate prorates the fee: monthly amounts annualize as x12 before
// dividing by 365.
func (f *SubscriptionFee) DailyRate() float64 {
	switch f.Interval {
	case IntervalMonthly:
		return f.Amount * 12 / 365
	case IntervalYearly:
		return f.Amount / 365
	default:
		return 0
	}
}

type FeeConfigRepository interface {
	GetFeeConfiguration(storeID string) (*FeeConfiguration, error)
	SaveFeeConfiguration(cfg *FeeConfiguration) error
	ListActiveAdditionalCosts(storeID string) ([]*AdditionalCost, error)
	SaveAdditionalCost(cost *AdditionalCost) error
	DeactivateAdditionalCost(storeID, costID string) error
	ListActiveSubscriptionFees(storeID string) ([]*SubscriptionFee, error)
	SaveSubscriptionFee(fee *SubscriptionFee) error
	DeactivateSubscriptionFee(storeID, feeID string) error
}

// ShippingCost is a record from the secondary shipping database,
// keyed by order name rather than order ID.
type ShippingCost struct {
	OrderName string
	Cost      float64
	Carrier   string
	ShippedAt time.Time
}

type ShippingCostRepository interface {
	// CostsByOrderNames returns actual shipping costs keyed by order
	// name for the names that have records.
	CostsByOrderNames(orderNames []string) (map[string]float64, error)
}

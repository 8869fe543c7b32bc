package hotel

import (
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/shared/valueobject"
)

// TaxStrategy determines which base the VAT is computed on
type TaxStrategy string

const (
	// TaxStrategyStandard applies VAT to the base price only
	TaxStrategyStandard TaxStrategy = "STANDARD"
	// TaxStrategyCompound applies VAT to base price plus service charge
	TaxStrategyCompound TaxStrategy = "COMPOUND"
)

// IsValid checks if the strategy is a known TaxStrategy
func (s TaxStrategy) IsValid() bool {
	switch s {
	case TaxStrategyStandard, TaxStrategyCompound:
		return true
	}
	return false
}

// String returns the string representation of TaxStrategy
func (s TaxStrategy) String() string {
	return string(s)
}

// TaxPolicy is the read-only pricing input derived from a hotel's settings.
// The pricing engine copies every rate it uses into the booking snapshot and
// never reads the live policy again for that booking.
type TaxPolicy struct {
	Strategy          TaxStrategy
	VATRate           decimal.Decimal
	ServiceChargeRate decimal.Decimal
	Currency          valueobject.Currency
}

// Hotel is the tenant root. Each hotel owns its venues, customers, bookings
// and staff; nothing crosses hotel boundaries. Hotels are deactivated, never
// deleted.
type Hotel struct {
	shared.BaseAggregateRoot
	Name                  string
	Currency              valueobject.Currency
	TaxStrategy           TaxStrategy
	VATRate               decimal.Decimal `gorm:"type:decimal(5,2)"`
	ServiceChargeRate     decimal.Decimal `gorm:"type:decimal(5,2)"`
	AllowCapacityOverride bool
	IsActive              bool `gorm:"not null;default:true"`
}

// NewHotel creates a new hotel with the given tax configuration
func NewHotel(name string, currency valueobject.Currency, strategy TaxStrategy, vatRate, serviceChargeRate decimal.Decimal) (*Hotel, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Hotel name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !strategy.IsValid() {
		return nil, shared.NewDomainError("INVALID_TAX_STRATEGY", "Tax strategy must be STANDARD or COMPOUND")
	}
	if err := validateRate(vatRate); err != nil {
		return nil, err
	}
	if err := validateRate(serviceChargeRate); err != nil {
		return nil, err
	}

	return &Hotel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Currency:          currency,
		TaxStrategy:       strategy,
		VATRate:           vatRate,
		ServiceChargeRate: serviceChargeRate,
		IsActive:          true,
	}, nil
}

// validateRate checks a percentage rate is within 0-100
func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_RATE", "Rate must be a percentage between 0 and 100")
	}
	return nil
}

// TaxPolicy returns the current tax configuration for pricing
func (h *Hotel) TaxPolicy() TaxPolicy {
	return TaxPolicy{
		Strategy:          h.TaxStrategy,
		VATRate:           h.VATRate,
		ServiceChargeRate: h.ServiceChargeRate,
		Currency:          h.Currency,
	}
}

// UpdateTaxPolicy changes the hotel's tax configuration. Existing booking
// snapshots are unaffected; only bookings created after this call see the
// new rates.
func (h *Hotel) UpdateTaxPolicy(strategy TaxStrategy, vatRate, serviceChargeRate decimal.Decimal) error {
	if !strategy.IsValid() {
		return shared.NewDomainError("INVALID_TAX_STRATEGY", "Tax strategy must be STANDARD or COMPOUND")
	}
	if err := validateRate(vatRate); err != nil {
		return err
	}
	if err := validateRate(serviceChargeRate); err != nil {
		return err
	}

	h.TaxStrategy = strategy
	h.VATRate = vatRate
	h.ServiceChargeRate = serviceChargeRate
	return nil
}

// SetCapacityOverride toggles whether staff may book past venue capacity
func (h *Hotel) SetCapacityOverride(allow bool) {
	h.AllowCapacityOverride = allow
}

// Rename changes the hotel display name
func (h *Hotel) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Hotel name cannot be empty")
	}
	h.Name = name
	return nil
}

// Deactivate marks the hotel inactive. Inactive hotels reject new bookings.
func (h *Hotel) Deactivate() {
	h.IsActive = false
}

// Activate marks the hotel active again
func (h *Hotel) Activate() {
	h.IsActive = true
}

package booking

import (
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/hotel"
	"github.com/venuecore/backend/internal/domain/shared/valueobject"
	"github.com/venuecore/backend/internal/domain/venue"
)

// PricingSnapshot holds the monetary figures frozen at booking-creation
// time. Every rate used in the computation is copied verbatim so the
// booking's invoice stays reproducible no matter how the hotel's live tax
// policy changes afterwards. The snapshot is written exactly once and never
// recomputed.
type PricingSnapshot struct {
	BasePrice                 decimal.Decimal      `gorm:"type:decimal(12,2)" json:"base_price"`
	ServiceCharge             decimal.Decimal      `gorm:"type:decimal(12,2)" json:"service_charge"`
	VAT                       decimal.Decimal      `gorm:"type:decimal(12,2)" json:"vat"`
	TotalAmount               decimal.Decimal      `gorm:"type:decimal(12,2)" json:"total_amount"`
	Currency                  valueobject.Currency `gorm:"size:3" json:"currency"`
	VATRateSnapshot           decimal.Decimal      `gorm:"type:decimal(5,2)" json:"vat_rate_snapshot"`
	ServiceChargeRateSnapshot decimal.Decimal      `gorm:"type:decimal(5,2)" json:"service_charge_rate_snapshot"`
	TaxStrategySnapshot       hotel.TaxStrategy    `gorm:"size:16" json:"tax_strategy_snapshot"`
}

// IsZero reports whether the snapshot has not been written yet
func (p PricingSnapshot) IsZero() bool {
	return p.Currency == ""
}

// ComputePricing computes the service charge, VAT and total for a booking
// from the venue's base price (or an explicit override) and the hotel's
// current tax policy.
//
// With the STANDARD strategy VAT applies to the base price alone; with
// COMPOUND it applies to base price plus service charge. Rates are
// percentages in the 0-100 range. All arithmetic goes through the Money
// value object, which carries the policy currency and keeps the figures
// in one denomination.
func ComputePricing(basePriceOverride *decimal.Decimal, v *venue.Venue, policy hotel.TaxPolicy) PricingSnapshot {
	currency := policy.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	base := valueobject.Zero(currency)
	if basePriceOverride != nil {
		base = valueobject.MustMoney(*basePriceOverride, currency)
	} else if v != nil {
		base = valueobject.MustMoney(v.BasePrice, currency)
	}

	serviceCharge := base.CalculatePercentage(policy.ServiceChargeRate)

	taxable := base
	if policy.Strategy == hotel.TaxStrategyCompound {
		taxable = base.MustAdd(serviceCharge)
	}
	vat := taxable.CalculatePercentage(policy.VATRate)
	total := base.MustAdd(serviceCharge).MustAdd(vat)

	return PricingSnapshot{
		BasePrice:                 base.Amount(),
		ServiceCharge:             serviceCharge.Amount(),
		VAT:                       vat.Amount(),
		TotalAmount:               total.Amount(),
		Currency:                  base.Currency(),
		VATRateSnapshot:           policy.VATRate,
		ServiceChargeRateSnapshot: policy.ServiceChargeRate,
		TaxStrategySnapshot:       policy.Strategy,
	}
}

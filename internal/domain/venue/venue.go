package venue

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/shared"
)

// Venue is a bookable function space owned by exactly one hotel. Capacity
// fields are per seating layout and nullable; a venue with no capacity
// configured accepts any guest count.
type Venue struct {
	shared.TenantAggregateRoot
	Name              string
	Description       string
	CapacityBanquet   *int
	CapacityTheater   *int
	CapacityReception *int
	CapacityUshape    *int
	BasePrice         decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsActive          bool            `gorm:"not null;default:true"`
}

// NewVenue creates a new venue for a hotel
func NewVenue(hotelID uuid.UUID, name string, basePrice decimal.Decimal) (*Venue, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOTEL", "Hotel ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Venue name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Venue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(hotelID),
		Name:                name,
		BasePrice:           basePrice,
		IsActive:            true,
	}, nil
}

// SetCapacities sets the per-layout capacity figures. Nil means the layout
// is not offered.
func (v *Venue) SetCapacities(banquet, theater, reception, ushape *int) error {
	for _, c := range []*int{banquet, theater, reception, ushape} {
		if c != nil && *c < 0 {
			return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
		}
	}
	v.CapacityBanquet = banquet
	v.CapacityTheater = theater
	v.CapacityReception = reception
	v.CapacityUshape = ushape
	return nil
}

// SetBasePrice updates the venue's base price. Bookings already created keep
// their snapshot price.
func (v *Venue) SetBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	v.BasePrice = price
	return nil
}

// Rename changes the venue display name
func (v *Venue) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Venue name cannot be empty")
	}
	v.Name = name
	return nil
}

// Deactivate marks the venue unavailable for new bookings
func (v *Venue) Deactivate() {
	v.IsActive = false
}

// Activate marks the venue available again
func (v *Venue) Activate() {
	v.IsActive = true
}

// MaxCapacity returns the largest configured layout capacity, treating
// missing layouts as 0.
func (v *Venue) MaxCapacity() int {
	max := 0
	for _, c := range []*int{v.CapacityBanquet, v.CapacityTheater, v.CapacityReception, v.CapacityUshape} {
		if c != nil && *c > max {
			max = *c
		}
	}
	return max
}

// CheckCapacity validates a requested guest count against the venue's
// maximum capacity. A venue with no capacity configured always passes:
// absence of data is not a constraint violation. When allowOverride is set
// the hotel has chosen to let staff book past the limit.
func (v *Venue) CheckCapacity(requestedGuests int, allowOverride bool) error {
	max := v.MaxCapacity()
	if max == 0 {
		return nil
	}
	if requestedGuests > max && !allowOverride {
		return shared.NewCapacityExceededError(requestedGuests, max)
	}
	return nil
}

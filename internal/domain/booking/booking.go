package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// BookingSource records how a booking entered the system
type BookingSource string

const (
	// SourceStaff marks bookings created by hotel staff
	SourceStaff BookingSource = "STAFF"
	// SourcePublic marks bookings requested through the public portal
	SourcePublic BookingSource = "PUBLIC"
)

// Booking is the central aggregate of the booking engine. It owns the
// schedule slot, the frozen pricing snapshot and the status lifecycle.
type Booking struct {
	shared.TenantAggregateRoot
	BookingNumber string `gorm:"size:32;not null;uniqueIndex:idx_bookings_tenant_number,composite:tenant_id"`
	EventName     string `gorm:"size:255;not null"`

	VenueID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedByID  uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedToID *uuid.UUID `gorm:"type:uuid"`

	StartTime     time.Time `gorm:"not null;index"`
	EndTime       time.Time `gorm:"not null"`
	EventDate     time.Time `gorm:"not null;index"`
	GuestCount    int       `gorm:"not null"`
	GuaranteedPax int

	Status BookingStatus `gorm:"size:16;not null;index"`
	// ConflictID links to a colliding booking and is set only while the
	// status is CONFLICT.
	ConflictID *uuid.UUID `gorm:"type:uuid"`

	Pricing PricingSnapshot `gorm:"embedded"`

	Source          BookingSource `gorm:"size:16;not null"`
	IsPublicBooking bool          `gorm:"not null;default:false"`
	SpecialRequests string        `gorm:"type:text"`
	DietaryRequests string        `gorm:"type:text"`
	Notes           string        `gorm:"type:text"`

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// NewBookingInput carries the required fields for constructing a booking
type NewBookingInput struct {
	HotelID       uuid.UUID
	VenueID       uuid.UUID
	CustomerID    uuid.UUID
	CreatedByID   uuid.UUID
	BookingNumber string
	EventName     string
	StartTime     time.Time
	EndTime       time.Time
	GuestCount    int
	GuaranteedPax int
	Source        BookingSource
}

// NewBooking creates a booking in the INQUIRY state. Conflict detection and
// pricing are applied by the lifecycle service before the first save.
func NewBooking(in NewBookingInput) (*Booking, error) {
	if in.HotelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOTEL", "Hotel ID cannot be empty")
	}
	if in.VenueID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENUE", "Venue ID cannot be empty")
	}
	if in.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if in.BookingNumber == "" {
		return nil, shared.NewDomainError("INVALID_BOOKING_NUMBER", "Booking number cannot be empty")
	}
	if in.EventName == "" {
		return nil, shared.NewDomainError("INVALID_EVENT_NAME", "Event name cannot be empty")
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, shared.NewDomainError("INVALID_TIME_RANGE", "End time must be after start time")
	}
	if in.GuestCount <= 0 {
		return nil, shared.NewDomainError("INVALID_GUEST_COUNT", "Guest count must be positive")
	}
	source := in.Source
	if source == "" {
		source = SourceStaff
	}

	b := &Booking{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(in.HotelID),
		BookingNumber:       in.BookingNumber,
		EventName:           in.EventName,
		VenueID:             in.VenueID,
		CustomerID:          in.CustomerID,
		CreatedByID:         in.CreatedByID,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		EventDate:           eventDateOf(in.StartTime),
		GuestCount:          in.GuestCount,
		GuaranteedPax:       in.GuaranteedPax,
		Status:              StatusInquiry,
		Source:              source,
		IsPublicBooking:     source == SourcePublic,
	}

	b.AddDomainEvent(NewBookingCreatedEvent(b))

	return b, nil
}

// eventDateOf derives the event date from the start time
func eventDateOf(start time.Time) time.Time {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}

// ApplyPricing writes the pricing snapshot. The snapshot is immutable: a
// second call is a programming error and is rejected.
func (b *Booking) ApplyPricing(snapshot PricingSnapshot) error {
	if !b.Pricing.IsZero() {
		return shared.NewDomainError("PRICING_ALREADY_SET", "Pricing snapshot is immutable once written")
	}
	b.Pricing = snapshot
	return nil
}

// MarkConflict forces the booking into CONFLICT and links the colliding
// booking. Used at creation and on reschedule when the conflict scan finds
// an occupied slot.
func (b *Booking) MarkConflict(conflictingID uuid.UUID) error {
	if b.Status.IsTerminal() {
		return shared.NewInvalidTransitionError(b.Status.String(), StatusConflict.String())
	}
	b.Status = StatusConflict
	b.ConflictID = &conflictingID
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBookingConflictDetectedEvent(b, conflictingID))

	return nil
}

// ResolveConflict resets a CONFLICT booking whose slot has become free. The
// prior status before entering CONFLICT is not tracked, so the booking
// conservatively returns to INQUIRY rather than guessing.
func (b *Booking) ResolveConflict() error {
	if b.Status != StatusConflict {
		return shared.NewDomainError("INVALID_STATE", "Only a CONFLICT booking can be resolved")
	}
	b.Status = StatusInquiry
	b.ConflictID = nil
	b.UpdatedAt = time.Now()
	return nil
}

// Reschedule changes the time range and optionally the guest count. The
// caller re-runs conflict detection against the new range; pricing is never
// recomputed here.
func (b *Booking) Reschedule(newStart, newEnd time.Time, newGuestCount *int) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a booking in a terminal state")
	}
	if !newEnd.After(newStart) {
		return shared.NewDomainError("INVALID_TIME_RANGE", "End time must be after start time")
	}
	if newGuestCount != nil {
		if *newGuestCount <= 0 {
			return shared.NewDomainError("INVALID_GUEST_COUNT", "Guest count must be positive")
		}
		b.GuestCount = *newGuestCount
	}

	b.StartTime = newStart
	b.EndTime = newEnd
	b.EventDate = eventDateOf(newStart)
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBookingRescheduledEvent(b))

	return nil
}

// ChangeStatus performs a lifecycle transition. Any transition outside the
// allowed set fails with INVALID_TRANSITION. Leaving CONFLICT clears the
// conflict linkage.
func (b *Booking) ChangeStatus(target BookingStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown booking status: "+target.String())
	}
	if !b.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(b.Status.String(), target.String())
	}

	from := b.Status
	now := time.Now()
	b.Status = target
	b.UpdatedAt = now

	if from == StatusConflict {
		b.ConflictID = nil
	}

	switch target {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}

	b.AddDomainEvent(NewBookingStatusChangedEvent(b, from))

	return nil
}

// Cancel transitions the booking to CANCELLED. Cancelling an already
// terminal booking is rejected rather than silently rewriting history.
func (b *Booking) Cancel() error {
	return b.ChangeStatus(StatusCancelled)
}

// CanDelete reports whether the booking may be hard-deleted. Deletion is
// irreversible and permitted only after cancellation.
func (b *Booking) CanDelete() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// OccupiesSlot reports whether this booking blocks its venue's schedule
func (b *Booking) OccupiesSlot() bool {
	return b.Status.OccupiesSlot()
}

// OverlapsWith reports whether this booking's time range overlaps another's
func (b *Booking) OverlapsWith(other *Booking) bool {
	return Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime)
}

package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBooking = "Booking"

// Event type constants
const (
	EventTypeBookingCreated          = "BookingCreated"
	EventTypeBookingConflictDetected = "BookingConflictDetected"
	EventTypeBookingRescheduled      = "BookingRescheduled"
	EventTypeBookingStatusChanged    = "BookingStatusChanged"
)

// BookingCreatedEvent is raised when a new booking enters the system
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingID     uuid.UUID     `json:"booking_id"`
	BookingNumber string        `json:"booking_number"`
	VenueID       uuid.UUID     `json:"venue_id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Source        BookingSource `json:"source"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		BookingNumber:   b.BookingNumber,
		VenueID:         b.VenueID,
		CustomerID:      b.CustomerID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Source:          b.Source,
	}
}

// EventType returns the event type name
func (e *BookingCreatedEvent) EventType() string {
	return EventTypeBookingCreated
}

// BookingConflictDetectedEvent is raised when a booking collides with an
// active booking on the same venue
type BookingConflictDetectedEvent struct {
	shared.BaseDomainEvent
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	VenueID       uuid.UUID `json:"venue_id"`
	ConflictID    uuid.UUID `json:"conflict_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// NewBookingConflictDetectedEvent creates a new BookingConflictDetectedEvent
func NewBookingConflictDetectedEvent(b *Booking, conflictID uuid.UUID) *BookingConflictDetectedEvent {
	return &BookingConflictDetectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConflictDetected, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		BookingNumber:   b.BookingNumber,
		VenueID:         b.VenueID,
		ConflictID:      conflictID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
	}
}

// EventType returns the event type name
func (e *BookingConflictDetectedEvent) EventType() string {
	return EventTypeBookingConflictDetected
}

// BookingRescheduledEvent is raised when a booking's time range or guest
// count changes
type BookingRescheduledEvent struct {
	shared.BaseDomainEvent
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	VenueID       uuid.UUID `json:"venue_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	GuestCount    int       `json:"guest_count"`
}

// NewBookingRescheduledEvent creates a new BookingRescheduledEvent
func NewBookingRescheduledEvent(b *Booking) *BookingRescheduledEvent {
	return &BookingRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingRescheduled, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		BookingNumber:   b.BookingNumber,
		VenueID:         b.VenueID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		GuestCount:      b.GuestCount,
	}
}

// EventType returns the event type name
func (e *BookingRescheduledEvent) EventType() string {
	return EventTypeBookingRescheduled
}

// BookingStatusChangedEvent is raised on every lifecycle transition
type BookingStatusChangedEvent struct {
	shared.BaseDomainEvent
	BookingID     uuid.UUID     `json:"booking_id"`
	BookingNumber string        `json:"booking_number"`
	FromStatus    BookingStatus `json:"from_status"`
	ToStatus      BookingStatus `json:"to_status"`
}

// NewBookingStatusChangedEvent creates a new BookingStatusChangedEvent
func NewBookingStatusChangedEvent(b *Booking, from BookingStatus) *BookingStatusChangedEvent {
	return &BookingStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingStatusChanged, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		BookingNumber:   b.BookingNumber,
		FromStatus:      from,
		ToStatus:        b.Status,
	}
}

// EventType returns the event type name
func (e *BookingStatusChangedEvent) EventType() string {
	return EventTypeBookingStatusChanged
}

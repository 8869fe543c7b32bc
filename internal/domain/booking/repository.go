package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/shared"
)

// BookingTx exposes the operations available inside a booking transaction.
// Everything performed through it commits or rolls back as one unit,
// including the audit entry for the mutation it records.
type BookingTx interface {
	// FindConflicts returns the active bookings on a venue whose half-open
	// time ranges overlap [start, end). excludeID removes the booking being
	// rescheduled from its own scan. The full list is returned for
	// diagnostics; callers use the first entry for conflict linkage.
	FindConflicts(venueID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Booking, error)

	// GenerateBookingNumber produces the next display number for a hotel,
	// re-checking uniqueness before returning.
	GenerateBookingNumber(hotelID uuid.UUID) (string, error)

	FindByIDForTenant(hotelID, id uuid.UUID) (*Booking, error)

	// Create inserts a new booking. Implementations recover from a
	// booking-number collision with a concurrent insert for the same hotel
	// by generating a fresh number and retrying once.
	Create(b *Booking) error

	Save(b *Booking) error
	Delete(hotelID, id uuid.UUID) error

	AppendAudit(entry *audit.Entry) error
}

// BookingRepository defines persistence operations for bookings. Mutations
// run through the transactional entry points so the conflict scan and the
// write are serialized per venue.
type BookingRepository interface {
	FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*Booking, error)
	FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]Booking, error)
	CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error)

	// InVenueTx runs fn inside a single transaction after taking a row lock
	// on the venue. Two concurrent create/reschedule calls for the same
	// venue serialize here, so both cannot observe "no conflict" and commit.
	InVenueTx(ctx context.Context, hotelID, venueID uuid.UUID, fn func(tx BookingTx) error) error

	// InTx runs fn inside a single transaction without a venue lock. Used
	// for mutations that do not touch the schedule (status change, cancel,
	// delete).
	InTx(ctx context.Context, fn func(tx BookingTx) error) error
}

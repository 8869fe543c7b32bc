package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/domain/customer"
	"github.com/venuecore/backend/internal/domain/hotel"
	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/venue"
)

// BookingService orchestrates the booking lifecycle: creation with the
// capacity guard, conflict scan and pricing snapshot, rescheduling,
// status changes, cancellation and deletion. Mutations that touch the
// schedule run inside a venue-serialized transaction so two concurrent
// writers cannot both observe a free slot.
type BookingService struct {
	bookingRepo    booking.BookingRepository
	venueRepo      venue.VenueRepository
	hotelRepo      hotel.HotelRepository
	customerRepo   customer.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo booking.BookingRepository,
	venueRepo venue.VenueRepository,
	hotelRepo hotel.HotelRepository,
	customerRepo customer.CustomerRepository,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		hotelRepo:    hotelRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the publisher that receives domain events after a
// successful commit
func (s *BookingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a booking. The venue's capacity is checked first, then the
// conflict scan, booking-number generation, pricing snapshot and save all
// run in one transaction holding the venue lock. A scheduling collision
// does not fail the call: the booking is created in CONFLICT and linked to
// the colliding booking.
func (s *BookingService) Create(ctx context.Context, hotelID uuid.UUID, actor audit.Context, perms Permissions, req CreateBookingRequest) (*BookingResponse, error) {
	if !perms.CanCreateBooking {
		return nil, shared.ErrForbidden
	}

	h, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !h.IsActive {
		return nil, shared.NewDomainError("HOTEL_INACTIVE", "Hotel account is deactivated")
	}

	v, err := s.venueRepo.FindByIDForTenant(ctx, hotelID, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !v.IsActive {
		return nil, shared.NewDomainError("VENUE_INACTIVE", "Venue is deactivated")
	}

	if err := v.CheckCapacity(req.GuestCount, h.AllowCapacityOverride); err != nil {
		return nil, err
	}

	// Ownership re-check: the customer must belong to the same hotel
	if _, err := s.customerRepo.FindByIDForTenant(ctx, hotelID, req.CustomerID); err != nil {
		return nil, err
	}

	var b *booking.Booking
	err = s.bookingRepo.InVenueTx(ctx, hotelID, req.VenueID, func(tx booking.BookingTx) error {
		number, err := tx.GenerateBookingNumber(hotelID)
		if err != nil {
			return err
		}

		b, err = booking.NewBooking(booking.NewBookingInput{
			HotelID:       hotelID,
			VenueID:       req.VenueID,
			CustomerID:    req.CustomerID,
			CreatedByID:   actor.ActorID,
			BookingNumber: number,
			EventName:     req.EventName,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			GuestCount:    req.GuestCount,
			GuaranteedPax: req.GuaranteedPax,
			Source:        booking.BookingSource(req.Source),
		})
		if err != nil {
			return err
		}
		b.AssignedToID = req.AssignedToID
		b.SpecialRequests = req.SpecialRequests
		b.DietaryRequests = req.DietaryRequests
		b.Notes = req.Notes

		conflicts, err := tx.FindConflicts(req.VenueID, req.StartTime, req.EndTime, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			if err := b.MarkConflict(conflicts[0].ID); err != nil {
				return err
			}
		}

		snapshot := booking.ComputePricing(req.BasePriceOverride, v, h.TaxPolicy())
		if err := b.ApplyPricing(snapshot); err != nil {
			return err
		}

		if err := tx.Create(b); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.create", b.ID,
			fmt.Sprintf("Created booking %s", b.BookingNumber))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)
	resp := ToBookingResponse(b)
	return &resp, nil
}

// Get retrieves a booking by ID
func (s *BookingService) Get(ctx context.Context, hotelID uuid.UUID, perms Permissions, bookingID uuid.UUID) (*BookingResponse, error) {
	if !perms.CanViewBookings {
		return nil, shared.ErrForbidden
	}
	b, err := s.bookingRepo.FindByIDForTenant(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// List retrieves bookings with filtering and pagination
func (s *BookingService) List(ctx context.Context, hotelID uuid.UUID, perms Permissions, filter BookingListFilter) (*shared.Paginated[BookingResponse], error) {
	if !perms.CanViewBookings {
		return nil, shared.ErrForbidden
	}

	domainFilter := toDomainFilter(filter)
	items, err := s.bookingRepo.FindAllForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.bookingRepo.CountForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, len(items))
	for i := range items {
		responses[i] = ToBookingResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Reschedule moves a booking to a new time range. The conflict scan runs
// again under the venue lock, excluding the booking itself; the pricing
// snapshot is deliberately left untouched. A booking in CONFLICT whose new
// slot is free is reset to INQUIRY. When the guest count changes the
// capacity guard runs again.
func (s *BookingService) Reschedule(ctx context.Context, hotelID, bookingID uuid.UUID, actor audit.Context, perms Permissions, req RescheduleBookingRequest) (*BookingResponse, error) {
	if !perms.CanEditBooking {
		return nil, shared.ErrForbidden
	}

	// Loaded outside the transaction only to learn which venue to lock;
	// the transactional copy is authoritative.
	current, err := s.bookingRepo.FindByIDForTenant(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	if req.GuestCount != nil && *req.GuestCount != current.GuestCount {
		h, err := s.hotelRepo.FindByID(ctx, hotelID)
		if err != nil {
			return nil, err
		}
		v, err := s.venueRepo.FindByIDForTenant(ctx, hotelID, current.VenueID)
		if err != nil {
			return nil, err
		}
		if err := v.CheckCapacity(*req.GuestCount, h.AllowCapacityOverride); err != nil {
			return nil, err
		}
	}

	var b *booking.Booking
	err = s.bookingRepo.InVenueTx(ctx, hotelID, current.VenueID, func(tx booking.BookingTx) error {
		b, err = tx.FindByIDForTenant(hotelID, bookingID)
		if err != nil {
			return err
		}

		if err := b.Reschedule(req.StartTime, req.EndTime, req.GuestCount); err != nil {
			return err
		}

		conflicts, err := tx.FindConflicts(b.VenueID, b.StartTime, b.EndTime, &b.ID)
		if err != nil {
			return err
		}
		switch {
		case len(conflicts) > 0 && b.Status != booking.StatusConflict:
			if err := b.MarkConflict(conflicts[0].ID); err != nil {
				return err
			}
		case len(conflicts) > 0 && b.Status == booking.StatusConflict:
			b.ConflictID = &conflicts[0].ID
		case b.Status == booking.StatusConflict:
			if err := b.ResolveConflict(); err != nil {
				return err
			}
		}

		if err := tx.Save(b); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.reschedule", b.ID,
			fmt.Sprintf("Rescheduled booking %s to %s - %s", b.BookingNumber,
				b.StartTime.Format("2006-01-02 15:04"), b.EndTime.Format("2006-01-02 15:04")))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)
	resp := ToBookingResponse(b)
	return &resp, nil
}

// ChangeStatus moves a booking along its lifecycle
func (s *BookingService) ChangeStatus(ctx context.Context, hotelID, bookingID uuid.UUID, actor audit.Context, perms Permissions, target booking.BookingStatus) (*BookingResponse, error) {
	if !perms.CanChangeStatus {
		return nil, shared.ErrForbidden
	}
	if target == booking.StatusCancelled && !perms.CanCancelBooking {
		return nil, shared.ErrForbidden
	}

	var b *booking.Booking
	err := s.bookingRepo.InTx(ctx, func(tx booking.BookingTx) error {
		var err error
		b, err = tx.FindByIDForTenant(hotelID, bookingID)
		if err != nil {
			return err
		}
		from := b.Status

		if err := b.ChangeStatus(target); err != nil {
			return err
		}
		if err := tx.Save(b); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.change_status", b.ID,
			fmt.Sprintf("Changed booking %s status from %s to %s", b.BookingNumber, from, target))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)
	resp := ToBookingResponse(b)
	return &resp, nil
}

// Cancel cancels a booking, releasing its slot. It is gated on the cancel
// capability alone, not the general status-change one.
func (s *BookingService) Cancel(ctx context.Context, hotelID, bookingID uuid.UUID, actor audit.Context, perms Permissions) (*BookingResponse, error) {
	if !perms.CanCancelBooking {
		return nil, shared.ErrForbidden
	}

	var b *booking.Booking
	err := s.bookingRepo.InTx(ctx, func(tx booking.BookingTx) error {
		var err error
		b, err = tx.FindByIDForTenant(hotelID, bookingID)
		if err != nil {
			return err
		}
		from := b.Status

		if err := b.ChangeStatus(booking.StatusCancelled); err != nil {
			return err
		}
		if err := tx.Save(b); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.cancel", b.ID,
			fmt.Sprintf("Cancelled booking %s (was %s)", b.BookingNumber, from))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, b)
	resp := ToBookingResponse(b)
	return &resp, nil
}

// Update edits descriptive booking fields. Schedule and pricing are out of
// scope here; rescheduling has its own entry point and pricing never moves.
func (s *BookingService) Update(ctx context.Context, hotelID, bookingID uuid.UUID, actor audit.Context, perms Permissions, req UpdateBookingRequest) (*BookingResponse, error) {
	if !perms.CanEditBooking {
		return nil, shared.ErrForbidden
	}

	var b *booking.Booking
	err := s.bookingRepo.InTx(ctx, func(tx booking.BookingTx) error {
		var err error
		b, err = tx.FindByIDForTenant(hotelID, bookingID)
		if err != nil {
			return err
		}
		if b.IsTerminal() {
			return shared.NewDomainError("BOOKING_TERMINAL", "Completed or cancelled bookings cannot be edited")
		}

		if req.EventName != nil {
			b.EventName = *req.EventName
		}
		if req.GuaranteedPax != nil {
			b.GuaranteedPax = *req.GuaranteedPax
		}
		if req.SpecialRequests != nil {
			b.SpecialRequests = *req.SpecialRequests
		}
		if req.DietaryRequests != nil {
			b.DietaryRequests = *req.DietaryRequests
		}
		if req.Notes != nil {
			b.Notes = *req.Notes
		}
		if req.AssignedToID != nil {
			b.AssignedToID = req.AssignedToID
		}

		if err := tx.Save(b); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.update", b.ID,
			fmt.Sprintf("Updated booking %s", b.BookingNumber))
	})
	if err != nil {
		return nil, err
	}

	resp := ToBookingResponse(b)
	return &resp, nil
}

// Delete removes a booking permanently. Only cancelled bookings may be
// deleted; everything else must be cancelled first so history is not lost
// by accident.
func (s *BookingService) Delete(ctx context.Context, hotelID, bookingID uuid.UUID, actor audit.Context, perms Permissions) error {
	if !perms.CanDeleteBooking {
		return shared.ErrForbidden
	}

	return s.bookingRepo.InTx(ctx, func(tx booking.BookingTx) error {
		b, err := tx.FindByIDForTenant(hotelID, bookingID)
		if err != nil {
			return err
		}
		if !b.CanDelete() {
			return shared.NewDomainError("PRECONDITION_FAILED",
				fmt.Sprintf("Only cancelled bookings can be deleted; booking %s is %s", b.BookingNumber, b.Status))
		}

		if err := tx.Delete(hotelID, bookingID); err != nil {
			return err
		}

		return s.appendAudit(tx, actor, hotelID, "booking.delete", b.ID,
			fmt.Sprintf("Deleted booking %s", b.BookingNumber))
	})
}

// appendAudit records the mutation when the actor is a platform
// administrator impersonating the tenant. The entry rides the mutation's
// transaction, so it cannot exist without the change nor the change
// without it.
func (s *BookingService) appendAudit(tx booking.BookingTx, actor audit.Context, hotelID uuid.UUID, action string, resourceID uuid.UUID, details string) error {
	if !actor.ShouldAudit() {
		return nil
	}
	entry, err := audit.NewEntry(hotelID, actor.ActorID, action, "booking", resourceID, details)
	if err != nil {
		return err
	}
	return tx.AppendAudit(entry)
}

func (s *BookingService) publishEvents(ctx context.Context, b *booking.Booking) {
	if s.eventPublisher == nil || b == nil {
		return
	}
	for _, event := range b.GetDomainEvents() {
		// Event delivery is best effort; the booking is already committed
		_ = s.eventPublisher.Publish(ctx, event)
	}
	b.ClearDomainEvents()
}

func toDomainFilter(filter BookingListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.VenueID != nil {
		domainFilter.Filters["venue_id"] = *filter.VenueID
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

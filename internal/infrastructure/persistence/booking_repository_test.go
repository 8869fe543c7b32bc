package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/venue"
)

func setupBookingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&venue.Venue{}, &booking.Booking{}, &audit.Entry{})
	require.NoError(t, err)

	return db
}

func seedVenue(t *testing.T, db *gorm.DB, hotelID uuid.UUID, name string) *venue.Venue {
	v, err := venue.NewVenue(hotelID, name, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, db.Create(v).Error)
	return v
}

func seedBooking(t *testing.T, db *gorm.DB, hotelID, venueID uuid.UUID, number string, status booking.BookingStatus, start, end time.Time) *booking.Booking {
	b, err := booking.NewBooking(booking.NewBookingInput{
		HotelID:       hotelID,
		VenueID:       venueID,
		CustomerID:    uuid.New(),
		CreatedByID:   uuid.New(),
		BookingNumber: number,
		EventName:     "Event " + number,
		StartTime:     start,
		EndTime:       end,
		GuestCount:    50,
	})
	require.NoError(t, err)
	b.Status = status
	require.NoError(t, db.Create(b).Error)
	return b
}

func slot(t *testing.T, hour, durationHours int) (time.Time, time.Time) {
	t.Helper()
	start := time.Date(2026, 10, 12, hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationHours) * time.Hour)
}

func TestGormBookingRepository_InVenueTx(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "Grand Ballroom")

	t.Run("runs callback when venue exists", func(t *testing.T) {
		called := false
		err := repo.InVenueTx(ctx, hotelID, v.ID, func(tx booking.BookingTx) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("rejects unknown venue", func(t *testing.T) {
		err := repo.InVenueTx(ctx, hotelID, uuid.New(), func(tx booking.BookingTx) error {
			t.Fatal("callback should not run")
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects venue belonging to another hotel", func(t *testing.T) {
		err := repo.InVenueTx(ctx, uuid.New(), v.ID, func(tx booking.BookingTx) error {
			t.Fatal("callback should not run")
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rolls back writes when callback fails", func(t *testing.T) {
		start, end := slot(t, 9, 3)
		boom := errors.New("boom")
		err := repo.InVenueTx(ctx, hotelID, v.ID, func(tx booking.BookingTx) error {
			number, err := tx.GenerateBookingNumber(hotelID)
			require.NoError(t, err)

			b, err := booking.NewBooking(booking.NewBookingInput{
				HotelID:       hotelID,
				VenueID:       v.ID,
				CustomerID:    uuid.New(),
				CreatedByID:   uuid.New(),
				BookingNumber: number,
				EventName:     "Doomed Gala",
				StartTime:     start,
				EndTime:       end,
				GuestCount:    40,
			})
			require.NoError(t, err)
			require.NoError(t, tx.Save(b))

			entry, err := audit.NewEntry(hotelID, uuid.New(), "booking.create", "booking", b.ID, "")
			require.NoError(t, err)
			require.NoError(t, tx.AppendAudit(entry))

			return boom
		})
		assert.ErrorIs(t, err, boom)

		var bookingCount, auditCount int64
		require.NoError(t, db.Model(&booking.Booking{}).Count(&bookingCount).Error)
		require.NoError(t, db.Model(&audit.Entry{}).Count(&auditCount).Error)
		assert.Zero(t, bookingCount)
		assert.Zero(t, auditCount)
	})

	t.Run("commits booking and audit entry together", func(t *testing.T) {
		start, end := slot(t, 13, 2)
		err := repo.InVenueTx(ctx, hotelID, v.ID, func(tx booking.BookingTx) error {
			number, err := tx.GenerateBookingNumber(hotelID)
			if err != nil {
				return err
			}

			b, err := booking.NewBooking(booking.NewBookingInput{
				HotelID:       hotelID,
				VenueID:       v.ID,
				CustomerID:    uuid.New(),
				CreatedByID:   uuid.New(),
				BookingNumber: number,
				EventName:     "Charity Dinner",
				StartTime:     start,
				EndTime:       end,
				GuestCount:    80,
			})
			if err != nil {
				return err
			}
			if err := tx.Save(b); err != nil {
				return err
			}

			entry, err := audit.NewEntry(hotelID, uuid.New(), "booking.create", "booking", b.ID, "")
			if err != nil {
				return err
			}
			return tx.AppendAudit(entry)
		})
		require.NoError(t, err)

		var bookingCount, auditCount int64
		require.NoError(t, db.Model(&booking.Booking{}).Count(&bookingCount).Error)
		require.NoError(t, db.Model(&audit.Entry{}).Count(&auditCount).Error)
		assert.Equal(t, int64(1), bookingCount)
		assert.Equal(t, int64(1), auditCount)
	})
}

func TestGormBookingTx_FindConflicts(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "Crystal Hall")
	other := seedVenue(t, db, hotelID, "Garden Pavilion")

	// Occupies 10:00-14:00
	start, end := slot(t, 10, 4)
	held := seedBooking(t, db, hotelID, v.ID, "BK-2026-00001", booking.StatusConfirmed, start, end)

	findConflicts := func(venueID uuid.UUID, start, end time.Time, exclude *uuid.UUID) []booking.Booking {
		var conflicts []booking.Booking
		err := repo.InVenueTx(ctx, hotelID, venueID, func(tx booking.BookingTx) error {
			var err error
			conflicts, err = tx.FindConflicts(venueID, start, end, exclude)
			return err
		})
		require.NoError(t, err)
		return conflicts
	}

	t.Run("detects overlapping range", func(t *testing.T) {
		s, e := slot(t, 12, 4)
		conflicts := findConflicts(v.ID, s, e, nil)
		require.Len(t, conflicts, 1)
		assert.Equal(t, held.ID, conflicts[0].ID)
	})

	t.Run("detects fully contained range", func(t *testing.T) {
		s, e := slot(t, 11, 1)
		conflicts := findConflicts(v.ID, s, e, nil)
		assert.Len(t, conflicts, 1)
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		s, e := slot(t, 14, 2)
		assert.Empty(t, findConflicts(v.ID, s, e, nil))

		s2, e2 := slot(t, 8, 2)
		assert.Empty(t, findConflicts(v.ID, s2, e2, nil))
	})

	t.Run("other venue is not a conflict", func(t *testing.T) {
		s, e := slot(t, 10, 4)
		assert.Empty(t, findConflicts(other.ID, s, e, nil))
	})

	t.Run("inquiries and cancelled bookings do not hold the slot", func(t *testing.T) {
		s, e := slot(t, 18, 2)
		seedBooking(t, db, hotelID, v.ID, "BK-2026-00002", booking.StatusInquiry, s, e)
		seedBooking(t, db, hotelID, v.ID, "BK-2026-00003", booking.StatusCancelled, s, e)

		assert.Empty(t, findConflicts(v.ID, s, e, nil))
	})

	t.Run("excludes the booking being rescheduled", func(t *testing.T) {
		s, e := slot(t, 10, 4)
		assert.Empty(t, findConflicts(v.ID, s, e, &held.ID))
	})

	t.Run("orders conflicts by start time", func(t *testing.T) {
		s, e := slot(t, 8, 2)
		early := seedBooking(t, db, hotelID, v.ID, "BK-2026-00004", booking.StatusTentative, s, e)

		qs, qe := slot(t, 7, 8)
		conflicts := findConflicts(v.ID, qs, qe, nil)
		require.Len(t, conflicts, 2)
		assert.Equal(t, early.ID, conflicts[0].ID)
		assert.Equal(t, held.ID, conflicts[1].ID)
	})
}

func TestGormBookingTx_GenerateBookingNumber(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	otherHotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "Main Hall")
	otherVenue := seedVenue(t, db, otherHotelID, "Main Hall")

	year := time.Now().Year()
	generate := func(hotelID, venueID uuid.UUID) string {
		var number string
		err := repo.InVenueTx(ctx, hotelID, venueID, func(tx booking.BookingTx) error {
			var err error
			number, err = tx.GenerateBookingNumber(hotelID)
			return err
		})
		require.NoError(t, err)
		return number
	}

	t.Run("starts at one and increments", func(t *testing.T) {
		first := generate(hotelID, v.ID)
		assert.Equal(t, fmt.Sprintf("BK-%d-00001", year), first)

		s, e := slot(t, 9, 2)
		seedBooking(t, db, hotelID, v.ID, first, booking.StatusInquiry, s, e)

		assert.Equal(t, fmt.Sprintf("BK-%d-00002", year), generate(hotelID, v.ID))
	})

	t.Run("sequences are scoped per hotel", func(t *testing.T) {
		assert.Equal(t, fmt.Sprintf("BK-%d-00001", year), generate(otherHotelID, otherVenue.ID))
	})

	t.Run("skips over an occupied number", func(t *testing.T) {
		// A malformed historical number sorts above the numeric ones and
		// breaks the parse, so generation falls back to the re-check loop.
		s, e := slot(t, 12, 2)
		seedBooking(t, db, hotelID, v.ID, fmt.Sprintf("BK-%d-legacy", year), booking.StatusInquiry, s.Add(48*time.Hour), e.Add(48*time.Hour))

		number := generate(hotelID, v.ID)
		assert.Equal(t, fmt.Sprintf("BK-%d-00002", year), number)
	})
}

func TestGormBookingTx_Create(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "Atrium")
	year := time.Now().Year()

	newBookingWithNumber := func(number string, hour int) *booking.Booking {
		s, e := slot(t, hour, 2)
		b, err := booking.NewBooking(booking.NewBookingInput{
			HotelID:       hotelID,
			VenueID:       v.ID,
			CustomerID:    uuid.New(),
			CreatedByID:   uuid.New(),
			BookingNumber: number,
			EventName:     "Event " + number,
			StartTime:     s,
			EndTime:       e,
			GuestCount:    30,
		})
		require.NoError(t, err)
		return b
	}

	t.Run("inserts with the given number", func(t *testing.T) {
		b := newBookingWithNumber(fmt.Sprintf("BK-%d-00001", year), 9)
		err := repo.InVenueTx(ctx, hotelID, v.ID, func(tx booking.BookingTx) error {
			return tx.Create(b)
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("BK-%d-00001", year), b.BookingNumber)
	})

	t.Run("regenerates the number on a collision", func(t *testing.T) {
		// Stages the race where another transaction committed the same
		// number after ours was generated but before the insert.
		b := newBookingWithNumber(fmt.Sprintf("BK-%d-00001", year), 13)
		err := repo.InVenueTx(ctx, hotelID, v.ID, func(tx booking.BookingTx) error {
			return tx.Create(b)
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("BK-%d-00002", year), b.BookingNumber)

		var count int64
		require.NoError(t, db.Model(&booking.Booking{}).Where("tenant_id = ?", hotelID).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("the same number under another hotel is not a collision", func(t *testing.T) {
		otherHotelID := uuid.New()
		otherVenue := seedVenue(t, db, otherHotelID, "Atrium")
		s, e := slot(t, 9, 2)
		b, err := booking.NewBooking(booking.NewBookingInput{
			HotelID:       otherHotelID,
			VenueID:       otherVenue.ID,
			CustomerID:    uuid.New(),
			CreatedByID:   uuid.New(),
			BookingNumber: fmt.Sprintf("BK-%d-00001", year),
			EventName:     "Parallel Event",
			StartTime:     s,
			EndTime:       e,
			GuestCount:    30,
		})
		require.NoError(t, err)

		err = repo.InVenueTx(ctx, otherHotelID, otherVenue.ID, func(tx booking.BookingTx) error {
			return tx.Create(b)
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("BK-%d-00001", year), b.BookingNumber)
	})
}

func TestGormBookingRepository_TenantIsolation(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	otherHotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "East Wing")

	s, e := slot(t, 10, 2)
	b := seedBooking(t, db, hotelID, v.ID, "BK-2026-00001", booking.StatusConfirmed, s, e)

	t.Run("find by id requires matching hotel", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, hotelID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.BookingNumber, found.BookingNumber)

		_, err = repo.FindByIDForTenant(ctx, otherHotelID, b.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list is scoped to the hotel", func(t *testing.T) {
		bookings, err := repo.FindAllForTenant(ctx, otherHotelID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, bookings)

		count, err := repo.CountForTenant(ctx, otherHotelID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete requires matching hotel", func(t *testing.T) {
		err := repo.InTx(ctx, func(tx booking.BookingTx) error {
			return tx.Delete(otherHotelID, b.ID)
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		err = repo.InTx(ctx, func(tx booking.BookingTx) error {
			return tx.Delete(hotelID, b.ID)
		})
		require.NoError(t, err)

		_, err = repo.FindByIDForTenant(ctx, hotelID, b.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormBookingRepository_FindAllForTenant(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()
	hotelID := uuid.New()
	v := seedVenue(t, db, hotelID, "North Hall")
	other := seedVenue(t, db, hotelID, "South Hall")

	s1, e1 := slot(t, 9, 2)
	confirmed := seedBooking(t, db, hotelID, v.ID, "BK-2026-00001", booking.StatusConfirmed, s1, e1)

	s2 := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	tentative := seedBooking(t, db, hotelID, v.ID, "BK-2026-00002", booking.StatusTentative, s2, s2.Add(2*time.Hour))

	s3 := time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC)
	elsewhere := seedBooking(t, db, hotelID, other.ID, "BK-2026-00003", booking.StatusInquiry, s3, s3.Add(2*time.Hour))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = booking.StatusConfirmed.String()

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, confirmed.ID, bookings[0].ID)
	})

	t.Run("filters by status set", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["statuses"] = []string{
			booking.StatusConfirmed.String(),
			booking.StatusTentative.String(),
		}

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		assert.Len(t, bookings, 2)
	})

	t.Run("filters by venue", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["venue_id"] = other.ID

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, elsewhere.ID, bookings[0].ID)
	})

	t.Run("filters by event date range", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["start_date"] = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
		filter.Filters["end_date"] = time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, tentative.ID, bookings[0].ID)
	})

	t.Run("searches number and event name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "00002"

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, tentative.ID, bookings[0].ID)

		filter.Search = "Event BK-2026-00003"
		bookings, err = repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, elsewhere.ID, bookings[0].ID)
	})

	t.Run("count honors filters", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["venue_id"] = v.ID

		count, err := repo.CountForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("orders by whitelisted column", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "start_time"
		filter.OrderDir = "asc"

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 3)
		assert.Equal(t, confirmed.ID, bookings[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "start_time"
		filter.OrderDir = "asc"
		filter.PageSize = 2
		filter.Page = 2

		bookings, err := repo.FindAllForTenant(ctx, hotelID, filter)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, elsewhere.ID, bookings[0].ID)
	})
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/venue"
)

// GormBookingRepository implements BookingRepository using GORM. Schedule
// mutations go through InVenueTx, which takes a row lock on the venue so
// the conflict scan and the write commit as one serialized unit per venue.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByIDForTenant finds a booking by ID within a hotel
func (r *GormBookingRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*booking.Booking, error) {
	return findBookingForTenant(r.db.WithContext(ctx), hotelID, id)
}

// FindAllForTenant finds all bookings for a hotel with filtering
func (r *GormBookingRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	var bookings []booking.Booking
	query := applyFilter(r.bookingQuery(ctx, hotelID, filter), filter, BookingSortFields, searchBookings)

	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountForTenant counts bookings for a hotel matching the filter
func (r *GormBookingRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.bookingQuery(ctx, hotelID, filter)
	if filter.Search != "" {
		query = searchBookings(query, filter.Search)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// InVenueTx runs fn inside a transaction holding a row lock on the venue.
// Concurrent schedule writes for the same venue queue behind the lock, so
// two of them cannot both scan, miss each other and commit.
func (r *GormBookingRepository) InVenueTx(ctx context.Context, hotelID, venueID uuid.UUID, fn func(tx booking.BookingTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockQuery := tx.Model(&venue.Venue{})
		if tx.Dialector.Name() == "postgres" {
			lockQuery = lockQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var v venue.Venue
		if err := lockQuery.
			Where("tenant_id = ? AND id = ?", hotelID, venueID).
			First(&v).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		return fn(&gormBookingTx{tx: tx})
	})
}

// InTx runs fn inside a plain transaction, for mutations that do not touch
// the schedule
func (r *GormBookingRepository) InTx(ctx context.Context, fn func(tx booking.BookingTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingTx{tx: tx})
	})
}

func (r *GormBookingRepository) bookingQuery(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&booking.Booking{}).Where("tenant_id = ?", hotelID)

	for key, value := range filter.Filters {
		switch key {
		case "venue_id":
			query = query.Where("venue_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("event_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("event_date <= ?", t)
			}
		}
	}
	return query
}

func searchBookings(query *gorm.DB, search string) *gorm.DB {
	pattern := "%" + search + "%"
	return query.Where("booking_number LIKE ? OR event_name LIKE ?", pattern, pattern)
}

// gormBookingTx adapts a GORM transaction to the BookingTx interface
type gormBookingTx struct {
	tx *gorm.DB
}

// FindConflicts returns active bookings on the venue whose half-open time
// ranges overlap [start, end). Two ranges overlap exactly when each starts
// before the other ends, so bookings that merely touch at a boundary are
// not returned.
func (t *gormBookingTx) FindConflicts(venueID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]booking.Booking, error) {
	statuses := make([]string, 0, len(booking.ActiveStatuses()))
	for _, s := range booking.ActiveStatuses() {
		statuses = append(statuses, s.String())
	}

	query := t.tx.
		Where("venue_id = ?", venueID).
		Where("status IN ?", statuses).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var conflicts []booking.Booking
	if err := query.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// GenerateBookingNumber generates a unique booking number for a hotel.
// Format: BK-YYYY-NNNNN (e.g., BK-2026-00001)
func (t *gormBookingTx) GenerateBookingNumber(hotelID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("BK-%d-", year)

	var last booking.Booking
	err := t.tx.Model(&booking.Booking{}).
		Where("tenant_id = ? AND booking_number LIKE ?", hotelID, prefix+"%").
		Order("booking_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.BookingNumber != "" {
		parts := strings.Split(last.BookingNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	// Re-check uniqueness in case of malformed historical numbers
	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s%05d", prefix, nextNum)
		var count int64
		if err := t.tx.Model(&booking.Booking{}).
			Where("tenant_id = ? AND booking_number = ?", hotelID, candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		nextNum++
	}

	return "", fmt.Errorf("unable to generate unique booking number for hotel %s", hotelID)
}

// FindByIDForTenant finds a booking by ID within a hotel
func (t *gormBookingTx) FindByIDForTenant(hotelID, id uuid.UUID) (*booking.Booking, error) {
	return findBookingForTenant(t.tx, hotelID, id)
}

// Create inserts a new booking. The venue lock serializes writers per
// venue, not per hotel, so two concurrent creates on different venues can
// generate the same booking number; the unique index rejects one of them.
// The first attempt runs in a savepoint so the collision can be retried
// with a fresh number without aborting the surrounding transaction.
func (t *gormBookingTx) Create(b *booking.Booking) error {
	err := t.tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(b).Error
	})
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	// The competing insert has committed by the time the violation
	// surfaces, so a regenerated number will not collide with it.
	number, err := t.GenerateBookingNumber(b.TenantID)
	if err != nil {
		return err
	}
	b.BookingNumber = number
	return t.tx.Create(b).Error
}

// Save updates an existing booking
func (t *gormBookingTx) Save(b *booking.Booking) error {
	return t.tx.Save(b).Error
}

// Delete removes a booking within a hotel
func (t *gormBookingTx) Delete(hotelID, id uuid.UUID) error {
	result := t.tx.
		Where("tenant_id = ? AND id = ?", hotelID, id).
		Delete(&booking.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AppendAudit writes an audit entry inside the transaction
func (t *gormBookingTx) AppendAudit(entry *audit.Entry) error {
	return t.tx.Create(entry).Error
}

func findBookingForTenant(db *gorm.DB, hotelID, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	if err := db.
		Where("tenant_id = ? AND id = ?", hotelID, id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Ensure the GORM types implement the repository contracts
var (
	_ booking.BookingRepository = (*GormBookingRepository)(nil)
	_ booking.BookingTx         = (*gormBookingTx)(nil)
)

package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/domain/customer"
	"github.com/venuecore/backend/internal/domain/hotel"
	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/shared/valueobject"
	"github.com/venuecore/backend/internal/domain/venue"
)

// fakeBookingStore is an in-memory BookingRepository. It doubles as the
// transaction handle, which keeps the callback-based contract observable:
// everything the service does through the tx lands in the same store.
type fakeBookingStore struct {
	bookings map[uuid.UUID]*booking.Booking
	audits   []*audit.Entry
	seq      int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (f *fakeBookingStore) FindConflicts(venueID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]booking.Booking, error) {
	var conflicts []booking.Booking
	for _, b := range f.bookings {
		if b.VenueID != venueID || !b.OccupiesSlot() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if booking.Overlaps(start, end, b.StartTime, b.EndTime) {
			conflicts = append(conflicts, *b)
		}
	}
	return conflicts, nil
}

func (f *fakeBookingStore) GenerateBookingNumber(hotelID uuid.UUID) (string, error) {
	f.seq++
	return fmt.Sprintf("BK-%d-%05d", time.Now().Year(), f.seq), nil
}

func (f *fakeBookingStore) findForTenant(hotelID, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.TenantID != hotelID {
		return nil, shared.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) FindByIDForTenant(hotelID, id uuid.UUID) (*booking.Booking, error) {
	return f.findForTenant(hotelID, id)
}

func (f *fakeBookingStore) Create(b *booking.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingStore) Save(b *booking.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingStore) Delete(hotelID, id uuid.UUID) error {
	if _, err := f.findForTenant(hotelID, id); err != nil {
		return err
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) AppendAudit(entry *audit.Entry) error {
	f.audits = append(f.audits, entry)
	return nil
}

type fakeBookingRepository struct {
	store *fakeBookingStore
}

func (r *fakeBookingRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*booking.Booking, error) {
	return r.store.findForTenant(hotelID, id)
}

func (r *fakeBookingRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range r.store.bookings {
		if b.TenantID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, hotelID, filter)
	return int64(len(items)), nil
}

func (r *fakeBookingRepository) InVenueTx(ctx context.Context, hotelID, venueID uuid.UUID, fn func(tx booking.BookingTx) error) error {
	return fn(r.store)
}

func (r *fakeBookingRepository) InTx(ctx context.Context, fn func(tx booking.BookingTx) error) error {
	return fn(r.store)
}

// MockVenueRepository is a mock implementation of VenueRepository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*venue.Venue, error) {
	args := m.Called(ctx, hotelID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]venue.Venue, error) {
	args := m.Called(ctx, hotelID, filter)
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, hotelID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVenueRepository) Save(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueRepository) DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error {
	args := m.Called(ctx, hotelID, id)
	return args.Error(0)
}

// MockHotelRepository is a mock implementation of HotelRepository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotel.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hotel.Hotel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Save(ctx context.Context, h *hotel.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, hotelID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, hotelID, filter)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, hotelID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error {
	args := m.Called(ctx, hotelID, id)
	return args.Error(0)
}

type serviceFixture struct {
	service  *BookingService
	store    *fakeBookingStore
	hotelID  uuid.UUID
	venueID  uuid.UUID
	hotel    *hotel.Hotel
	venue    *venue.Venue
	customer *customer.Customer
	actor    audit.Context
	perms    Permissions
}

func newServiceFixture(t *testing.T) *serviceFixture {
	h, err := hotel.NewHotel("Grand Meridian", valueobject.USD, hotel.TaxStrategyStandard,
		decimal.NewFromInt(15), decimal.NewFromInt(10))
	require.NoError(t, err)

	v, err := venue.NewVenue(h.ID, "Crystal Ballroom", decimal.NewFromInt(1000))
	require.NoError(t, err)
	banquet := 200
	require.NoError(t, v.SetCapacities(&banquet, nil, nil, nil))

	c, err := customer.NewCustomer(h.ID, "Acme Events", "events@acme.test", "+100200300")
	require.NoError(t, err)

	venueRepo := new(MockVenueRepository)
	venueRepo.On("FindByIDForTenant", mock.Anything, h.ID, v.ID).Return(v, nil)
	hotelRepo := new(MockHotelRepository)
	hotelRepo.On("FindByID", mock.Anything, h.ID).Return(h, nil)
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByIDForTenant", mock.Anything, h.ID, c.ID).Return(c, nil)

	store := newFakeBookingStore()
	service := NewBookingService(&fakeBookingRepository{store: store}, venueRepo, hotelRepo, customerRepo)

	return &serviceFixture{
		service:  service,
		store:    store,
		hotelID:  h.ID,
		venueID:  v.ID,
		hotel:    h,
		venue:    v,
		customer: c,
		actor:    audit.Context{ActorID: uuid.New()},
		perms:    PermissionsForRole(RoleManager),
	}
}

func (f *serviceFixture) createRequest(start, end time.Time, guests int) CreateBookingRequest {
	return CreateBookingRequest{
		VenueID:    f.venueID,
		CustomerID: f.customer.ID,
		EventName:  "Annual Gala",
		StartTime:  start,
		EndTime:    end,
		GuestCount: guests,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates inquiry with pricing snapshot", func(t *testing.T) {
		f := newServiceFixture(t)
		resp, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		assert.Equal(t, "INQUIRY", resp.Status)
		assert.Regexp(t, `^BK-\d{4}-\d{5}$`, resp.BookingNumber)
		assert.True(t, resp.Pricing.BasePrice.Equal(decimal.NewFromInt(1000)))
		assert.True(t, resp.Pricing.ServiceCharge.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.Pricing.VAT.Equal(decimal.NewFromInt(150)))
		assert.True(t, resp.Pricing.TotalAmount.Equal(decimal.NewFromInt(1250)))
		assert.Equal(t, "USD", resp.Pricing.Currency)
		assert.Len(t, f.store.bookings, 1)
	})

	t.Run("overlapping slot yields conflict not failure", func(t *testing.T) {
		f := newServiceFixture(t)
		first, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		second, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(13, 0), at(16, 0), 80))
		require.NoError(t, err)

		assert.Equal(t, "CONFLICT", second.Status)
		require.NotNil(t, second.ConflictID)
		assert.Equal(t, first.ID, *second.ConflictID)
		// The snapshot is still frozen for conflicted bookings
		assert.True(t, second.Pricing.TotalAmount.Equal(decimal.NewFromInt(1250)))
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		second, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(14, 0), at(18, 0), 80))
		require.NoError(t, err)
		assert.Equal(t, "INQUIRY", second.Status)
	})

	t.Run("guest count over capacity is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 250))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
		assert.Contains(t, domainErr.Message, "250")
		assert.Contains(t, domainErr.Message, "200")
		assert.Empty(t, f.store.bookings)
	})

	t.Run("hotel override flag admits oversized bookings", func(t *testing.T) {
		f := newServiceFixture(t)
		f.hotel.SetCapacityOverride(true)

		resp, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 250))
		require.NoError(t, err)
		assert.Equal(t, 250, resp.GuestCount)
	})

	t.Run("base price override feeds the snapshot", func(t *testing.T) {
		f := newServiceFixture(t)
		override := decimal.NewFromInt(2000)
		req := f.createRequest(at(10, 0), at(14, 0), 150)
		req.BasePriceOverride = &override

		resp, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, req)
		require.NoError(t, err)
		assert.True(t, resp.Pricing.BasePrice.Equal(override))
		assert.True(t, resp.Pricing.TotalAmount.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("requires create permission", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, f.hotelID, f.actor, PermissionsForRole(RoleReadOnly), f.createRequest(at(10, 0), at(14, 0), 100))
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("impersonated creation leaves an audit entry", func(t *testing.T) {
		f := newServiceFixture(t)
		admin := audit.Context{ActorID: uuid.New(), IsImpersonating: true}

		resp, err := f.service.Create(ctx, f.hotelID, admin, f.perms, f.createRequest(at(10, 0), at(14, 0), 100))
		require.NoError(t, err)

		require.Len(t, f.store.audits, 1)
		entry := f.store.audits[0]
		assert.Equal(t, "booking.create", entry.Action)
		assert.Equal(t, admin.ActorID, entry.ActorID)
		assert.Equal(t, f.hotelID, entry.HotelID)
		assert.Equal(t, resp.ID, entry.ResourceID)
	})

	t.Run("staff creation leaves no audit entry", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 100))
		require.NoError(t, err)
		assert.Empty(t, f.store.audits)
	})
}

func TestBookingService_Reschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moving a conflicted booking to a free slot resolves it", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)
		conflicted, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(13, 0), at(16, 0), 80))
		require.NoError(t, err)
		require.Equal(t, "CONFLICT", conflicted.Status)

		resp, err := f.service.Reschedule(ctx, f.hotelID, conflicted.ID, f.actor, f.perms, RescheduleBookingRequest{
			StartTime: at(14, 0),
			EndTime:   at(17, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "INQUIRY", resp.Status)
		assert.Nil(t, resp.ConflictID)
	})

	t.Run("moving into an occupied slot conflicts", func(t *testing.T) {
		f := newServiceFixture(t)
		occupied, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)
		free, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(15, 0), at(17, 0), 80))
		require.NoError(t, err)

		resp, err := f.service.Reschedule(ctx, f.hotelID, free.ID, f.actor, f.perms, RescheduleBookingRequest{
			StartTime: at(11, 0),
			EndTime:   at(13, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "CONFLICT", resp.Status)
		require.NotNil(t, resp.ConflictID)
		assert.Equal(t, occupied.ID, *resp.ConflictID)
	})

	t.Run("pricing snapshot survives tax policy changes", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		// The hotel raises VAT after creation
		require.NoError(t, f.hotel.UpdateTaxPolicy(hotel.TaxStrategyCompound, decimal.NewFromInt(20), decimal.NewFromInt(12)))

		resp, err := f.service.Reschedule(ctx, f.hotelID, created.ID, f.actor, f.perms, RescheduleBookingRequest{
			StartTime: at(15, 0),
			EndTime:   at(18, 0),
		})
		require.NoError(t, err)
		assert.True(t, resp.Pricing.TotalAmount.Equal(decimal.NewFromInt(1250)))
		assert.True(t, resp.Pricing.VATRate.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, "STANDARD", resp.Pricing.TaxStrategy)
	})

	t.Run("guest count change re-runs the capacity guard", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		guests := 300
		_, err = f.service.Reschedule(ctx, f.hotelID, created.ID, f.actor, f.perms, RescheduleBookingRequest{
			StartTime:  at(10, 0),
			EndTime:    at(14, 0),
			GuestCount: &guests,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
	})

	t.Run("unknown booking for tenant is not found", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Reschedule(ctx, f.hotelID, uuid.New(), f.actor, f.perms, RescheduleBookingRequest{
			StartTime: at(10, 0),
			EndTime:   at(12, 0),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBookingService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("walks the standard lifecycle", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		for _, target := range []booking.BookingStatus{
			booking.StatusTentative,
			booking.StatusConfirmed,
			booking.StatusExecuted,
			booking.StatusCompleted,
		} {
			resp, err := f.service.ChangeStatus(ctx, f.hotelID, created.ID, f.actor, f.perms, target)
			require.NoError(t, err)
			assert.Equal(t, target.String(), resp.Status)
		}
	})

	t.Run("invalid transition surfaces with both statuses", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)
		_, err = f.service.ChangeStatus(ctx, f.hotelID, created.ID, f.actor, f.perms, booking.StatusTentative)
		require.NoError(t, err)

		_, err = f.service.ChangeStatus(ctx, f.hotelID, created.ID, f.actor, f.perms, booking.StatusCompleted)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		f := newServiceFixture(t)
		first, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)
		_, err = f.service.Cancel(ctx, f.hotelID, first.ID, f.actor, f.perms)
		require.NoError(t, err)

		second, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 100))
		require.NoError(t, err)
		assert.Equal(t, "INQUIRY", second.Status)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("needs only the cancel capability", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		cancelOnly := Permissions{CanViewBookings: true, CanCancelBooking: true}
		resp, err := f.service.Cancel(ctx, f.hotelID, created.ID, f.actor, cancelOnly)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)

		// The same capability set cannot drive other transitions
		other, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(15, 0), at(18, 0), 100))
		require.NoError(t, err)
		_, err = f.service.ChangeStatus(ctx, f.hotelID, other.ID, f.actor, cancelOnly, booking.StatusTentative)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("denied without the cancel capability", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		_, err = f.service.Cancel(ctx, f.hotelID, created.ID, f.actor, Permissions{CanViewBookings: true, CanChangeStatus: true})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("impersonated cancellation is audited", func(t *testing.T) {
		f := newServiceFixture(t)
		admin := audit.Context{ActorID: uuid.New(), IsImpersonating: true}
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		_, err = f.service.Cancel(ctx, f.hotelID, created.ID, admin, f.perms)
		require.NoError(t, err)
		require.Len(t, f.store.audits, 1)
		assert.Equal(t, "booking.cancel", f.store.audits[0].Action)
	})
}

func TestBookingService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("only cancelled bookings can be deleted", func(t *testing.T) {
		f := newServiceFixture(t)
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)

		err = f.service.Delete(ctx, f.hotelID, created.ID, f.actor, f.perms)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRECONDITION_FAILED", domainErr.Code)

		_, err = f.service.Cancel(ctx, f.hotelID, created.ID, f.actor, f.perms)
		require.NoError(t, err)
		require.NoError(t, f.service.Delete(ctx, f.hotelID, created.ID, f.actor, f.perms))
		assert.Empty(t, f.store.bookings)
	})

	t.Run("impersonated deletion is audited", func(t *testing.T) {
		f := newServiceFixture(t)
		admin := audit.Context{ActorID: uuid.New(), IsImpersonating: true}
		created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
		require.NoError(t, err)
		_, err = f.service.Cancel(ctx, f.hotelID, created.ID, f.actor, f.perms)
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, f.hotelID, created.ID, admin, f.perms))
		require.Len(t, f.store.audits, 1)
		assert.Equal(t, "booking.delete", f.store.audits[0].Action)
	})
}

func TestBookingService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	created, err := f.service.Create(ctx, f.hotelID, f.actor, f.perms, f.createRequest(at(10, 0), at(14, 0), 150))
	require.NoError(t, err)

	otherHotel := uuid.New()

	_, err = f.service.Get(ctx, otherHotel, f.perms, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.ChangeStatus(ctx, otherHotel, created.ID, f.actor, f.perms, booking.StatusConfirmed)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	items, err := f.service.List(ctx, otherHotel, f.perms, BookingListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items.Items)
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

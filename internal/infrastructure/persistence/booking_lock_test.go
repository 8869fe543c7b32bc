package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/domain/shared"
)

// The sqlite-backed tests cannot observe the row lock because it is only
// taken under postgres. These tests run the repository against a mocked
// postgres connection and assert the emitted SQL.
func newMockPostgresRepo(t *testing.T) (*GormBookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormBookingRepository(db), mock
}

func TestInVenueTx_TakesRowLockOnPostgres(t *testing.T) {
	repo, mock := newMockPostgresRepo(t)
	hotelID := uuid.New()
	venueID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "venues" WHERE tenant_id = .* FOR UPDATE`).
		WithArgs(hotelID, venueID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "base_price", "is_active"}).
			AddRow(venueID.String(), hotelID.String(), "Crystal Ballroom", "1000", true))
	mock.ExpectCommit()

	called := false
	err := repo.InVenueTx(context.Background(), hotelID, venueID, func(tx booking.BookingTx) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInVenueTx_UnknownVenueRollsBack(t *testing.T) {
	repo, mock := newMockPostgresRepo(t)
	hotelID := uuid.New()
	venueID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "venues" WHERE tenant_id = .* FOR UPDATE`).
		WithArgs(hotelID, venueID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.InVenueTx(context.Background(), hotelID, venueID, func(tx booking.BookingTx) error {
		t.Fatal("callback must not run when the venue row is missing")
		return nil
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package venue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuecore/backend/internal/domain/shared"
)

func intPtr(n int) *int { return &n }

func newTestVenue(t *testing.T) *Venue {
	v, err := NewVenue(uuid.New(), "Crystal Ballroom", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return v
}

func TestNewVenue(t *testing.T) {
	t.Run("creates active venue", func(t *testing.T) {
		v := newTestVenue(t)
		assert.True(t, v.IsActive)
		assert.Equal(t, 0, v.MaxCapacity())
	})

	t.Run("rejects nil hotel", func(t *testing.T) {
		_, err := NewVenue(uuid.Nil, "Crystal Ballroom", decimal.NewFromInt(1000))
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewVenue(uuid.New(), "", decimal.NewFromInt(1000))
		assert.Error(t, err)
	})

	t.Run("rejects negative base price", func(t *testing.T) {
		_, err := NewVenue(uuid.New(), "Crystal Ballroom", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestVenue_MaxCapacity(t *testing.T) {
	v := newTestVenue(t)

	t.Run("zero when nothing configured", func(t *testing.T) {
		assert.Equal(t, 0, v.MaxCapacity())
	})

	t.Run("takes maximum across layouts", func(t *testing.T) {
		require.NoError(t, v.SetCapacities(intPtr(200), intPtr(350), nil, intPtr(80)))
		assert.Equal(t, 350, v.MaxCapacity())
	})

	t.Run("ignores nil layouts", func(t *testing.T) {
		require.NoError(t, v.SetCapacities(nil, nil, intPtr(120), nil))
		assert.Equal(t, 120, v.MaxCapacity())
	})
}

func TestVenue_CheckCapacity(t *testing.T) {
	v := newTestVenue(t)
	require.NoError(t, v.SetCapacities(intPtr(200), nil, nil, nil))

	t.Run("passes within capacity", func(t *testing.T) {
		assert.NoError(t, v.CheckCapacity(200, false))
		assert.NoError(t, v.CheckCapacity(1, false))
	})

	t.Run("fails over capacity without override", func(t *testing.T) {
		err := v.CheckCapacity(250, false)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
		assert.Contains(t, domainErr.Message, "250")
		assert.Contains(t, domainErr.Message, "200")
	})

	t.Run("passes over capacity with override", func(t *testing.T) {
		assert.NoError(t, v.CheckCapacity(250, true))
	})

	t.Run("always passes when no capacity configured", func(t *testing.T) {
		empty := newTestVenue(t)
		assert.NoError(t, empty.CheckCapacity(10000, false))
	})
}

func TestVenue_SetCapacities_Negative(t *testing.T) {
	v := newTestVenue(t)
	assert.Error(t, v.SetCapacities(intPtr(-5), nil, nil, nil))
}

func TestVenue_SetBasePrice(t *testing.T) {
	v := newTestVenue(t)
	require.NoError(t, v.SetBasePrice(decimal.NewFromInt(2500)))
	assert.True(t, v.BasePrice.Equal(decimal.NewFromInt(2500)))
	assert.Error(t, v.SetBasePrice(decimal.NewFromInt(-10)))
}

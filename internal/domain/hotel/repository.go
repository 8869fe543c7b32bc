package hotel

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// HotelRepository defines persistence operations for hotels
type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Hotel, error)
	Save(ctx context.Context, h *Hotel) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

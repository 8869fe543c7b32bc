package venue

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// VenueRepository defines persistence operations for venues. Every lookup
// used by a booking mutation is tenant-scoped; a venue is only visible to
// its owning hotel.
type VenueRepository interface {
	FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*Venue, error)
	FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]Venue, error)
	CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, v *Venue) error
	DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error
}

package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*Customer, error)
	FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Customer) error
	DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error
}

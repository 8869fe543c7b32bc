package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// AuditRepository defines operations on the append-only audit trail.
// Booking mutations append through their own transaction (BookingTx); this
// interface serves the read side and standalone appends from the thin CRUD
// services.
type AuditRepository interface {
	Append(ctx context.Context, entry *Entry) error
	FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]Entry, error)
	CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error)
}

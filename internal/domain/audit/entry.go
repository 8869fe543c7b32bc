package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// Context describes who is performing a mutation and whether they are a
// platform administrator acting on behalf of a tenant. It is threaded
// explicitly through every mutating call so audit behavior stays unit
// testable without a real session.
type Context struct {
	ActorID         uuid.UUID
	IsImpersonating bool
}

// ShouldAudit reports whether the mutation must leave an audit entry.
// Only impersonated actions are recorded; a tenant's own staff actions are
// deliberately not, so the trail shows exactly when administrators entered
// the account.
func (c Context) ShouldAudit() bool {
	return c.IsImpersonating
}

// Entry is an append-only record of a privileged action performed while
// impersonating a tenant. Entries are written in the same transaction as
// the mutation they document and are never updated or deleted.
type Entry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	HotelID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Action       string    `gorm:"size:64;not null;index"`
	ResourceType string    `gorm:"size:64;not null"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null"`
	Details      string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName sets the database table name
func (Entry) TableName() string { return "audit_entries" }

// NewEntry creates a new audit entry
func NewEntry(hotelID, actorID uuid.UUID, action, resourceType string, resourceID uuid.UUID, details string) (*Entry, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOTEL", "Hotel ID cannot be empty")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}

	return &Entry{
		ID:           uuid.New(),
		HotelID:      hotelID,
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now(),
	}, nil
}

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/shared"
)

// AuditService serves the read side of the audit trail. Tenants can see
// exactly which administrator actions touched their account; nothing here
// mutates the trail.
type AuditService struct {
	auditRepo audit.AuditRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo audit.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// List retrieves audit entries for a hotel with pagination
func (s *AuditService) List(ctx context.Context, hotelID uuid.UUID, filter AuditListFilter) (*shared.Paginated[AuditEntryResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}
	if filter.ActorID != nil {
		domainFilter.Filters["actor_id"] = *filter.ActorID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	items, err := s.auditRepo.FindAllForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.auditRepo.CountForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]AuditEntryResponse, len(items))
	for i := range items {
		responses[i] = ToAuditEntryResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// AuditListFilter represents filter options for the audit trail
type AuditListFilter struct {
	Action    string     `form:"action"`
	ActorID   *uuid.UUID `form:"actor_id"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AuditEntryResponse represents an audit entry in API responses
type AuditEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	HotelID      uuid.UUID `json:"hotel_id"`
	ActorID      uuid.UUID `json:"actor_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToAuditEntryResponse converts an audit entry to a response DTO
func ToAuditEntryResponse(e *audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:           e.ID,
		HotelID:      e.HotelID,
		ActorID:      e.ActorID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		CreatedAt:    e.CreatedAt,
	}
}

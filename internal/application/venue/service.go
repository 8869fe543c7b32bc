package venue

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/venue"
)

// VenueService handles venue catalog operations
type VenueService struct {
	venueRepo venue.VenueRepository
}

// NewVenueService creates a new VenueService
func NewVenueService(venueRepo venue.VenueRepository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

// Create creates a new venue
func (s *VenueService) Create(ctx context.Context, hotelID uuid.UUID, req CreateVenueRequest) (*VenueResponse, error) {
	v, err := venue.NewVenue(hotelID, req.Name, req.BasePrice)
	if err != nil {
		return nil, err
	}
	if err := v.SetCapacities(req.CapacityBanquet, req.CapacityTheater, req.CapacityReception, req.CapacityUShape); err != nil {
		return nil, err
	}
	if err := s.venueRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVenueResponse(v)
	return &resp, nil
}

// Get retrieves a venue by ID
func (s *VenueService) Get(ctx context.Context, hotelID, venueID uuid.UUID) (*VenueResponse, error) {
	v, err := s.venueRepo.FindByIDForTenant(ctx, hotelID, venueID)
	if err != nil {
		return nil, err
	}
	resp := ToVenueResponse(v)
	return &resp, nil
}

// List retrieves venues with pagination
func (s *VenueService) List(ctx context.Context, hotelID uuid.UUID, filter VenueListFilter) (*shared.Paginated[VenueResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	items, err := s.venueRepo.FindAllForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.venueRepo.CountForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]VenueResponse, len(items))
	for i := range items {
		responses[i] = ToVenueResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a venue's name, capacities and base price
func (s *VenueService) Update(ctx context.Context, hotelID, venueID uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error) {
	v, err := s.venueRepo.FindByIDForTenant(ctx, hotelID, venueID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := v.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.BasePrice != nil {
		if err := v.SetBasePrice(*req.BasePrice); err != nil {
			return nil, err
		}
	}
	if req.Capacities != nil {
		if err := v.SetCapacities(req.Capacities.Banquet, req.Capacities.Theater, req.Capacities.Reception, req.Capacities.UShape); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			v.Activate()
		} else {
			v.Deactivate()
		}
	}

	if err := s.venueRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVenueResponse(v)
	return &resp, nil
}

// Delete removes a venue
func (s *VenueService) Delete(ctx context.Context, hotelID, venueID uuid.UUID) error {
	return s.venueRepo.DeleteForTenant(ctx, hotelID, venueID)
}

// CreateVenueRequest represents a request to create a venue
type CreateVenueRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=255"`
	BasePrice         decimal.Decimal `json:"base_price" binding:"required"`
	CapacityBanquet   *int            `json:"capacity_banquet" binding:"omitempty,min=0"`
	CapacityTheater   *int            `json:"capacity_theater" binding:"omitempty,min=0"`
	CapacityReception *int            `json:"capacity_reception" binding:"omitempty,min=0"`
	CapacityUShape    *int            `json:"capacity_ushape" binding:"omitempty,min=0"`
}

// CapacityInput groups the per-layout capacity fields
type CapacityInput struct {
	Banquet   *int `json:"banquet" binding:"omitempty,min=0"`
	Theater   *int `json:"theater" binding:"omitempty,min=0"`
	Reception *int `json:"reception" binding:"omitempty,min=0"`
	UShape    *int `json:"ushape" binding:"omitempty,min=0"`
}

// UpdateVenueRequest represents a request to update a venue
type UpdateVenueRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=255"`
	BasePrice  *decimal.Decimal `json:"base_price"`
	Capacities *CapacityInput   `json:"capacities"`
	IsActive   *bool            `json:"is_active"`
}

// VenueListFilter represents filter options for the venue list
type VenueListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// VenueResponse represents a venue in API responses
type VenueResponse struct {
	ID                uuid.UUID       `json:"id"`
	HotelID           uuid.UUID       `json:"hotel_id"`
	Name              string          `json:"name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	CapacityBanquet   *int            `json:"capacity_banquet,omitempty"`
	CapacityTheater   *int            `json:"capacity_theater,omitempty"`
	CapacityReception *int            `json:"capacity_reception,omitempty"`
	CapacityUShape    *int            `json:"capacity_ushape,omitempty"`
	MaxCapacity       int             `json:"max_capacity"`
	IsActive          bool            `json:"is_active"`
}

// ToVenueResponse converts a venue to a response DTO
func ToVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:                v.ID,
		HotelID:           v.TenantID,
		Name:              v.Name,
		BasePrice:         v.BasePrice,
		CapacityBanquet:   v.CapacityBanquet,
		CapacityTheater:   v.CapacityTheater,
		CapacityReception: v.CapacityReception,
		CapacityUShape:    v.CapacityUshape,
		MaxCapacity:       v.MaxCapacity(),
		IsActive:          v.IsActive,
	}
}

package hotel

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/hotel"
	"github.com/venuecore/backend/internal/domain/shared/valueobject"
)

// HotelService handles tenant account settings
type HotelService struct {
	hotelRepo hotel.HotelRepository
}

// NewHotelService creates a new HotelService
func NewHotelService(hotelRepo hotel.HotelRepository) *HotelService {
	return &HotelService{hotelRepo: hotelRepo}
}

// Create provisions a new hotel account
func (s *HotelService) Create(ctx context.Context, req CreateHotelRequest) (*HotelResponse, error) {
	h, err := hotel.NewHotel(req.Name, valueobject.Currency(req.Currency),
		hotel.TaxStrategy(req.TaxStrategy), req.VATRate, req.ServiceChargeRate)
	if err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Save(ctx, h); err != nil {
		return nil, err
	}
	resp := ToHotelResponse(h)
	return &resp, nil
}

// Get retrieves a hotel by ID
func (s *HotelService) Get(ctx context.Context, hotelID uuid.UUID) (*HotelResponse, error) {
	h, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	resp := ToHotelResponse(h)
	return &resp, nil
}

// UpdateTaxPolicy replaces the hotel's live tax policy. Existing bookings
// keep the snapshot frozen at their creation time; only future bookings
// price under the new rates.
func (s *HotelService) UpdateTaxPolicy(ctx context.Context, hotelID uuid.UUID, req UpdateTaxPolicyRequest) (*HotelResponse, error) {
	h, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if err := h.UpdateTaxPolicy(hotel.TaxStrategy(req.TaxStrategy), req.VATRate, req.ServiceChargeRate); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Save(ctx, h); err != nil {
		return nil, err
	}
	resp := ToHotelResponse(h)
	return &resp, nil
}

// UpdateSettings updates name and capacity-override policy
func (s *HotelService) UpdateSettings(ctx context.Context, hotelID uuid.UUID, req UpdateHotelRequest) (*HotelResponse, error) {
	h, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := h.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.AllowCapacityOverride != nil {
		h.SetCapacityOverride(*req.AllowCapacityOverride)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			h.Activate()
		} else {
			h.Deactivate()
		}
	}
	if err := s.hotelRepo.Save(ctx, h); err != nil {
		return nil, err
	}
	resp := ToHotelResponse(h)
	return &resp, nil
}

// CreateHotelRequest represents a request to provision a hotel
type CreateHotelRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=255"`
	Currency          string          `json:"currency" binding:"required,currency"`
	TaxStrategy       string          `json:"tax_strategy" binding:"required,oneof=STANDARD COMPOUND"`
	VATRate           decimal.Decimal `json:"vat_rate" binding:"required"`
	ServiceChargeRate decimal.Decimal `json:"service_charge_rate" binding:"required"`
}

// UpdateTaxPolicyRequest represents a request to change the live tax policy
type UpdateTaxPolicyRequest struct {
	TaxStrategy       string          `json:"tax_strategy" binding:"required,oneof=STANDARD COMPOUND"`
	VATRate           decimal.Decimal `json:"vat_rate" binding:"required"`
	ServiceChargeRate decimal.Decimal `json:"service_charge_rate" binding:"required"`
}

// UpdateHotelRequest represents a request to update hotel settings
type UpdateHotelRequest struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=255"`
	AllowCapacityOverride *bool   `json:"allow_capacity_override"`
	IsActive              *bool   `json:"is_active"`
}

// HotelResponse represents a hotel in API responses
type HotelResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Currency              string          `json:"currency"`
	TaxStrategy           string          `json:"tax_strategy"`
	VATRate               decimal.Decimal `json:"vat_rate"`
	ServiceChargeRate     decimal.Decimal `json:"service_charge_rate"`
	AllowCapacityOverride bool            `json:"allow_capacity_override"`
	IsActive              bool            `json:"is_active"`
}

// ToHotelResponse converts a hotel to a response DTO
func ToHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID:                    h.ID,
		Name:                  h.Name,
		Currency:              string(h.Currency),
		TaxStrategy:           h.TaxStrategy.String(),
		VATRate:               h.VATRate,
		ServiceChargeRate:     h.ServiceChargeRate,
		AllowCapacityOverride: h.AllowCapacityOverride,
		IsActive:              h.IsActive,
	}
}

package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuecore/backend/internal/domain/booking"
)

// CreateBookingRequest represents a request to create a booking
type CreateBookingRequest struct {
	VenueID           uuid.UUID        `json:"venue_id" binding:"required"`
	CustomerID        uuid.UUID        `json:"customer_id" binding:"required"`
	EventName         string           `json:"event_name" binding:"required,min=1,max=255"`
	StartTime         time.Time        `json:"start_time" binding:"required"`
	EndTime           time.Time        `json:"end_time" binding:"required"`
	GuestCount        int              `json:"guest_count" binding:"required,min=1"`
	GuaranteedPax     int              `json:"guaranteed_pax" binding:"omitempty,min=0"`
	BasePriceOverride *decimal.Decimal `json:"base_price_override"`
	Source            string           `json:"source" binding:"omitempty,oneof=STAFF PUBLIC"`
	SpecialRequests   string           `json:"special_requests" binding:"max=2000"`
	DietaryRequests   string           `json:"dietary_requests" binding:"max=2000"`
	Notes             string           `json:"notes" binding:"max=2000"`
	AssignedToID      *uuid.UUID       `json:"assigned_to_id"`
}

// RescheduleBookingRequest represents a request to move a booking to a new
// time range, optionally with a new guest count
type RescheduleBookingRequest struct {
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	GuestCount *int      `json:"guest_count" binding:"omitempty,min=1"`
}

// ChangeStatusRequest represents a request to move a booking along its
// lifecycle
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingRequest represents a request to update booking details that
// do not affect the schedule or the price
type UpdateBookingRequest struct {
	EventName       *string    `json:"event_name" binding:"omitempty,min=1,max=255"`
	GuaranteedPax   *int       `json:"guaranteed_pax" binding:"omitempty,min=0"`
	SpecialRequests *string    `json:"special_requests" binding:"omitempty,max=2000"`
	DietaryRequests *string    `json:"dietary_requests" binding:"omitempty,max=2000"`
	Notes           *string    `json:"notes" binding:"omitempty,max=2000"`
	AssignedToID    *uuid.UUID `json:"assigned_to_id"`
}

// BookingListFilter represents filter options for the booking list
type BookingListFilter struct {
	Search     string     `form:"search"`
	VenueID    *uuid.UUID `form:"venue_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     *string    `form:"status"`
	Statuses   []string   `form:"statuses"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PricingResponse represents the frozen pricing snapshot in API responses
type PricingResponse struct {
	BasePrice         decimal.Decimal `json:"base_price"`
	ServiceCharge     decimal.Decimal `json:"service_charge"`
	VAT               decimal.Decimal `json:"vat"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Currency          string          `json:"currency"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	ServiceChargeRate decimal.Decimal `json:"service_charge_rate"`
	TaxStrategy       string          `json:"tax_strategy"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	HotelID         uuid.UUID       `json:"hotel_id"`
	BookingNumber   string          `json:"booking_number"`
	EventName       string          `json:"event_name"`
	VenueID         uuid.UUID       `json:"venue_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CreatedByID     uuid.UUID       `json:"created_by_id"`
	AssignedToID    *uuid.UUID      `json:"assigned_to_id,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	EventDate       time.Time       `json:"event_date"`
	GuestCount      int             `json:"guest_count"`
	GuaranteedPax   int             `json:"guaranteed_pax"`
	Status          string          `json:"status"`
	ConflictID      *uuid.UUID      `json:"conflict_id,omitempty"`
	Pricing         PricingResponse `json:"pricing"`
	Source          string          `json:"source"`
	IsPublicBooking bool            `json:"is_public_booking"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	DietaryRequests string          `json:"dietary_requests,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToBookingResponse converts a booking aggregate to a response DTO
func ToBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		HotelID:         b.TenantID,
		BookingNumber:   b.BookingNumber,
		EventName:       b.EventName,
		VenueID:         b.VenueID,
		CustomerID:      b.CustomerID,
		CreatedByID:     b.CreatedByID,
		AssignedToID:    b.AssignedToID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		EventDate:       b.EventDate,
		GuestCount:      b.GuestCount,
		GuaranteedPax:   b.GuaranteedPax,
		Status:          b.Status.String(),
		ConflictID:      b.ConflictID,
		Pricing:         toPricingResponse(b.Pricing),
		Source:          string(b.Source),
		IsPublicBooking: b.IsPublicBooking,
		SpecialRequests: b.SpecialRequests,
		DietaryRequests: b.DietaryRequests,
		Notes:           b.Notes,
		ConfirmedAt:     b.ConfirmedAt,
		CompletedAt:     b.CompletedAt,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toPricingResponse(p booking.PricingSnapshot) PricingResponse {
	return PricingResponse{
		BasePrice:         p.BasePrice,
		ServiceCharge:     p.ServiceCharge,
		VAT:               p.VAT,
		TotalAmount:       p.TotalAmount,
		Currency:          string(p.Currency),
		VATRate:           p.VATRateSnapshot,
		ServiceChargeRate: p.ServiceChargeRateSnapshot,
		TaxStrategy:       p.TaxStrategySnapshot.String(),
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingapp "github.com/venuecore/backend/internal/application/booking"
	hotelapp "github.com/venuecore/backend/internal/application/hotel"
	"github.com/venuecore/backend/internal/interfaces/http/dto"
	"github.com/venuecore/backend/internal/interfaces/http/middleware"
)

// HotelHandler handles hotel account endpoints. All routes except creation
// act on the hotel from the caller's token.
type HotelHandler struct {
	BaseHandler
	hotelService *hotelapp.HotelService
}

// NewHotelHandler creates a new HotelHandler
func NewHotelHandler(hotelService *hotelapp.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// RegisterRoutes registers all hotel routes
func (h *HotelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/hotels", h.Create)

	hotel := rg.Group("/hotel")
	{
		hotel.GET("", h.Get)
		hotel.PUT("/settings", h.UpdateSettings)
		hotel.PUT("/tax-policy", h.UpdateTaxPolicy)
	}
}

// Create provisions a new hotel account. Restricted to administrators.
func (h *HotelHandler) Create(c *gin.Context) {
	if middleware.GetRole(c) != bookingapp.RoleAdmin {
		c.JSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden, "Only administrators can create hotels", getRequestID(c)))
		return
	}

	var req hotelapp.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.hotelService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns the caller's hotel
func (h *HotelHandler) Get(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	resp, err := h.hotelService.Get(c.Request.Context(), hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateSettings changes hotel settings such as the capacity override flag
func (h *HotelHandler) UpdateSettings(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var req hotelapp.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.hotelService.UpdateSettings(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateTaxPolicy changes the hotel's tax policy. Existing bookings keep
// their frozen pricing snapshots; only future bookings are priced under the
// new policy.
func (h *HotelHandler) UpdateTaxPolicy(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var req hotelapp.UpdateTaxPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.hotelService.UpdateTaxPolicy(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

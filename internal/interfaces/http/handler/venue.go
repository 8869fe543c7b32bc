package handler

import (
	"github.com/gin-gonic/gin"

	venueapp "github.com/venuecore/backend/internal/application/venue"
)

// VenueHandler handles venue management endpoints
type VenueHandler struct {
	BaseHandler
	venueService *venueapp.VenueService
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venueService *venueapp.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// RegisterRoutes registers all venue routes
func (h *VenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	{
		venues.POST("", h.Create)
		venues.GET("", h.List)
		venues.GET("/:id", h.Get)
		venues.PUT("/:id", h.Update)
		venues.DELETE("/:id", h.Delete)
	}
}

// Create creates a venue
func (h *VenueHandler) Create(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var req venueapp.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.venueService.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single venue
func (h *VenueHandler) Get(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.venueService.Get(c.Request.Context(), hotelID, venueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns venues matching the filter
func (h *VenueHandler) List(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var filter venueapp.VenueListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.venueService.List(c.Request.Context(), hotelID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes venue details
func (h *VenueHandler) Update(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req venueapp.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.venueService.Update(c.Request.Context(), hotelID, venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a venue
func (h *VenueHandler) Delete(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.venueService.Delete(c.Request.Context(), hotelID, venueID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

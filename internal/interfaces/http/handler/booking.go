package handler

import (
	"github.com/gin-gonic/gin"

	bookingapp "github.com/venuecore/backend/internal/application/booking"
	"github.com/venuecore/backend/internal/domain/booking"
	"github.com/venuecore/backend/internal/interfaces/http/middleware"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *bookingapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes registers all booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.PUT("/:id", h.Update)
		bookings.POST("/:id/reschedule", h.Reschedule)
		bookings.POST("/:id/status", h.ChangeStatus)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.DELETE("/:id", h.Delete)
	}
}

// Create creates a booking. A schedule collision does not fail the request;
// the booking is stored in CONFLICT and returned with a 201 so staff can
// resolve it later.
func (h *BookingHandler) Create(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var req bookingapp.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.Create(c.Request.Context(), hotelID,
		middleware.GetAuditContext(c), getPermissions(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single booking
func (h *BookingHandler) Get(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.bookingService.Get(c.Request.Context(), hotelID, getPermissions(c), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns bookings matching the filter
func (h *BookingHandler) List(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var filter bookingapp.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.bookingService.List(c.Request.Context(), hotelID, getPermissions(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes booking details that do not affect the schedule or price
func (h *BookingHandler) Update(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookingapp.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.Update(c.Request.Context(), hotelID, bookingID,
		middleware.GetAuditContext(c), getPermissions(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reschedule moves a booking to a new time range and re-runs conflict
// detection. The pricing snapshot is left untouched.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookingapp.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.Reschedule(c.Request.Context(), hotelID, bookingID,
		middleware.GetAuditContext(c), getPermissions(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeStatus moves a booking along its lifecycle
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookingapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.ChangeStatus(c.Request.Context(), hotelID, bookingID,
		middleware.GetAuditContext(c), getPermissions(c), booking.BookingStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels a booking, freeing its slot
func (h *BookingHandler) Cancel(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.bookingService.Cancel(c.Request.Context(), hotelID, bookingID,
		middleware.GetAuditContext(c), getPermissions(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a cancelled booking permanently
func (h *BookingHandler) Delete(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.bookingService.Delete(c.Request.Context(), hotelID, bookingID,
		middleware.GetAuditContext(c), getPermissions(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

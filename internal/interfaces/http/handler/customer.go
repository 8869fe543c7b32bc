package handler

import (
	"github.com/gin-gonic/gin"

	customerapp "github.com/venuecore/backend/internal/application/customer"
)

// CustomerHandler handles customer management endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

// Create creates a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var req customerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.customerService.Get(c.Request.Context(), hotelID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns customers matching the filter
func (h *CustomerHandler) List(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var filter customerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.customerService.List(c.Request.Context(), hotelID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes customer details
func (h *CustomerHandler) Update(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), hotelID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), hotelID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

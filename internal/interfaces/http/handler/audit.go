package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/venuecore/backend/internal/application/audit"
)

// AuditHandler exposes the audit trail. The trail is read-only over the
// API; entries are written exclusively inside booking transactions.
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes registers all audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-entries", h.List)
}

// List returns audit entries matching the filter
func (h *AuditHandler) List(c *gin.Context) {
	hotelID, ok := getHotelID(c)
	if !ok {
		return
	}

	var filter auditapp.AuditListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.auditService.List(c.Request.Context(), hotelID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

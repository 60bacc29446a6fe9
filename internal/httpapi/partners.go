package httpapi

import (
	"net/http"
	"strings"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"

	"github.com/gin-gonic/gin"
)

type suspendRequest struct {
	Reason string `json:"reason"`
}

// ApprovePartner activates a partner. RBAC: admin or super_admin.
func (h *Handlers) ApprovePartner(c *gin.Context) {
	if h.Partners == nil {
		abortJSON(c, http.StatusNotImplemented, "partner updates not supported by data source")
		return
	}
	ctx := c.Request.Context()
	p, err := h.Partners.SetPartnerStatus(ctx, c.Param("partner_id"), datasource.PartnerActive)
	if err != nil {
		writeError(c, err)
		return
	}
	approvedBy, _ := auth.UserID(ctx)
	h.Audit.Partner().Approved(ctx, p.ID, p.BusinessName, approvedBy, audit.Options{})
	c.JSON(http.StatusOK, p)
}

// SuspendPartner suspends a partner; a reason is required. RBAC: admin or super_admin.
func (h *Handlers) SuspendPartner(c *gin.Context) {
	if h.Partners == nil {
		abortJSON(c, http.StatusNotImplemented, "partner updates not supported by data source")
		return
	}
	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		abortJSON(c, http.StatusBadRequest, "reason required")
		return
	}

	ctx := c.Request.Context()
	p, err := h.Partners.SetPartnerStatus(ctx, c.Param("partner_id"), datasource.PartnerSuspended)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Audit.Partner().Suspended(ctx, p.ID, p.BusinessName, req.Reason, audit.Options{})
	c.JSON(http.StatusOK, p)
}

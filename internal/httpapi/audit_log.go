package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"

	"github.com/gin-gonic/gin"
)

// AuditLog lists recent audit entries, newest first.
// RBAC: admin, super_admin or support.
func (h *Handlers) AuditLog(c *gin.Context) {
	if h.AuditReader == nil {
		abortJSON(c, http.StatusNotImplemented, "audit sink does not support reads")
		return
	}

	q := audit.Query{
		EventType: audit.EventType(c.Query("event_type")),
		PartnerID: c.Query("partner_id"),
	}
	if raw := c.Query("category"); raw != "" {
		cat, ok := audit.ParseCategory(raw)
		if !ok {
			abortJSON(c, http.StatusBadRequest, "unknown category")
			return
		}
		q.Category = cat
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abortJSON(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		q.Limit = n
	}

	entries, err := h.AuditReader.Recent(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/metrics"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/reporting"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/gin-gonic/gin"
)

const exportEndpoint = "/v1/admin/export"

// AdminExport streams a CSV export. RBAC: admin or super_admin.
// Concurrent exports are capped per admin; rejections are audited as rate limiting.
func (h *Handlers) AdminExport(c *gin.Context) {
	if h.Reports == nil {
		abortJSON(c, http.StatusInternalServerError, "reporting not configured")
		return
	}
	ctx := c.Request.Context()
	log := logger.FromGin(c)
	userID, _ := auth.UserID(ctx)

	req := reporting.ExportRequest{
		Type:   reporting.ExportType(c.Query("type")),
		Period: c.Query("period"),
		Status: c.Query("status"),
	}

	if h.Exports != nil {
		ok, err := h.Exports.Acquire(ctx, userID)
		if err != nil {
			log.Error("export cap acquire failed", "err", err)
			abortJSON(c, http.StatusServiceUnavailable, "export temporarily unavailable")
			return
		}
		if !ok {
			h.Audit.Security().RateLimitExceeded(ctx, exportEndpoint, audit.Options{})
			abortJSON(c, http.StatusTooManyRequests, "too many concurrent exports")
			return
		}
		defer func() {
			// The slot must be freed even when the client has gone away.
			if err := h.Exports.Release(context.WithoutCancel(ctx), userID); err != nil {
				log.Warn("export cap release failed", "err", err)
			}
		}()
	}

	out, err := h.Reports.Export(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.RecordExport(string(out.Type))
	h.Audit.Compliance().DataExported(ctx, userID, string(out.Type), out.Rows, audit.Options{
		ResourceType: "export",
		Details:      map[string]any{"period": req.Period, "filename": out.Filename},
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out.CSV))
}

package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/metrics"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/settlement"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminStatement renders a statement for any partner. RBAC: admin or super_admin.
func (h *Handlers) AdminStatement(c *gin.Context) {
	h.statement(c, c.Param("partner_id"))
}

// PartnerStatement renders the caller's own statement; the partner comes from the token.
func (h *Handlers) PartnerStatement(c *gin.Context) {
	pid, err := auth.PartnerID(c.Request.Context())
	if err != nil {
		abortJSON(c, http.StatusUnauthorized, "partner_id required")
		return
	}
	h.statement(c, pid)
}

func (h *Handlers) statement(c *gin.Context, partnerID string) {
	if h.Statements == nil {
		abortJSON(c, http.StatusInternalServerError, "statements not configured")
		return
	}
	format, err := settlement.ParseFormat(c.Query("format"))
	if err != nil {
		writeError(c, err)
		return
	}
	start, end, err := statementPeriod(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		abortJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	log := logger.FromGin(c)

	data, err := h.Statements.Build(ctx, partnerID, start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	for _, d := range settlement.Reconcile(data) {
		log.Warn("statement summary disagrees with line items",
			"statement_number", data.StatementNumber,
			"partner_id", partnerID,
			"field", d.Field,
			"supplied", d.Supplied,
			"derived", d.Derived,
		)
	}

	body, err := settlement.Render(data, format)
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.RecordStatementRendered(string(format))

	userID, _ := auth.UserID(ctx)
	h.Audit.Compliance().ReportGenerated(ctx, userID, "statement", data.StatementNumber, audit.Options{
		PartnerID: partnerID,
		Details: map[string]any{
			"format":       string(format),
			"period_start": data.PeriodStart.Format(export.ISODateLayout),
			"period_end":   data.PeriodEnd.Format(export.ISODateLayout),
		},
	})

	if format != settlement.FormatHTML {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(data.StatementNumber)))
	}
	c.Data(http.StatusOK, format.ContentType(), body)
}

// statementPeriod parses start/end dates; both empty means the previous calendar month.
func statementPeriod(rawStart, rawEnd string, now time.Time) (time.Time, time.Time, error) {
	if rawStart == "" && rawEnd == "" {
		now = now.UTC()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1), nil
	}
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("start and end must be given together")
	}
	start, err := export.ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := export.ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}

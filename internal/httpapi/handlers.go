package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/reporting"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/settlement"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth        *auth.Manager
	Credentials auth.CredentialChecker
	Attempts    auth.AttemptCounter

	// LoginFailureThreshold is the failure count at which brute force is recorded.
	LoginFailureThreshold int

	Audit       *audit.Recorder
	AuditReader audit.Reader // nil when the sink cannot be read back

	Partners   datasource.PartnerWriter
	Statements *settlement.Service
	Reports    *reporting.Service
	Exports    ExportLimiter

	Now func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// statusFor maps service sentinels onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, datasource.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, datasource.ErrInvalidRequest),
		errors.Is(err, settlement.ErrInvalidPeriod),
		errors.Is(err, settlement.ErrUnsupportedFormat),
		errors.Is(err, reporting.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	abortJSON(c, status, msg)
}

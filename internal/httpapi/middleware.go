package httpapi

import (
	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/gin-gonic/gin"
)

const headerSessionID = "X-Session-Id"

// AuditRequest puts request correlation into the request context for the recorder.
// It must run after logger.Middleware so the request id is assigned.
func AuditRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := audit.WithRequest(c.Request.Context(), audit.RequestInfo{
			RequestID: logger.RequestID(c),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			SessionID: c.GetHeader(headerSessionID),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuditActor copies the authenticated identity into audit context.
// It must run after auth.RequireAccessToken.
func AuditActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := auth.IdentityFrom(c.Request.Context()); ok {
			c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), actorOf(id)))
		}
		c.Next()
	}
}

func actorOf(id auth.Identity) audit.Actor {
	return audit.Actor{UserID: id.UserID, Email: id.Email, Role: id.Role, PartnerID: id.PartnerID}
}

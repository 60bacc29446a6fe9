package httpapi

import (
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Register wires the /v1 API onto r.
// Keep this free of business logic; handlers delegate to internal modules.
func (h *Handlers) Register(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.Use(AuditRequest())

	v1.POST("/auth/login", h.Login)

	protected := v1.Group("")
	protected.Use(auth.RequireAccessToken(h.Auth), AuditActor())

	admin := protected.Group("/admin")
	{
		staff := admin.Group("")
		staff.Use(rbac.RequireAnyRole(rbac.RoleAdmin))
		staff.GET("/export", h.AdminExport)
		staff.GET("/partners/:partner_id/statements", h.AdminStatement)
		staff.POST("/partners/:partner_id/approve", h.ApprovePartner)
		staff.POST("/partners/:partner_id/suspend", h.SuspendPartner)

		admin.GET("/audit", rbac.RequireAnyRole(rbac.RoleAdmin, rbac.RoleSupport), h.AuditLog)
	}

	partner := protected.Group("/partner")
	partner.Use(rbac.RequirePartner(), rbac.RequireAnyRole(rbac.RolePartner))
	{
		partner.GET("/statements", h.PartnerStatement)
	}
}

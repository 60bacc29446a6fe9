package rbac

import (
	"net/http"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequirePartner enforces partner scoping: partner_id must exist in context.
// Partner routes read the partner only from the token, never from the path.
func RequirePartner() gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := auth.PartnerID(c.Request.Context())
		if err != nil || pid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "partner_id required"})
			return
		}
		c.Next()
	}
}

// RequireAnyRole allows access if the caller has any of the provided roles.
// Rules:
// - super_admin bypasses all checks
// - unknown roles are always denied
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, err := auth.Role(c.Request.Context())
		if err != nil || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role required"})
			return
		}

		if !IsKnownRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		if IsSuperAdmin(role) {
			c.Next()
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

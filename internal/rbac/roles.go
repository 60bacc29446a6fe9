package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RolePartner    = "partner"
	RoleSupport    = "support" // read-only audit access
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsAdmin(role string) bool { return role == RoleAdmin || role == RoleSuperAdmin }

func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RolePartner, RoleSupport:
		return true
	default:
		return false
	}
}

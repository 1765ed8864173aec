package domain

// Role of an authenticated caller
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated caller identity supplied by the external auth layer.
// It is passed explicitly into every operation that needs authorization.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsAuthenticated returns true if the principal carries a user id
func (p Principal) IsAuthenticated() bool {
	return p.UserID > 0
}

// ParseRole validates a role string; empty means a regular user
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case "":
		return RoleUser, true
	case RoleUser, RoleOwner, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

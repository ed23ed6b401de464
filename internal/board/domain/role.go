package domain

// Role is the authorization tier of a user. Roles form a total order:
// RoleNone < RoleAdmin < RoleSuperadmin. The numeric values are persisted
// as-is in the users table.
type Role int

const (
	RoleNone       Role = 0
	RoleAdmin      Role = 1
	RoleSuperadmin Role = 2
)

// AtLeast reports whether r meets the minimum required tier.
func (r Role) AtLeast(min Role) bool { return r >= min }

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSuperadmin:
		return "superadmin"
	default:
		return "none"
	}
}

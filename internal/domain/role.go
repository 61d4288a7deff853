package domain

// Role enumerates user roles from least to most privileged.
type Role string

const (
	RoleUser       Role = "User"
	RoleManager    Role = "Manager"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "Super Admin"
)

var roleRank = map[Role]int{
	RoleUser:       0,
	RoleManager:    1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Valid reports whether the role is a known enum value.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role satisfies the minimum required role.
// Super Admin satisfies every check.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	minRank, ok := roleRank[min]
	if !ok {
		return false
	}
	return rank >= minRank
}

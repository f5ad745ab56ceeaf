package domain

// Role is the authorization role carried on a user record and inside
// issued tokens. Only one role exists today; modelling it as an enum
// keeps the token issuer and middleware free of hard-coded literals.
type Role string

const (
	RoleUser Role = "User"
)

// AllRoles contains all valid roles
var AllRoles = []Role{RoleUser}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

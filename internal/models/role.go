package models

import "fmt"

// Role is the closed set of platform roles carried in access tokens
type Role int

const (
	RoleStudent    Role = 1
	RoleInstructor Role = 2
	RoleAdmin      Role = 3
)

// ParseRole converts a raw role claim into a Role
//
// Unknown values are rejected instead of being treated as the lowest role.
func ParseRole(raw int) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(raw), nil
	default:
		return 0, fmt.Errorf("unknown role: %d", raw)
	}
}

// String returns the lowercase name of the role
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleInstructor:
		return "instructor"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// CanReview reports whether the role may approve or reject certificate requests at all.
// Instructors are further limited to their own courses.
func (r Role) CanReview() bool {
	switch r {
	case RoleInstructor, RoleAdmin:
		return true
	case RoleStudent:
		return false
	default:
		return false
	}
}

// Principal is the authenticated caller of a single request
type Principal struct {
	UserID int
	Role   Role
}

package model

import "strings"

// Role is the closed set of account roles.  The original mockups kept
// the role as a free string and compared it inline for navigation;
// here it is a proper enumerated type validated at the boundary.
type Role string

const (
	RolePatient  Role = "PATIENT"
	RoleHospital Role = "HOSPITAL"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normalizes a raw role string and reports whether it names
// a known role.  Matching is case-insensitive.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RolePatient:
		return RolePatient, true
	case RoleHospital:
		return RoleHospital, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

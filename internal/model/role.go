package model

import "strings"

// Role is the closed set of account roles. It replaces string
// comparison scattered through callers: switching on a Role is
// exhaustive, and unknown column values normalize to RoleReporter
// at the parse boundary.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReporter Role = "reporter"
	RoleViewer   Role = "viewer"
)

// ParseRole maps a stored role column value onto the closed set.
// Unrecognized or empty values become RoleReporter, the column's
// own default.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleViewer:
		return RoleViewer
	default:
		return RoleReporter
	}
}

// String returns the value stored in the role column.
func (r Role) String() string { return string(r) }

package domain

import "fmt"

// Role classifies staff accounts. Encoders capture registrations, validators
// move them through the workflow, admins see everything including dashboards.
type Role string

const (
	RoleEncoder   Role = "encoder"
	RoleValidator Role = "validator"
	RoleAdmin     Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleEncoder:   {},
	RoleValidator: {},
	RoleAdmin:     {},
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := knownRoles[r]; !ok {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

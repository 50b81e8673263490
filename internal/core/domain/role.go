package domain

import "fmt"

// Role is the authorization level of an authenticated actor.
// Roles form a total order: RoleUser < RoleManager < RoleAdmin. A higher
// role carries every permission of the roles below it.
type Role int

const (
	RoleUser Role = iota + 1
	RoleManager
	RoleAdmin
)

// AtLeast reports whether r grants the permissions of required.
// This single comparison is the only place the hierarchy is encoded.
func (r Role) AtLeast(required Role) bool {
	return r >= required
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole converts a wire-level role name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "manager":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// MarshalText implements encoding.TextMarshaler so roles serialize as their
// wire names in JSON payloads.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

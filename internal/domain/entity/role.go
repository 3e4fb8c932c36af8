package entity

import (
	"errors"
	"strings"
)

// Role is the authorization role of a user. Stored as its canonical
// lowercase value; inbound strings are matched case-insensitively.
type Role string

const (
	RoleReader    Role = "reader"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole resolves an inbound role string against the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleReader:
		return RoleReader, nil
	case RoleModerator:
		return RoleModerator, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

// Staff reports whether the role carries staff privileges.
func (r Role) Staff() bool {
	return r == RoleModerator || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

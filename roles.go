package fantaleague

import (
	"fmt"
	"slices"
	"strings"
)

// Role is a tactical position tag of a player.
type Role string

// The role vocabulary, in display order.
const (
	Goalkeeper  Role = "POR"
	CenterBack  Role = "DC"
	Back        Role = "B"
	RightBack   Role = "DD"
	LeftBack    Role = "DS"
	Wingback    Role = "E"
	Midfielder  Role = "M"
	Central     Role = "C"
	Trequartist Role = "T"
	Winger      Role = "W"
	Forward     Role = "A"
	Striker     Role = "PC"
)

// RolesOrder lists every known role in display order.
var RolesOrder = []Role{
	Goalkeeper, CenterBack, Back, RightBack, LeftBack, Wingback,
	Midfielder, Central, Trequartist, Winger, Forward, Striker,
}

// ParseRole parses a role tag, case insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(RolesOrder, r) {
		return "", fmt.Errorf("%w %q", ErrInvalidRole, s)
	}
	return r, nil
}

// ParseRoles parses a list of roles separated by commas or slashes, e.g. "DC/B".
func ParseRoles(s string) ([]Role, error) {
	var roles []Role
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '/' || r == ';' }) {
		if strings.TrimSpace(f) == "" {
			continue
		}
		r, err := ParseRole(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RoleUser   Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RoleUser:
		return true
	default:
		return false
	}
}

func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return r, nil
}

// Home is the view path a role lands on after login.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleWorker:
		return "/worker"
	default:
		return "/"
	}
}

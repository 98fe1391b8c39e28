// Package access holds the role model and the single predicate every protected
// route and use case checks against.
package access

import (
	"errors"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "job_seeker"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrProfileNotFound = errors.New("profile not found")
)

// Staff are the roles allowed into the admin area.
var Staff = []Role{RoleAdmin, RoleModerator}

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleModerator, RoleEmployer, RoleJobSeeker:
		return r, true
	}
	return "", false
}

// SelfAssignable reports whether a user may pick the role at sign-up.
func (r Role) SelfAssignable() bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

func (i *Identity) Is(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func (i *Identity) IsStaff() bool {
	return i.Is(Staff...)
}

// CanAccess is true when the identity is resolved and holds one of the required
// roles. With no roles given any resolved identity passes.
func CanAccess(id *Identity, required ...Role) bool {
	if id == nil || id.UserID == "" {
		return false
	}
	if len(required) == 0 {
		return true
	}
	return id.Is(required...)
}

// Authorize is CanAccess with the failure class attached.
func Authorize(id *Identity, required ...Role) error {
	if id == nil || id.UserID == "" {
		return ErrUnauthenticated
	}
	if !CanAccess(id, required...) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOwner passes for the owner of a record or any of the override roles.
func AuthorizeOwner(id *Identity, ownerID string, override ...Role) error {
	if id == nil || id.UserID == "" {
		return ErrUnauthenticated
	}
	if ownerID != "" && id.UserID == ownerID {
		return nil
	}
	if id.Is(override...) {
		return nil
	}
	return ErrForbidden
}

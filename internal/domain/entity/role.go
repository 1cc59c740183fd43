package entity

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// RoleName is the unique name of a Role.
type RoleName string

const (
	// RoleUser is assigned to accounts provisioned through Google sign-in.
	RoleUser RoleName = "user"
	// RoleStudent marks accounts looking for accommodation.
	RoleStudent RoleName = "student"
	// RoleOwner marks accounts that list hostels.
	RoleOwner RoleName = "owner"
	// RoleAdmin marks operators.
	RoleAdmin RoleName = "admin"
)

var knownRoles = []RoleName{RoleUser, RoleStudent, RoleOwner, RoleAdmin}

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// KnownRoles lists the built-in role names.
func KnownRoles() []RoleName {
	return slices.Clone(knownRoles)
}

// NormalizeRoleName trims and lowercases a client-supplied role.
func NormalizeRoleName(s string) RoleName {
	return RoleName(strings.ToLower(strings.TrimSpace(s)))
}

// Role is shared by many users; a user references exactly one role.
type Role struct {
	ID   uuid.UUID
	Name RoleName
}

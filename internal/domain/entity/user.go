// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account, local or provisioned through OAuth.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // unique
	PhoneNo      string
	PasswordHash string // bcrypt; never the raw password
	RoleID       uuid.UUID
	Role         *Role // loaded alongside the user when available
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleName returns the name of the user's role, or "" when it was not loaded.
func (u *User) RoleName() RoleName {
	if u == nil || u.Role == nil {
		return ""
	}

	return u.Role.Name
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Student is the tenant profile attached to a user account.
type Student struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	UserName         string
	DOB              time.Time
	Country          string
	PermanentAddress string
	PresentAddress   string
	City             string
	PostalCode       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the landlord profile attached to a user account.
type Owner struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	HostelName  string
	Phone       string
	Address     string
	Curfew      bool
	Description string
	Distance    float64
	Location    string
	Rent        float64
	Files       string
	Bedrooms    int
	Bathrooms   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

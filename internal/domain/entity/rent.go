package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rent is the price for one sharing type (single, double, ...) of a hostel.
type Rent struct {
	ID          uuid.UUID
	HostelID    uuid.UUID
	SharingType string
	Rent        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

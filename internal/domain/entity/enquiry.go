package entity

import (
	"time"

	"github.com/google/uuid"
)

// Enquiry links a student to a hostel they asked about.
type Enquiry struct {
	ID        uuid.UUID
	HostelID  uuid.UUID
	StudentID uuid.UUID
	Enquiry   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

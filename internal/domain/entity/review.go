package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating a user leaves on a hostel.
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	HostelID  uuid.UUID
	Rating    int
	Text      string
	Image     string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

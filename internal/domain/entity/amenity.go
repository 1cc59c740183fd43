package entity

import (
	"time"

	"github.com/google/uuid"
)

// Amenities lists the facilities of a hostel. There is at most one per hostel.
type Amenities struct {
	ID            uuid.UUID
	HostelID      uuid.UUID
	Wifi          bool
	AC            bool
	Kitchen       bool
	Parking       bool
	Laundry       bool
	TV            bool
	FirstAid      bool
	Workspace     bool
	Security      bool
	CurrentBill   bool
	WaterBill     bool
	Food          bool
	Furniture     bool
	Bed           bool
	Water         bool
	StudentsCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

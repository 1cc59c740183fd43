package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hostel is a listing published by an owner account.
type Hostel struct {
	ID          uuid.UUID
	UserID      uuid.UUID // owning account
	HostelName  string
	Phone       string
	Address     string
	Curfew      bool
	Description string
	Distance    float64 // km to the nearest campus, as entered by the owner
	Location    string
	Rent        float64
	Gender      string
	Files       string
	Bedrooms    int
	Bathrooms   int
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID owns the hostel.
func (h *Hostel) OwnedBy(userID uuid.UUID) bool {
	return h != nil && h.UserID == userID
}

// HasCoordinates reports whether the listing can take part in nearby search.
func (h *Hostel) HasCoordinates() bool {
	return h.Latitude != nil && h.Longitude != nil
}

// NearbyHostel pairs a hostel with its great-circle distance from a query point.
type NearbyHostel struct {
	Hostel     *Hostel
	DistanceKm float64
}

package handler

import (
	"time"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// UserResponse is the public view of an account. The password hash never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhoneNo   string    `json:"phoneNo"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		PhoneNo:   u.PhoneNo,
		Role:      u.RoleName().String(),
		CreatedAt: u.CreatedAt,
	}
}

type HostelResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	HostelName  string    `json:"hostelName"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Curfew      bool      `json:"curfew"`
	Description string    `json:"description"`
	Distance    float64   `json:"distance"`
	Location    string    `json:"location"`
	Rent        float64   `json:"rent"`
	Gender      string    `json:"gender"`
	Files       string    `json:"files"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toHostelResponse(h *entity.Hostel) *HostelResponse {
	return &HostelResponse{
		ID:          h.ID,
		UserID:      h.UserID,
		HostelName:  h.HostelName,
		Phone:       h.Phone,
		Address:     h.Address,
		Curfew:      h.Curfew,
		Description: h.Description,
		Distance:    h.Distance,
		Location:    h.Location,
		Rent:        h.Rent,
		Gender:      h.Gender,
		Files:       h.Files,
		Bedrooms:    h.Bedrooms,
		Bathrooms:   h.Bathrooms,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// NearbyHostelResponse adds the distance from the query point.
type NearbyHostelResponse struct {
	*HostelResponse
	DistanceKm float64 `json:"distanceKm"`
}

type OwnerResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	HostelName  string    `json:"hostelName"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Curfew      bool      `json:"curfew"`
	Description string    `json:"description"`
	Distance    float64   `json:"distance"`
	Location    string    `json:"location"`
	Rent        float64   `json:"rent"`
	Files       string    `json:"files"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOwnerResponse(o *entity.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Name:        o.Name,
		HostelName:  o.HostelName,
		Phone:       o.Phone,
		Address:     o.Address,
		Curfew:      o.Curfew,
		Description: o.Description,
		Distance:    o.Distance,
		Location:    o.Location,
		Rent:        o.Rent,
		Files:       o.Files,
		Bedrooms:    o.Bedrooms,
		Bathrooms:   o.Bathrooms,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type StudentResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	UserName         string    `json:"userName"`
	DOB              time.Time `json:"dob"`
	Country          string    `json:"country"`
	PermanentAddress string    `json:"permanentAddress"`
	PresentAddress   string    `json:"presentAddress"`
	City             string    `json:"city"`
	PostalCode       string    `json:"postalCode"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toStudentResponse(s *entity.Student) *StudentResponse {
	return &StudentResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		UserName:         s.UserName,
		DOB:              s.DOB,
		Country:          s.Country,
		PermanentAddress: s.PermanentAddress,
		PresentAddress:   s.PresentAddress,
		City:             s.City,
		PostalCode:       s.PostalCode,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	HostelID  uuid.UUID `json:"hostelId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Image     string    `json:"image"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toReviewResponse(r *entity.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		HostelID:  r.HostelID,
		Rating:    r.Rating,
		Text:      r.Text,
		Image:     r.Image,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type AmenitiesResponse struct {
	ID            uuid.UUID `json:"id"`
	HostelID      uuid.UUID `json:"hostelId"`
	Wifi          bool      `json:"wifi"`
	AC            bool      `json:"ac"`
	Kitchen       bool      `json:"kitchen"`
	Parking       bool      `json:"parking"`
	Laundry       bool      `json:"laundry"`
	TV            bool      `json:"tv"`
	FirstAid      bool      `json:"firstAid"`
	Workspace     bool      `json:"workspace"`
	Security      bool      `json:"security"`
	CurrentBill   bool      `json:"currentBill"`
	WaterBill     bool      `json:"waterBill"`
	Food          bool      `json:"food"`
	Furniture     bool      `json:"furniture"`
	Bed           bool      `json:"bed"`
	Water         bool      `json:"water"`
	StudentsCount int       `json:"studentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAmenitiesResponse(a *entity.Amenities) *AmenitiesResponse {
	return &AmenitiesResponse{
		ID:            a.ID,
		HostelID:      a.HostelID,
		Wifi:          a.Wifi,
		AC:            a.AC,
		Kitchen:       a.Kitchen,
		Parking:       a.Parking,
		Laundry:       a.Laundry,
		TV:            a.TV,
		FirstAid:      a.FirstAid,
		Workspace:     a.Workspace,
		Security:      a.Security,
		CurrentBill:   a.CurrentBill,
		WaterBill:     a.WaterBill,
		Food:          a.Food,
		Furniture:     a.Furniture,
		Bed:           a.Bed,
		Water:         a.Water,
		StudentsCount: a.StudentsCount,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type RentResponse struct {
	ID          uuid.UUID `json:"id"`
	HostelID    uuid.UUID `json:"hostelId"`
	SharingType string    `json:"sharingType"`
	Rent        int       `json:"rent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRentResponse(r *entity.Rent) *RentResponse {
	return &RentResponse{
		ID:          r.ID,
		HostelID:    r.HostelID,
		SharingType: r.SharingType,
		Rent:        r.Rent,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type EnquiryResponse struct {
	ID        uuid.UUID `json:"id"`
	HostelID  uuid.UUID `json:"hostelId"`
	StudentID uuid.UUID `json:"studentId"`
	Enquiry   bool      `json:"enquiry"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toEnquiryResponse(e *entity.Enquiry) *EnquiryResponse {
	return &EnquiryResponse{
		ID:        e.ID,
		HostelID:  e.HostelID,
		StudentID: e.StudentID,
		Enquiry:   e.Enquiry,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

type FileResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	HostelID    *uuid.UUID `json:"hostelId,omitempty"`
	Key         string     `json:"key"`
	Location    string     `json:"location"`
	ETag        string     `json:"etag"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toFileResponse(f *entity.File) *FileResponse {
	return &FileResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		HostelID:    f.HostelID,
		Key:         f.Key,
		Location:    f.Location,
		ETag:        f.ETag,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt,
	}
}

// mapSlice converts a list of entities with fn.
func mapSlice[E, R any](items []*E, fn func(*E) *R) []*R {
	out := make([]*R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}

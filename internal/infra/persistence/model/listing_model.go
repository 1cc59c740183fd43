package model

import (
	"time"

	"github.com/google/uuid"
)

// HostelModel mirrors the 'hostels' table.
type HostelModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	User        *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	HostelName  string     `gorm:"type:varchar(255);not null"`
	Phone       string     `gorm:"type:varchar(20);not null"`
	Address     string     `gorm:"type:text;not null"`
	Curfew      bool       `gorm:"not null;default:false"`
	Description string     `gorm:"type:text"`
	Distance    float64
	Location    string `gorm:"type:varchar(255)"`
	Rent        float64
	Gender      string `gorm:"type:varchar(20)"`
	Files       string `gorm:"type:text"`
	Bedrooms    int
	Bathrooms   int
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (HostelModel) TableName() string {
	return "hostels"
}

// AmenityModel mirrors the 'amenities' table, one row per hostel.
type AmenityModel struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HostelID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Hostel        *HostelModel `gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE"`
	Wifi          bool         `gorm:"not null;default:false"`
	AC            bool         `gorm:"column:ac;not null;default:false"`
	Kitchen       bool         `gorm:"not null;default:false"`
	Parking       bool         `gorm:"not null;default:false"`
	Laundry       bool         `gorm:"not null;default:false"`
	TV            bool         `gorm:"column:tv;not null;default:false"`
	FirstAid      bool         `gorm:"not null;default:false"`
	Workspace     bool         `gorm:"not null;default:false"`
	Security      bool         `gorm:"not null;default:false"`
	CurrentBill   bool         `gorm:"not null;default:false"`
	WaterBill     bool         `gorm:"not null;default:false"`
	Food          bool         `gorm:"not null;default:false"`
	Furniture     bool         `gorm:"not null;default:false"`
	Bed           bool         `gorm:"not null;default:false"`
	Water         bool         `gorm:"not null;default:false"`
	StudentsCount int          `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AmenityModel) TableName() string {
	return "amenities"
}

// RentModel mirrors the 'rents' table.
type RentModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HostelID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_rents_hostel_sharing"`
	Hostel      *HostelModel `gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE"`
	SharingType string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_rents_hostel_sharing"`
	Rent        int          `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RentModel) TableName() string {
	return "rents"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	User      *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	HostelID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Hostel    *HostelModel `gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE"`
	Rating    int          `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Text      string       `gorm:"type:text"`
	Image     string       `gorm:"type:text"`
	Date      time.Time    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// EnquiryModel mirrors the 'enquiries' table.
type EnquiryModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HostelID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Hostel    *HostelModel  `gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE"`
	StudentID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Student   *StudentModel `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Enquiry   bool          `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EnquiryModel) TableName() string {
	return "enquiries"
}

// FileModel mirrors the 'files' table.
type FileModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	HostelID    *uuid.UUID `gorm:"type:uuid;index"`
	Key         string     `gorm:"type:varchar(255);unique;not null"`
	Location    string     `gorm:"type:text;not null"`
	ETag        string     `gorm:"column:e_tag;type:varchar(255)"`
	ContentType string     `gorm:"type:varchar(100)"`
	Size        int64
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FileModel) TableName() string {
	return "files"
}

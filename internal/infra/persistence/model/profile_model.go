package model

import (
	"time"

	"github.com/google/uuid"
)

// OwnerModel mirrors the 'owners' table.
type OwnerModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	User        *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string     `gorm:"type:varchar(100);not null"`
	HostelName  string     `gorm:"type:varchar(255)"`
	Phone       string     `gorm:"type:varchar(20)"`
	Address     string     `gorm:"type:text"`
	Curfew      bool       `gorm:"not null;default:false"`
	Description string     `gorm:"type:text"`
	Distance    float64
	Location    string `gorm:"type:varchar(255)"`
	Rent        float64
	Files       string `gorm:"type:text"`
	Bedrooms    int
	Bathrooms   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OwnerModel) TableName() string {
	return "owners"
}

// StudentModel mirrors the 'students' table. A user has at most one student profile.
type StudentModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;unique"`
	User             *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UserName         string     `gorm:"type:varchar(100);not null"`
	DOB              time.Time  `gorm:"column:dob;type:date"`
	Country          string     `gorm:"type:varchar(100)"`
	PermanentAddress string     `gorm:"type:text"`
	PresentAddress   string     `gorm:"type:text"`
	City             string     `gorm:"type:varchar(100)"`
	PostalCode       string     `gorm:"type:varchar(20)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (StudentModel) TableName() string {
	return "students"
}

// All lists every model in dependency order, for AutoMigrate and code generation.
func All() []any {
	return []any{
		&RoleModel{},
		&UserModel{},
		&RefreshSessionModel{},
		&HostelModel{},
		&OwnerModel{},
		&StudentModel{},
		&AmenityModel{},
		&RentModel{},
		&ReviewModel{},
		&EnquiryModel{},
		&FileModel{},
	}
}

// Package model holds the GORM persistence models. PostgreSQL generates
// primary keys through gen_random_uuid(). The types are exported so the GORM
// Gen tool in cmd/gen can build typed queries from them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// UserModel mirrors the 'users' table. Many users share one role.
type UserModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `gorm:"type:varchar(100);not null"`
	Email     string     `gorm:"type:varchar(255);unique;not null"`
	PhoneNo   string     `gorm:"column:phone_no;type:varchar(20)"`
	Password  string     `gorm:"type:varchar(255);not null"`
	RoleID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Role      *RoleModel `gorm:"foreignKey:RoleID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RefreshSessionModel mirrors the 'refresh_sessions' table.
type RefreshSessionModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash string     `gorm:"type:char(64);unique;not null"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshSessionModel) TableName() string {
	return "refresh_sessions"
}

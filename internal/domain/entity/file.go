package entity

import (
	"time"

	"github.com/google/uuid"
)

// File is the metadata of an object uploaded to blob storage.
type File struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	HostelID    *uuid.UUID
	Key         string
	Location    string // public URL
	ETag        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

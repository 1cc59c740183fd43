package service

import (
	"context"
	"io"
)

// StoredObject describes an object after it was written to storage.
type StoredObject struct {
	Key      string
	Location string
	ETag     string
	Size     int64
}

// FileStorage writes uploaded bytes to an object store.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

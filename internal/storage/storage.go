package storage

import (
	"context"
	"errors"
	"time"
)

// KeyPrefix is the fixed path prefix all report images are stored under.
const KeyPrefix = "pothole-images/"

var (
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrObjectNotFound     = errors.New("object not found")
)

// ObjectStorage uploads report images and issues time-limited read URLs.
type ObjectStorage interface {
	// Upload stores body under key and returns the public object URL.
	Upload(ctx context.Context, key string, body []byte) (string, error)
	// PresignGet returns a signed retrieval URL valid for expires.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	// Exists reports whether key resolves to a retrievable object.
	Exists(ctx context.Context, key string) (bool, error)
}

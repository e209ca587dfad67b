package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the opaque session id.
const CookieName = "session_id"

var ErrNotFound = errors.New("session not found")

// Data is the server-side session payload. The client only ever sees the
// opaque session id.
type Data struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IsStaff  bool      `json:"is_staff"`
}

// Store persists sessions keyed by opaque id.
type Store interface {
	Create(ctx context.Context, data Data, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (Data, error)
	Delete(ctx context.Context, id string) error
}

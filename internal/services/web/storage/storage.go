package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a draft does not exist or has expired.
var ErrNotFound = errors.New("draft not found")

// Draft is one saved quote waiting to be carried into the booking screen.
//
// Payload is an opaque JSON document owned by the handoff layer.
type Draft struct {
	ID        string
	Payload   []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the draft is no longer usable at now.
func (d Draft) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// DraftStore persists quote drafts.
type DraftStore interface {
	PutDraft(ctx context.Context, draft Draft) error
	GetDraft(ctx context.Context, id string, now time.Time) (Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full persistence lifecycle contract.
type Store interface {
	DraftStore
	Close() error
}

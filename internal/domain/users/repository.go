package users

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert inserts u when no row has u.ExternalID. Otherwise it writes only
	// the profile fields, bumping updated_at only when one of them changed.
	// It returns the stored row.
	Upsert(ctx context.Context, u User) (User, error)
	GetByExternalID(ctx context.Context, externalID string) (User, error)
	// SoftDelete returns ErrNotFound when no row matches.
	SoftDelete(ctx context.Context, externalID string, at time.Time) error
}

// Cache is an optional read-through cache of the projection keyed by
// external id.
type Cache interface {
	Get(ctx context.Context, externalID string) (User, bool, error)
	Set(ctx context.Context, u User) error
	Delete(ctx context.Context, externalID string) error
}

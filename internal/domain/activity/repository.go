package activity

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}

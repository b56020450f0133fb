package pets

import "context"

// Repository methods taking a userID match on it together with the pet id;
// a pet owned by someone else is reported as ErrNotFound.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetOwned(ctx context.Context, id, userID string) (Pet, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string) ([]Pet, error)
	// Update replaces every mutable field of the row (p.ID, p.UserID).
	Update(ctx context.Context, p Pet) error
	// Delete removes the row and, through the store, its dependent records.
	Delete(ctx context.Context, id, userID string) error
}

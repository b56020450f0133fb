package memory

import (
	"context"
	"sync"

	"pet-health-records/internal/domain/activity"
)

// ActivityRepo keeps entries in append order.
type ActivityRepo struct {
	mu      sync.RWMutex
	entries []activity.Entry
}

var _ activity.Repository = (*ActivityRepo)(nil)

func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	return nil
}

func (r *ActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Entry, 0)
	for i := len(r.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-health-records/internal/domain/records"
)

type RecordRepo struct {
	mu   sync.RWMutex
	byID map[string]records.Record
}

var _ records.Repository = (*RecordRepo)(nil)

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{
		byID: make(map[string]records.Record),
	}
}

func (r *RecordRepo) Create(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *RecordRepo) GetByID(ctx context.Context, petID, id string) (records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok || rec.PetID != petID {
		return records.Record{}, records.ErrNotFound
	}
	return rec, nil
}

func (r *RecordRepo) ListByPet(ctx context.Context, petID string, filter records.ListFilter) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = records.DefaultListLimit
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]records.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID != petID {
			continue
		}
		if len(filter.Types) > 0 && !hasType(filter.Types, rec.Type) {
			continue
		}
		if filter.From != nil && rec.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.OccurredAt.After(*filter.To) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(rec.Title+" "+rec.Notes), q) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RecordRepo) Void(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.PetID != petID {
		return records.ErrNotFound
	}
	rec.Status = records.StatusVoided
	r.byID[id] = rec
	return nil
}

// DeleteByPet implements PetDependents.
func (r *RecordRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

// CountByPet is used by tests to observe the cascade.
func (r *RecordRepo) CountByPet(petID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.byID {
		if rec.PetID == petID {
			n++
		}
	}
	return n
}

func hasType(types []records.RecordType, t records.RecordType) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-health-records/internal/domain/pets"
)

// PetDependents is notified when a pet is deleted so rows that reference it
// go too, mirroring ON DELETE CASCADE.
type PetDependents interface {
	DeleteByPet(ctx context.Context, petID string) error
}

type petRepo struct {
	mu         sync.RWMutex
	byID       map[string]pets.Pet
	dependents []PetDependents
}

func NewPetRepo(dependents ...PetDependents) pets.Repository {
	return &petRepo{
		byID:       make(map[string]pets.Pet),
		dependents: dependents,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetOwned(ctx context.Context, id, userID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[p.ID]
	if !ok || cur.UserID != p.UserID {
		return pets.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	cur, ok := r.byID[id]
	if !ok || cur.UserID != userID {
		r.mu.Unlock()
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	for _, d := range r.dependents {
		if err := d.DeleteByPet(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-health-records/internal/domain/users"
)

type userRepo struct {
	mu    sync.RWMutex
	byExt map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byExt: make(map[string]users.User),
	}
}

func (r *userRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ExternalID) == "" {
		return users.User{}, errors.New("external id required")
	}

	cur, ok := r.byExt[u.ExternalID]
	if !ok {
		r.byExt[u.ExternalID] = u
		return u, nil
	}

	if profileOf(u).Apply(&cur) {
		cur.UpdatedAt = u.UpdatedAt
	}
	r.byExt[u.ExternalID] = cur
	return cur, nil
}

func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byExt[externalID]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, externalID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byExt[externalID]
	if !ok {
		return users.ErrNotFound
	}
	u.DeletedAt = &at
	u.UpdatedAt = at
	r.byExt[externalID] = u
	return nil
}

func profileOf(u users.User) users.Profile {
	return users.Profile{
		ExternalID:       u.ExternalID,
		Email:            u.Email,
		Name:             u.Name,
		AvatarURL:        u.AvatarURL,
		Phone:            u.Phone,
		Timezone:         u.Timezone,
		Location:         u.Location,
		EmergencyContact: u.EmergencyContact,
		PreferredVet:     u.PreferredVet,
	}
}

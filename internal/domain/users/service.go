package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-health-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

const DefaultTimezone = "America/New_York"

type Service struct {
	repo  Repository
	cache Cache
	log   logger.Logger
	now   func() time.Time
}

// NewService wires the projection service. cache and log may be nil.
func NewService(repo Repository, cache Cache, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// SyncProfile creates the user with subscription defaults or updates its
// profile fields. Subscription, trial and credits are never touched on update.
func (s *Service) SyncProfile(ctx context.Context, p Profile) (User, error) {
	p.ExternalID = strings.TrimSpace(p.ExternalID)
	if p.ExternalID == "" {
		return User{}, ErrInvalidInput
	}
	if strings.TrimSpace(p.Timezone) == "" {
		p.Timezone = DefaultTimezone
	}

	now := s.now().UTC()
	u := User{
		ID:                 uuid.NewString(),
		ExternalID:         p.ExternalID,
		SubscriptionStatus: SubscriptionTrialPending,
		AICredits:          0,
		TrialStartsAt:      nil,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	p.Apply(&u)

	stored, err := s.repo.Upsert(ctx, u)
	if err != nil {
		return User{}, err
	}
	s.invalidate(ctx, p.ExternalID)
	return stored, nil
}

// SoftDelete marks the user deleted. ErrNotFound when there is no row.
func (s *Service) SoftDelete(ctx context.Context, externalID string) error {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.SoftDelete(ctx, externalID, s.now().UTC()); err != nil {
		return err
	}
	s.invalidate(ctx, externalID)
	return nil
}

// Resolve maps a session identity reference to a live user. Soft-deleted
// users resolve to ErrNotFound.
func (s *Service) Resolve(ctx context.Context, externalID string) (User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return User{}, ErrNotFound
	}

	if s.cache != nil {
		u, ok, err := s.cache.Get(ctx, externalID)
		if err != nil {
			s.log.Warn("user cache get failed", map[string]any{"external_id": externalID, "err": err})
		} else if ok {
			return liveOrNotFound(u)
		}
	}

	u, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return User{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			s.log.Warn("user cache set failed", map[string]any{"external_id": externalID, "err": err})
		} else if u, err = s.recheck(ctx, u); err != nil {
			return User{}, err
		}
	}
	return liveOrNotFound(u)
}

// recheck reads the row again after a cache fill and drops the entry when a
// write landed in between. The fresh row is returned.
func (s *Service) recheck(ctx context.Context, cached User) (User, error) {
	fresh, err := s.repo.GetByExternalID(ctx, cached.ExternalID)
	if err != nil {
		s.invalidate(ctx, cached.ExternalID)
		return User{}, err
	}
	if fresh.Deleted() != cached.Deleted() || !fresh.UpdatedAt.Equal(cached.UpdatedAt) {
		s.invalidate(ctx, cached.ExternalID)
	}
	return fresh, nil
}

func (s *Service) invalidate(ctx context.Context, externalID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, externalID); err != nil {
		s.log.Warn("user cache invalidate failed", map[string]any{"external_id": externalID, "err": err})
	}
}

func liveOrNotFound(u User) (User, error) {
	if u.Deleted() {
		return User{}, ErrNotFound
	}
	return u, nil
}

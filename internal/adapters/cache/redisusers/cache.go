// Package redisusers caches resolved user projections in Redis so that
// authenticated requests skip the users table on the hot path.
package redisusers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-health-records/internal/domain/users"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "user:ext:"

type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ users.Cache = (*Cache)(nil)

func New(client redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(externalID string) string {
	return fmt.Sprintf("%s%s", keyPrefix, externalID)
}

// Get reports ok=false on a miss.
func (c *Cache) Get(ctx context.Context, externalID string) (users.User, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(externalID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return users.User{}, false, nil
		}
		return users.User{}, false, fmt.Errorf("redis get: %w", err)
	}

	u, err := decode(raw)
	if err != nil {
		// A stale or foreign payload is treated as a miss and overwritten later.
		_ = c.client.Del(ctx, cacheKey(externalID)).Err()
		return users.User{}, false, nil
	}
	return u, true, nil
}

func (c *Cache) Set(ctx context.Context, u users.User) error {
	raw, err := encode(u)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, cacheKey(u.ExternalID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, externalID string) error {
	if err := c.client.Del(ctx, cacheKey(externalID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// cachedUser pins the wire shape so renaming domain fields does not silently
// invalidate every cached entry.
type cachedUser struct {
	ID                 string     `json:"id"`
	ExternalID         string     `json:"externalId"`
	Email              string     `json:"email"`
	Name               *string    `json:"name,omitempty"`
	AvatarURL          *string    `json:"avatarUrl,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Timezone           string     `json:"timezone"`
	Location           *string    `json:"location,omitempty"`
	EmergencyContact   *string    `json:"emergencyContact,omitempty"`
	PreferredVet       *string    `json:"preferredVet,omitempty"`
	SubscriptionStatus string     `json:"subscriptionStatus"`
	AICredits          int        `json:"aiCredits"`
	TrialStartsAt      *time.Time `json:"trialStartsAt,omitempty"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func encode(u users.User) ([]byte, error) {
	return json.Marshal(cachedUser{
		ID:                 u.ID,
		ExternalID:         u.ExternalID,
		Email:              u.Email,
		Name:               u.Name,
		AvatarURL:          u.AvatarURL,
		Phone:              u.Phone,
		Timezone:           u.Timezone,
		Location:           u.Location,
		EmergencyContact:   u.EmergencyContact,
		PreferredVet:       u.PreferredVet,
		SubscriptionStatus: string(u.SubscriptionStatus),
		AICredits:          u.AICredits,
		TrialStartsAt:      u.TrialStartsAt,
		DeletedAt:          u.DeletedAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	})
}

func decode(raw []byte) (users.User, error) {
	var c cachedUser
	if err := json.Unmarshal(raw, &c); err != nil {
		return users.User{}, err
	}
	if c.ID == "" || c.ExternalID == "" {
		return users.User{}, errors.New("incomplete cached user")
	}
	return users.User{
		ID:                 c.ID,
		ExternalID:         c.ExternalID,
		Email:              c.Email,
		Name:               c.Name,
		AvatarURL:          c.AvatarURL,
		Phone:              c.Phone,
		Timezone:           c.Timezone,
		Location:           c.Location,
		EmergencyContact:   c.EmergencyContact,
		PreferredVet:       c.PreferredVet,
		SubscriptionStatus: users.SubscriptionStatus(c.SubscriptionStatus),
		AICredits:          c.AICredits,
		TrialStartsAt:      c.TrialStartsAt,
		DeletedAt:          c.DeletedAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}, nil
}

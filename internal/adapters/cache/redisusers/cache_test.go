package redisusers

import (
	"context"
	"testing"
	"time"

	"pet-health-records/internal/domain/users"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_KeepsOptionalFields(t *testing.T) {
	name := "Ana"
	vet := "Dr. Ruiz"
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := users.User{
		ID:                 "7f1c1b0e-6a43-4d8e-9d69-5b8a0b2f3c11",
		ExternalID:         "user_1",
		Email:              "a@example.com",
		Name:               &name,
		PreferredVet:       &vet,
		Timezone:           "Europe/Madrid",
		SubscriptionStatus: users.SubscriptionStatus("TRIAL_PENDING"),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	raw, err := encode(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"externalId":"user_1"`)
	assert.NotContains(t, string(raw), "avatarUrl")

	out, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecode_RejectsIncompletePayload(t *testing.T) {
	_, err := decode([]byte(`{"email":"a@example.com"}`))
	assert.Error(t, err)

	_, err = decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "user:ext:user_42", cacheKey("user_42"))
}

func TestGet_SurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := New(client, time.Minute)
	_, ok, err := c.Get(context.Background(), "user_1")
	assert.False(t, ok)
	assert.Error(t, err)
}

package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo and cache
// -------------------------

type testRepo struct {
	byExt   map[string]User
	upserts int
	gets    int
	failErr error
	// afterGet runs once, right after the next read returns.
	afterGet func()
}

func newTestRepo() *testRepo {
	return &testRepo{byExt: map[string]User{}}
}

func (r *testRepo) Upsert(_ context.Context, u User) (User, error) {
	if r.failErr != nil {
		return User{}, r.failErr
	}
	r.upserts++
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

func (r *testRepo) GetByExternalID(_ context.Context, externalID string) (User, error) {
	r.gets++
	u, ok := r.byExt[externalID]
	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		defer hook()
	}
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) SoftDelete(_ context.Context, externalID string, at time.Time) error {
	u, ok := r.byExt[externalID]
	if !ok {
		return ErrNotFound
	}
	u.DeletedAt = &at
	u.UpdatedAt = at
	r.byExt[externalID] = u
	return nil
}

func profileOf(u User) Profile {
	return Profile{
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

type testCache struct {
	items   map[string]User
	deletes []string
	getErr  error
}

func newTestCache() *testCache { return &testCache{items: map[string]User{}} }

func (c *testCache) Get(_ context.Context, id string) (User, bool, error) {
	if c.getErr != nil {
		return User{}, false, c.getErr
	}
	u, ok := c.items[id]
	return u, ok, nil
}

func (c *testCache) Set(_ context.Context, u User) error {
	c.items[u.ExternalID] = u
	return nil
}

func (c *testCache) Delete(_ context.Context, id string) error {
	delete(c.items, id)
	c.deletes = append(c.deletes, id)
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService(repo Repository, cache Cache, start time.Time) (*Service, *time.Time) {
	now := start
	svc := NewService(repo, cache, nil)
	svc.now = func() time.Time { return now }
	return svc, &now
}

// -------------------------
// Tests
// -------------------------

func TestSyncProfile_CreatesWithDefaults(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, nil, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))

	u, err := svc.SyncProfile(context.Background(), Profile{
		ExternalID: "user_1",
		Email:      "a@example.com",
		Name:       strPtr("Ana Diaz"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, SubscriptionTrialPending, u.SubscriptionStatus)
	assert.Equal(t, 0, u.AICredits)
	assert.Nil(t, u.TrialStartsAt)
	assert.Equal(t, DefaultTimezone, u.Timezone)
	assert.Nil(t, u.DeletedAt)
}

func TestSyncProfile_UpdateKeepsBillingFields(t *testing.T) {
	repo := newTestRepo()
	svc, now := newTestService(repo, nil, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)

	// billing moved on independently
	stored := repo.byExt["user_1"]
	stored.SubscriptionStatus = SubscriptionActive
	stored.AICredits = 12
	repo.byExt["user_1"] = stored

	*now = now.Add(time.Hour)
	second, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1", Email: "b@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b@example.com", second.Email)
	assert.Equal(t, SubscriptionActive, second.SubscriptionStatus)
	assert.Equal(t, 12, second.AICredits)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestSyncProfile_ReplayIsIdempotent(t *testing.T) {
	repo := newTestRepo()
	svc, now := newTestService(repo, nil, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p := Profile{ExternalID: "user_1", Email: "a@example.com", Phone: strPtr("+15550100")}
	_, err := svc.SyncProfile(ctx, p)
	require.NoError(t, err)
	once := repo.byExt["user_1"]

	*now = now.Add(time.Minute)
	_, err = svc.SyncProfile(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, once, repo.byExt["user_1"])
}

func TestSyncProfile_RepoFailure(t *testing.T) {
	repo := newTestRepo()
	repo.failErr = errors.New("db down")
	svc, _ := newTestService(repo, nil, time.Now())

	_, err := svc.SyncProfile(context.Background(), Profile{ExternalID: "user_1"})
	require.Error(t, err)

	_, err = svc.SyncProfile(context.Background(), Profile{ExternalID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_SoftDeletedIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, nil, time.Now())
	ctx := context.Background()

	_, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "user_1")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, "user_1"))
	_, err = svc.Resolve(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.SoftDelete(ctx, "user_missing"), ErrNotFound)
}

func TestResolve_ReadThroughCache(t *testing.T) {
	repo := newTestRepo()
	cache := newTestCache()
	svc, _ := newTestService(repo, cache, time.Now())
	ctx := context.Background()

	_, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user_1"}, cache.deletes)

	u, err := svc.Resolve(ctx, "user_1")
	require.NoError(t, err)
	assert.Contains(t, cache.items, "user_1")

	// served from cache even if the repo row vanished
	delete(repo.byExt, "user_1")
	cached, err := svc.Resolve(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, cached.ID)

	// a failing cache falls back to the repo
	cache.getErr = errors.New("redis down")
	_, err = svc.Resolve(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_DeleteDuringCacheFillIsNotCached(t *testing.T) {
	repo := newTestRepo()
	cache := newTestCache()
	svc, now := newTestService(repo, cache, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1", Email: "a@example.com"})
	require.NoError(t, err)

	// user.deleted lands after the miss read and before the cache fill
	*now = now.Add(time.Minute)
	repo.afterGet = func() {
		require.NoError(t, svc.SoftDelete(ctx, "user_1"))
	}

	_, err = svc.Resolve(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, cache.items, "user_1")

	_, err = svc.Resolve(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, repo.byExt["user_1"].DeletedAt)
}

func TestResolve_DeleteAtSameInstantIsNotCached(t *testing.T) {
	repo := newTestRepo()
	cache := newTestCache()
	svc, _ := newTestService(repo, cache, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1"})
	require.NoError(t, err)
	repo.afterGet = func() {
		require.NoError(t, svc.SoftDelete(ctx, "user_1"))
	}

	_, err = svc.Resolve(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, cache.items, "user_1")
}

func TestResolve_CacheFillKeepsLiveUser(t *testing.T) {
	repo := newTestRepo()
	cache := newTestCache()
	svc, _ := newTestService(repo, cache, time.Now())
	ctx := context.Background()

	_, err := svc.SyncProfile(ctx, Profile{ExternalID: "user_1"})
	require.NoError(t, err)

	u, err := svc.Resolve(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets)
	assert.Equal(t, u, cache.items["user_1"])

	_, err = svc.Resolve(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets, "second resolve is served from cache")
}

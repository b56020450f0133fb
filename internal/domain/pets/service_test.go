package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-health-records/internal/domain/activity"
	"pet-health-records/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Pet{}} }

func (r *testRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetOwned(_ context.Context, id, userID string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByUser(_ context.Context, userID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	cur, ok := r.byID[p.ID]
	if !ok || cur.UserID != p.UserID {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(_ context.Context, id, userID string) error {
	cur, ok := r.byID[id]
	if !ok || cur.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type testOwners map[string]users.User

func (o testOwners) Resolve(_ context.Context, externalID string) (users.User, error) {
	u, ok := o[externalID]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

type testAudit struct {
	entries []activity.RecordInput
	err     error
}

func (a *testAudit) Record(_ context.Context, in activity.RecordInput) (activity.Entry, error) {
	if a.err != nil {
		return activity.Entry{}, a.err
	}
	a.entries = append(a.entries, in)
	return activity.Entry{}, nil
}

func strPtr(s string) *string { return &s }

func fltPtr(f float64) *float64 { return &f }

type fixture struct {
	svc   *Service
	repo  *testRepo
	audit *testAudit
}

func newFixture() fixture {
	repo := newTestRepo()
	audit := &testAudit{}
	owners := testOwners{
		"ext_alice": {ID: "u-alice", ExternalID: "ext_alice"},
		"ext_bob":   {ID: "u-bob", ExternalID: "ext_bob"},
	}
	svc := NewService(repo, owners, audit, nil)

	tick := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return fixture{svc: svc, repo: repo, audit: audit}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsAndAudit(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Create(context.Background(), "ext_alice", Input{Name: " Max ", Species: "DOG", Breed: strPtr("  ")})
	require.NoError(t, err)

	assert.Equal(t, "u-alice", p.UserID)
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Nil(t, p.Breed)
	assert.Nil(t, p.Weight)
	assert.False(t, p.IsNeutered)

	require.Len(t, f.audit.entries, 1)
	e := f.audit.entries[0]
	assert.Equal(t, activity.ActionPetCreated, e.Action)
	assert.Equal(t, activity.EntityPet, e.EntityType)
	assert.Equal(t, p.ID, e.EntityID)
	assert.Equal(t, activity.Metadata{"name": "Max", "species": "DOG"}, e.Metadata)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()

	cases := map[string]struct {
		in    Input
		field string
	}{
		"missing name":          {Input{Species: SpeciesCat}, "name"},
		"missing species":       {Input{Name: "Tom"}, "species"},
		"bad species":           {Input{Name: "Tom", Species: "FISH"}, "species"},
		"negative weight":       {Input{Name: "Tom", Species: SpeciesCat, Weight: fltPtr(-2)}, "weight"},
		"weight too big":        {Input{Name: "Tom", Species: SpeciesCat, Weight: fltPtr(MaxWeight)}, "weight"},
		"weight rounds to zero": {Input{Name: "Tom", Species: SpeciesCat, Weight: fltPtr(0.004)}, "weight"},
		"bad photo url":         {Input{Name: "Tom", Species: SpeciesCat, PhotoURL: strPtr("not a url")}, "photoUrl"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), "ext_alice", tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
	assert.Empty(t, f.audit.entries)
	assert.Empty(t, f.repo.byID)
}

func TestCreate_ZeroWeightIsNull(t *testing.T) {
	f := newFixture()
	p, err := f.svc.Create(context.Background(), "ext_alice", Input{Name: "Max", Species: "dog", Weight: fltPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, p.Weight)
	assert.Equal(t, SpeciesDog, p.Species)
}

func TestCreate_WeightRoundedToStoredPrecision(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "ext_alice", Input{Name: "Max", Species: SpeciesDog, Weight: fltPtr(25.555)})
	require.NoError(t, err)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 25.56, *p.Weight)
	assert.Equal(t, 25.56, *f.repo.byID[p.ID].Weight)

	updated, err := f.svc.Update(ctx, "ext_alice", p.ID, Input{Name: "Max", Species: SpeciesDog, Weight: fltPtr(99999.994)})
	require.NoError(t, err)
	assert.Equal(t, 99999.99, *updated.Weight)

	_, err = f.svc.Update(ctx, "ext_alice", p.ID, Input{Name: "Max", Species: SpeciesDog, Weight: fltPtr(99999.996)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOwnerIsolation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "ext_alice", Input{Name: "Max", Species: SpeciesDog})
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, "ext_alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := f.svc.List(ctx, "ext_bob")
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.svc.Get(ctx, "ext_bob", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Update(ctx, "ext_bob", p.ID, Input{Name: "Stolen", Species: SpeciesDog})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, "ext_bob", p.ID), ErrNotFound)

	got, err := f.svc.Get(ctx, "ext_alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Max", got.Name)
	assert.Len(t, f.audit.entries, 1, "failed mutations must not be audited")
}

func TestUpdate_IsFullReplacement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "ext_alice", Input{
		Name: "Max", Species: SpeciesDog, Breed: strPtr("Beagle"), IsNeutered: true, Weight: fltPtr(10),
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, "ext_alice", p.ID, Input{Name: "Max", Species: SpeciesDog, Weight: fltPtr(25.5)})
	require.NoError(t, err)

	assert.Nil(t, updated.Breed)
	assert.False(t, updated.IsNeutered)
	require.NotNil(t, updated.Weight)
	assert.InDelta(t, 25.5, *updated.Weight, 0.0001)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, activity.ActionPetUpdated, f.audit.entries[1].Action)
	assert.Equal(t, activity.Metadata{"name": "Max"}, f.audit.entries[1].Metadata)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "ext_alice", Input{Name: "Luna", Species: SpeciesCat})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "ext_alice", p.ID))
	_, err = f.svc.Get(ctx, "ext_alice", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, activity.ActionPetDeleted, f.audit.entries[1].Action)
	assert.Equal(t, activity.Metadata{"name": "Luna"}, f.audit.entries[1].Metadata)

	// unknown and malformed ids: 404, no audit
	assert.ErrorIs(t, f.svc.Delete(ctx, "ext_alice", p.ID), ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, "ext_alice", "not-a-uuid"), ErrNotFound)
	assert.Len(t, f.audit.entries, 2)
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	f := newFixture()
	f.audit.err = errors.New("activity table locked")

	p, err := f.svc.Create(context.Background(), "ext_alice", Input{Name: "Max", Species: SpeciesDog})
	require.NoError(t, err)
	assert.Contains(t, f.repo.byID, p.ID)
}

func TestUnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), "ext_nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.Create(context.Background(), "", Input{Name: "Max", Species: SpeciesDog})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package petcache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pet-health-records/internal/client/api"
	"pet-health-records/internal/client/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	mu   sync.Mutex
	pets []api.Pet
	err  error
	hits int
}

func (f *fakeLister) ListPets(context.Context) ([]api.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]api.Pet, len(f.pets))
	copy(out, f.pets)
	return out, nil
}

func (f *fakeLister) set(pets ...api.Pet) {
	f.mu.Lock()
	f.pets = pets
	f.mu.Unlock()
}

func pet(id, name string) api.Pet { return api.Pet{ID: id, Name: name, Species: "DOG"} }

func openPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	p, err := prefs.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestRefresh_SelectsFirstWhenEmpty(t *testing.T) {
	l := &fakeLister{}
	l.set(pet("p2", "Mochi"), pet("p1", "Rex"))
	s := New(l, nil, nil)
	assert.True(t, s.Loading())

	require.NoError(t, s.Refresh(context.Background()))
	assert.False(t, s.Loading())
	assert.Equal(t, []api.Pet{pet("p2", "Mochi"), pet("p1", "Rex")}, s.Pets())

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "p2", sel.ID)
}

func TestRefresh_ReResolvesSelection(t *testing.T) {
	l := &fakeLister{}
	l.set(pet("p2", "Mochi"), pet("p1", "Rex"))
	s := New(l, nil, nil)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	p1 := pet("p1", "Rex")
	require.NoError(t, s.Select(ctx, &p1))

	l.set(pet("p2", "Mochi"), pet("p1", "Rex II"))
	require.NoError(t, s.Refresh(ctx))

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Rex II", sel.Name, "selection points at fresh data")
}

func TestRefresh_SelectedPetDeletedFallsBack(t *testing.T) {
	l := &fakeLister{}
	l.set(pet("p2", "Mochi"), pet("p1", "Rex"))
	s := New(l, nil, nil)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	p1 := pet("p1", "Rex")
	require.NoError(t, s.Select(ctx, &p1))

	l.set(pet("p2", "Mochi"))
	require.NoError(t, s.Refresh(ctx))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "p2", sel.ID)

	l.set()
	require.NoError(t, s.Refresh(ctx))
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.Pets())
}

func TestRefresh_ErrorKeepsState(t *testing.T) {
	l := &fakeLister{}
	l.set(pet("p1", "Rex"))
	s := New(l, nil, nil)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	l.err = errors.New("network down")
	err := s.Refresh(ctx)
	require.Error(t, err)
	assert.False(t, s.Loading())
	assert.Len(t, s.Pets(), 1)
	_, ok := s.Selected()
	assert.True(t, ok)
}

func TestRefresh_FirstFetchFailsClearsLoading(t *testing.T) {
	s := New(&fakeLister{err: errors.New("boom")}, nil, nil)
	require.Error(t, s.Refresh(context.Background()))
	assert.False(t, s.Loading())
	assert.Empty(t, s.Pets())
}

func TestMount_RestoresPersistedSelection(t *testing.T) {
	ctx := context.Background()
	p := openPrefs(t)
	require.NoError(t, p.SetSelectedPetID(ctx, "p1"))

	l := &fakeLister{}
	l.set(pet("p2", "Mochi"), pet("p1", "Rex"))
	s := New(l, p, nil)
	require.NoError(t, s.Mount(ctx))

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "p1", sel.ID)
}

func TestMount_UnknownPersistedIDKeepsRefreshSelection(t *testing.T) {
	ctx := context.Background()
	p := openPrefs(t)
	require.NoError(t, p.SetSelectedPetID(ctx, "gone"))

	l := &fakeLister{}
	l.set(pet("p2", "Mochi"), pet("p1", "Rex"))
	s := New(l, p, nil)
	require.NoError(t, s.Mount(ctx))

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "p2", sel.ID)
}

func TestSelect_Persists(t *testing.T) {
	ctx := context.Background()
	p := openPrefs(t)
	l := &fakeLister{}
	l.set(pet("p1", "Rex"))
	s := New(l, p, nil)

	rex := pet("p1", "Rex")
	require.NoError(t, s.Select(ctx, &rex))
	id, ok, err := p.SelectedPetID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p1", id)

	require.NoError(t, s.Select(ctx, nil))
	_, ok, err = p.SelectedPetID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	l := &fakeLister{}
	l.set(pet("p1", "Rex"), pet("p2", "Mochi"))
	s := New(l, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Refresh(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = s.Pets()
			_, _ = s.Selected()
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, l.hits)
	assert.Len(t, s.Pets(), 2)
}

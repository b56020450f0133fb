// Package petcache keeps the signed-in user's pet list and the currently
// selected pet for the lifetime of a client session.
package petcache

import (
	"context"
	"sync"

	"pet-health-records/internal/client/api"
	"pet-health-records/internal/platform/logger"
)

type Lister interface {
	ListPets(ctx context.Context) ([]api.Pet, error)
}

// SelectionStore persists the selected pet id between sessions.
type SelectionStore interface {
	SelectedPetID(ctx context.Context) (string, bool, error)
	SetSelectedPetID(ctx context.Context, id string) error
}

type Store struct {
	lister Lister
	prefs  SelectionStore
	log    logger.Logger

	mu       sync.RWMutex
	pets     []api.Pet
	selected *api.Pet
	loading  bool
}

// New builds an empty store in the loading state. prefs and log may be nil.
func New(lister Lister, prefs SelectionStore, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{lister: lister, prefs: prefs, log: log, loading: true}
}

// Refresh replaces the cached list with the server's. A fetch error leaves
// the list and selection untouched. Concurrent calls are not coalesced: the
// last response to arrive wins.
func (s *Store) Refresh(ctx context.Context) error {
	list, err := s.lister.ListPets(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.log.Warn("pet list refresh failed", map[string]any{"err": err})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pets = list
	s.loading = false
	s.selected = reselect(list, s.selected)
	return nil
}

// reselect keeps the selection pointing at fresh data. When the selected pet
// is gone it falls back to the first pet, or to none.
func reselect(list []api.Pet, cur *api.Pet) *api.Pet {
	if cur != nil {
		if p, ok := find(list, cur.ID); ok {
			return p
		}
	}
	if len(list) == 0 {
		return nil
	}
	first := list[0]
	return &first
}

func find(list []api.Pet, id string) (*api.Pet, bool) {
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, true
		}
	}
	return nil, false
}

// Select sets the selection and persists its id. A nil pet clears it.
// Persistence failures are returned after the in-memory selection changed.
func (s *Store) Select(ctx context.Context, p *api.Pet) error {
	var id string
	s.mu.Lock()
	if p == nil {
		s.selected = nil
	} else {
		cp := *p
		s.selected = &cp
		id = cp.ID
	}
	s.mu.Unlock()

	if s.prefs == nil {
		return nil
	}
	return s.prefs.SetSelectedPetID(ctx, id)
}

// Mount runs the initial refresh, then restores the persisted selection when
// that pet is still in the list.
func (s *Store) Mount(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	if s.prefs == nil {
		return nil
	}

	id, ok, err := s.prefs.SelectedPetID(ctx)
	if err != nil {
		s.log.Warn("restore selected pet failed", map[string]any{"err": err})
		return nil
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, found := find(s.pets, id); found {
		s.selected = p
	}
	return nil
}

// Pets returns a copy of the cached list in server order.
func (s *Store) Pets() []api.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

func (s *Store) Selected() (api.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return api.Pet{}, false
	}
	return *s.selected, true
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

package records

import (
	"context"
	"testing"
	"time"

	"pet-health-records/internal/domain/activity"
	"pet-health-records/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Record
}

func (r *testRepo) Create(_ context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(_ context.Context, petID, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok || rec.PetID != petID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string, filter ListFilter) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Void(_ context.Context, petID, id string) error {
	rec, ok := r.byID[id]
	if !ok || rec.PetID != petID {
		return ErrNotFound
	}
	rec.Status = StatusVoided
	r.byID[id] = rec
	return nil
}

// testPets owns a single pet for "ext_alice".
type testPets struct {
	pet pets.Pet
}

func (p testPets) Get(_ context.Context, identityRef, petID string) (pets.Pet, error) {
	if identityRef != "ext_alice" || petID != p.pet.ID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p.pet, nil
}

type testAudit struct {
	actions []activity.Action
}

func (a *testAudit) Record(_ context.Context, in activity.RecordInput) (activity.Entry, error) {
	a.actions = append(a.actions, in.Action)
	return activity.Entry{}, nil
}

func newTestService() (*Service, *testRepo, *testAudit, pets.Pet) {
	pet := pets.Pet{ID: uuid.NewString(), UserID: "u-alice", Name: "Max"}
	repo := &testRepo{byID: map[string]Record{}}
	audit := &testAudit{}
	return NewService(repo, testPets{pet: pet}, audit, nil), repo, audit, pet
}

func TestCreateAndVoid(t *testing.T) {
	svc, repo, audit, pet := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, "ext_alice", pet.ID, CreateInput{
		Type:       TypeVaccine,
		OccurredAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		Title:      " Rabies ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rabies", rec.Title)
	assert.Equal(t, StatusActive, rec.Status)
	assert.Equal(t, "u-alice", rec.CreatedBy)

	voided, err := svc.Void(ctx, "ext_alice", pet.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusVoided, voided.Status)
	assert.Equal(t, StatusVoided, repo.byID[rec.ID].Status)

	_, err = svc.Void(ctx, "ext_alice", pet.ID, rec.ID)
	assert.ErrorIs(t, err, ErrAlreadyVoided)

	assert.Equal(t, []activity.Action{activity.ActionRecordCreated, activity.ActionRecordVoided}, audit.actions)
}

func TestCreate_Rejects(t *testing.T) {
	svc, _, audit, pet := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "ext_bob", pet.ID, CreateInput{Type: TypeNote, OccurredAt: time.Now(), Title: "x"})
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = svc.Create(ctx, "ext_alice", pet.ID, CreateInput{Type: "BATH", OccurredAt: time.Now(), Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "ext_alice", pet.ID, CreateInput{Type: TypeNote, Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Void(ctx, "ext_alice", pet.ID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, audit.actions)
}

package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	entries []Entry
	limit   int
}

func (r *testRepo) Append(_ context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByUser(_ context.Context, userID string, limit int) ([]Entry, error) {
	r.limit = limit
	out := make([]Entry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func TestRecord_BoundsMetadata(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	md := Metadata{}
	for i := 0; i < 20; i++ {
		md[fmt.Sprintf("k%02d", i)] = "v"
	}

	e, err := svc.Record(context.Background(), RecordInput{
		UserID:     "u1",
		Action:     ActionPetCreated,
		EntityType: EntityPet,
		EntityID:   "p1",
		Metadata:   md,
	})
	require.NoError(t, err)

	assert.Len(t, e.Metadata, MaxMetadataKeys)
	assert.Contains(t, e.Metadata, "k00")
	assert.NotContains(t, e.Metadata, "k19")
	assert.Len(t, repo.entries, 1)
}

func TestRecord_RequiresUserAndAction(t *testing.T) {
	svc := NewService(&testRepo{})
	_, err := svc.Record(context.Background(), RecordInput{Action: ActionPetCreated, EntityType: EntityPet})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByUser_ClampsLimit(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	_, err := svc.ListByUser(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, repo.limit)

	_, err = svc.ListByUser(context.Background(), "u1", 10_000)
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, repo.limit)
}

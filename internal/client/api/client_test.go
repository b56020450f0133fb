package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-health-records/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	hc, err := httpclient.New(srv.URL, 0)
	require.NoError(t, err)
	hc.Token = func(context.Context) (string, error) { return "tok_123", nil }
	return New(hc)
}

func TestListPets_SendsBearerAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pets", r.URL.Path)
		assert.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p2","name":"Mochi","species":"CAT","weight":4.2,"breed":null},{"id":"p1","name":"Rex","species":"DOG"}]`))
	})

	pets, err := c.ListPets(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "p2", pets[0].ID)
	require.NotNil(t, pets[0].Weight)
	assert.InDelta(t, 4.2, *pets[0].Weight, 0.0001)
	assert.Nil(t, pets[0].Breed)
}

func TestCreatePet_PostsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Rex", body["name"])
		assert.Equal(t, false, body["isNeutered"])
		assert.NotContains(t, body, "breed")
		_, _ = w.Write([]byte(`{"id":"p1","name":"Rex","species":"DOG","isNeutered":false}`))
	})

	p, err := c.CreatePet(context.Background(), PetInput{Name: "Rex", Species: "DOG"})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestDeletePet_NotFoundSurfacesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pets/p404", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"pet not found"}`))
	})

	err := c.DeletePet(context.Background(), "p404")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpclient.StatusCode(err))
}

func TestDeletePet_RequiresConfirmation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	require.NoError(t, c.DeletePet(context.Background(), "p1"))

	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	assert.Error(t, c.DeletePet(context.Background(), "p1"))
}

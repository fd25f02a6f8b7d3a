package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbitcare/internal/game"
)

func TestClientLoad(t *testing.T) {
	st := game.DefaultState(1_700_000_000_000)
	st.Hearts = 33
	st.LastSaveTime = 1_700_000_100_000

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/game/dev-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": st})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dev-1", nil)
	got, ok := c.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, 33, got.Hearts)
	assert.Equal(t, int64(1_700_000_100_000), got.LastSaveTime)
}

func TestClientLoadServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	c := NewClient(srv.URL, "dev-1", nil)
	_, ok := c.Load(context.Background())
	assert.False(t, ok)
}

func TestClientLoadRejectedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "database unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dev-1", nil)
	_, ok := c.Load(context.Background())
	assert.False(t, ok)
}

func TestClientSave(t *testing.T) {
	var got game.State
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/game/dev-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	st := game.DefaultState(1)
	st.Hearts = 12

	c := NewClient(srv.URL, "dev-1", nil)
	assert.True(t, c.Save(context.Background(), st))
	assert.Equal(t, 12, got.Hearts)
}

func TestClientDelete(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted = true
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dev-1", nil)
	assert.True(t, c.Delete(context.Background()))
	assert.True(t, deleted)
}

func TestDeviceIDStable(t *testing.T) {
	dir := t.TempDir()

	first := DeviceID(dir)
	require.NotEmpty(t, first)
	assert.Equal(t, first, DeviceID(dir))

	// A different data directory gets its own identity.
	assert.NotEqual(t, first, DeviceID(t.TempDir()))
}

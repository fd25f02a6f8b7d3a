package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbitcare/internal/game"
)

func newFileStoreForTest(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), "save", nil)
	require.NoError(t, err)
	return s
}

func TestFileStoreMissingFileIsFresh(t *testing.T) {
	s := newFileStoreForTest(t)

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newFileStoreForTest(t)

	st := game.DefaultState(1_700_000_000_000)
	st.Hearts = 75
	st.TotalHeartsEarned = 125
	st.Level = 2
	st.UnlockedItems = []string{"blue-hat"}
	st.Equipment.Head = "blue-hat"
	st.Poops = []game.Poop{{ID: 3, X: 40, Y: 50}}

	require.NoError(t, s.Save(st))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, st, got)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	s := newFileStoreForTest(t)

	st := game.DefaultState(1)
	require.NoError(t, s.Save(st))
	st.Hearts = 10
	require.NoError(t, s.Save(st))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, got.Hearts)
}

func TestFileStoreCorruptFileIsFresh(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "save", nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "save.json"), []byte("{not json"), 0644))

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreFutureVersionIsFresh(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "save", nil)
	require.NoError(t, err)

	blob := []byte(`{"version": 99, "state": {"hearts": 5}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "save.json"), blob, 0644))

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreMigratesV1Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "save", nil)
	require.NoError(t, err)

	// Bare state object from before the version envelope existed.
	blob := []byte(`{
		"hungerLevel": 1,
		"cleanLevel": 2,
		"happyLevel": 1,
		"currentOutfit": "star-cape",
		"unlockedOutfits": ["star-cape", "pink-dress"],
		"lastInteraction": 1700000000000
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "save.json"), blob, 0644))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, got.HungerLevel)
	assert.Equal(t, "star-cape", got.Equipment.Body)
	assert.Equal(t, []string{"star-cape", "pink-dress"}, got.UnlockedItems)
	assert.Equal(t, 0, got.Hearts)
	assert.Equal(t, int64(1_700_000_000_000), got.LastInteraction)
}

func TestFileStoreMigratesV2Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "save", nil)
	require.NoError(t, err)

	blob := []byte(`{
		"version": 2,
		"state": {
			"hungerLevel": 2,
			"hearts": 40,
			"totalHeartsEarned": 140,
			"level": 2,
			"background": "garden",
			"unlockedItems": ["blue-hat"]
		}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "save.json"), blob, 0644))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 40, got.Hearts)
	assert.Equal(t, "garden", got.CurrentBackground)
	assert.Equal(t, []string{"garden"}, got.UnlockedBackgrounds)
	assert.Equal(t, []string{"blue-hat"}, got.UnlockedItems)
}

func TestFileStoreCurrentVersionNotRewritten(t *testing.T) {
	s := newFileStoreForTest(t)

	st := game.DefaultState(1)
	st.CurrentBackground = "room"
	require.NoError(t, s.Save(st))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	// A v3 save passes through the migration chain unchanged.
	assert.Equal(t, st, got)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	st := game.DefaultState(1)
	st.Hearts = 7
	require.NoError(t, s.Save(st))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, got.Hearts)

	// The stored copy is isolated from later caller mutations.
	st.Hearts = 99
	got, _, _ = s.Load()
	assert.Equal(t, 7, got.Hearts)
}

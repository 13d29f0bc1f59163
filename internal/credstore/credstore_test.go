package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRequiresDir(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
	_, err = Open("   ")
	assert.Error(t, err)
}

func TestCredentialsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	_, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetCredentials("tok-1", "u-1"))

	token, userID, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "u-1", userID)
}

func TestSetCredentialsOverwrites(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetCredentials("tok-1", "u-1"))
	require.NoError(t, store.SetCredentials("tok-2", "u-2"))

	token, userID, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, "u-2", userID)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetCredentials("tok-1", "u-1"))
	require.NoError(t, store.Clear())

	_, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials("tok-1", "u-1"))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	token, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

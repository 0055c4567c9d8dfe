package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()

	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return storage
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := newTestFileStorage(t)

	_, ok := storage.Get("institutionId")
	assert.False(t, ok, "missing key reads as absent")

	require.NoError(t, storage.Set("institutionId", "inst-9"))
	require.NoError(t, storage.Set("role", "ADMIN"))

	v, ok := storage.Get("institutionId")
	require.True(t, ok)
	assert.Equal(t, "inst-9", v)

	v, ok = storage.Get("role")
	require.True(t, ok)
	assert.Equal(t, "ADMIN", v)

	require.NoError(t, storage.Delete("role"))
	_, ok = storage.Get("role")
	assert.False(t, ok, "deleted key reads as absent")

	// The other slot is untouched
	v, ok = storage.Get("institutionId")
	require.True(t, ok)
	assert.Equal(t, "inst-9", v)
}

func TestFileStorageDeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, storage.Set("role", "ADMIN"))
	require.NoError(t, storage.Delete("role"))

	// The key must be gone from the file, not written as an empty string
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	_, present := values["role"]
	assert.False(t, present)
}

func TestFileStorageDeleteAbsentKey(t *testing.T) {
	storage := newTestFileStorage(t)
	assert.NoError(t, storage.Delete("nothing-here"))
}

func TestFileStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("employeeId", "emp-1"))

	second, err := NewFileStorage(path)
	require.NoError(t, err)

	v, ok := second.Get("employeeId")
	require.True(t, ok)
	assert.Equal(t, "emp-1", v)
}

func TestFileStorageCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")

	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.Set("role", "ADMIN"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	storage, err := NewFileStorage(path)
	require.Error(t, err, "an unparseable existing file is reported")
	require.NotNil(t, storage, "the storage stays usable")

	// Reads act as empty rather than trusting garbage
	_, ok := storage.Get("role")
	assert.False(t, ok)

	// The next write replaces the broken file
	require.NoError(t, storage.Set("role", "ADMIN"))

	v, ok := storage.Get("role")
	require.True(t, ok)
	assert.Equal(t, "ADMIN", v)
}

func TestFileStorageEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	_, ok := storage.Get("role")
	assert.False(t, ok)
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	_, ok := storage.Get("role")
	assert.False(t, ok)

	require.NoError(t, storage.Set("role", "PUBLISHER"))
	v, ok := storage.Get("role")
	require.True(t, ok)
	assert.Equal(t, "PUBLISHER", v)

	require.NoError(t, storage.Delete("role"))
	_, ok = storage.Get("role")
	assert.False(t, ok)
}

package pumpd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "eeprom.db")

	storage, release, err := OpenStorage(StorageConfig{Driver: StorageBolt, Path: path})
	require.NoError(t, err)

	p := NewPersistence(storage, discard())
	s := DefaultSettings()
	assert.True(t, p.Restore(&s))
	require.NoError(t, release())

	storage, release, err = OpenStorage(StorageConfig{Driver: StorageBolt, Path: path})
	require.NoError(t, err)
	defer release()

	image, err := storage.Dump()
	require.NoError(t, err)
	assert.Equal(t, SavedMarker, image[AddrSaved])

	memory, release, err := OpenStorage(StorageConfig{Driver: StorageMemory})
	require.NoError(t, err)
	assert.NoError(t, release())

	b, err := memory.Read(AddrSaved)
	require.NoError(t, err)
	assert.NotEqual(t, SavedMarker, b)
}

package pumpd

import (
	"testing"

	"github.com/mdouchement/pumpd/eeprom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceFirstRun(t *testing.T) {
	for _, marker := range []byte{eeprom.Erased, 0x00, SavedMarker - 1, SavedMarker + 1} {
		storage := newRecorder()
		require.NoError(t, storage.Write(AddrSaved, marker))
		require.NoError(t, storage.Write(AddrUnitsPerMinute, 0x42))

		p := NewPersistence(storage, discard())

		s := DefaultSettings()
		assert.True(t, p.Load(&s))
		assert.Equal(t, DefaultSettings(), s)

		p.Save(s)
		b, err := storage.Read(AddrSaved)
		require.NoError(t, err)
		assert.Equal(t, SavedMarker, b)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := eeprom.NewMemory()
	p := NewPersistence(storage, discard())

	saved := Settings{
		StepsPerRevolution: 800,
		UnitsPerRevolution: 0xBEEF,
		UnitsPerRun:        0xABCDEF,
		UnitsPerMinute:     472,
		Forward:            false,
	}
	p.Save(saved)

	loaded := DefaultSettings()
	assert.False(t, p.Load(&loaded))
	assert.Equal(t, saved, loaded)

	image, err := storage.Dump()
	require.NoError(t, err)
	assert.Equal(t, SavedMarker, image[AddrSaved])
	assert.Equal(t, []byte{0xEF, 0xBE}, image[AddrUnitsPerRevolution:AddrUnitsPerRevolution+2])
	assert.Equal(t, []byte{0xEF, 0xCD, 0xAB}, image[AddrUnitsPerRun:AddrUnitsPerRun+3])
	assert.Equal(t, []byte{0xD8, 0x01}, image[AddrUnitsPerMinute:AddrUnitsPerMinute+2])
	assert.Equal(t, byte(0), image[AddrDirection])
	assert.Equal(t, eeprom.Erased, image[AddrStepsPerRevolution])
}

func TestPersistenceClampsVolume(t *testing.T) {
	storage := eeprom.NewMemory()
	p := NewPersistence(storage, discard())

	s := DefaultSettings()
	s.UnitsPerRun = 0x1FFFFFF
	p.Save(s)

	assert.False(t, p.Load(&s))
	assert.EqualValues(t, MaxUnitsPerRun, s.UnitsPerRun)
}

func TestPersistenceRestore(t *testing.T) {
	storage := newRecorder()
	p := NewPersistence(storage, discard())

	s := DefaultSettings()
	assert.True(t, p.Restore(&s))
	assert.Equal(t, 1, storage.writes[AddrSaved])

	s.UnitsPerMinute = 1000
	assert.False(t, p.Restore(&s))
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, 1, storage.writes[AddrSaved])
}

func TestPersistenceStorageFailure(t *testing.T) {
	p := NewPersistence(broken{}, discard())

	s := DefaultSettings()
	assert.NotPanics(t, func() {
		assert.True(t, p.Restore(&s))
	})
	assert.Equal(t, DefaultSettings(), s)
}

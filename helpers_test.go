package pumpd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd/eeprom"
)

func discard() logger.Logger {
	return logger.WrapSlogHandler(slog.NewTextHandler(io.Discard, nil))
}

// recorder wraps a storage image and counts writes per address.
type recorder struct {
	*eeprom.Memory
	writes map[uint16]int
}

func newRecorder() *recorder {
	return &recorder{
		Memory: eeprom.NewMemory(),
		writes: map[uint16]int{},
	}
}

func (r *recorder) Write(addr uint16, b byte) error {
	r.writes[addr]++
	return r.Memory.Write(addr, b)
}

// broken fails every access.
type broken struct{}

var errBroken = errors.New("broken storage")

func (broken) Read(uint16) (byte, error) { return 0, errBroken }
func (broken) Write(uint16, byte) error  { return errBroken }

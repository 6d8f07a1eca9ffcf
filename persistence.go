package pumpd

import (
	"fmt"

	"github.com/mdouchement/logger"
)

// SavedMarker is written at AddrSaved once the image holds a Settings record.
const SavedMarker byte = 132

// Storage map. Multi-byte fields are little-endian.
const (
	AddrSaved              uint16 = 0x00
	AddrStepsPerRevolution uint16 = 0x04 // reserved, never read nor written
	AddrUnitsPerRevolution uint16 = 0x08
	AddrUnitsPerRun        uint16 = 0x12
	AddrUnitsPerMinute     uint16 = 0x16
	AddrDirection          uint16 = 0x20
)

// Persistence loads and saves Settings in a byte-addressed Storage.
// Storage failures are logged and otherwise ignored.
type Persistence struct {
	storage Storage
	log     logger.Logger
}

func NewPersistence(storage Storage, log logger.Logger) *Persistence {
	return &Persistence{
		storage: storage,
		log:     log,
	}
}

// Load overwrites s with the stored record. When the storage was never
// written, s is left untouched and Load reports a first run.
func (p *Persistence) Load(s *Settings) (firstRun bool) {
	if p.read(AddrSaved) != SavedMarker {
		return true
	}

	s.Forward = p.read(AddrDirection) != 0
	s.UnitsPerRevolution = uint16(p.readLE(AddrUnitsPerRevolution, 2))
	s.UnitsPerMinute = uint16(p.readLE(AddrUnitsPerMinute, 2))
	s.UnitsPerRun = p.readLE(AddrUnitsPerRun, 3)
	return false
}

// Save writes the marker followed by every persisted field.
func (p *Persistence) Save(s Settings) {
	p.write(AddrSaved, SavedMarker)

	var dir byte
	if s.Forward {
		dir = 1
	}
	p.write(AddrDirection, dir)

	p.writeLE(AddrUnitsPerRevolution, uint32(s.UnitsPerRevolution), 2)
	p.writeLE(AddrUnitsPerMinute, uint32(s.UnitsPerMinute), 2)
	p.writeLE(AddrUnitsPerRun, Clamp24(s.UnitsPerRun), 3)
}

// Restore loads s or, on first run, seeds the storage with s.
func (p *Persistence) Restore(s *Settings) (firstRun bool) {
	firstRun = p.Load(s)
	if firstRun {
		p.log.Info("No saved settings, writing factory defaults")
		p.Save(*s)
	}
	return firstRun
}

func (p *Persistence) read(addr uint16) byte {
	b, err := p.storage.Read(addr)
	if err != nil {
		p.log.WithError(err).Error(fmt.Sprintf("Could not read storage at 0x%02X", addr))
	}
	return b
}

func (p *Persistence) write(addr uint16, b byte) {
	if err := p.storage.Write(addr, b); err != nil {
		p.log.WithError(err).Error(fmt.Sprintf("Could not write storage at 0x%02X", addr))
	}
}

func (p *Persistence) readLE(addr uint16, n int) uint32 {
	var v uint32
	for i := range n {
		v |= uint32(p.read(addr+uint16(i))) << (8 * i)
	}
	return v
}

func (p *Persistence) writeLE(addr uint16, v uint32, n int) {
	for i := range n {
		p.write(addr+uint16(i), byte(v>>(8*i)))
	}
}

package pumpd

import (
	"github.com/mdouchement/pumpd/eeprom"
)

// An Image is a Storage that can be dumped.
type Image interface {
	Storage
	Dump() ([]byte, error)
}

// OpenStorage opens the image selected by the storage config.
// The returned function releases it.
func OpenStorage(cfg StorageConfig) (Image, func() error, error) {
	if cfg.Driver == StorageMemory {
		return eeprom.NewMemory(), func() error { return nil }, nil
	}

	db, err := eeprom.OpenBolt(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// Package eeprom implements byte-addressed non-volatile images.
package eeprom

import (
	"errors"
	"fmt"
)

// Size is the addressable space of the image in bytes.
const Size = 64

// Erased is the value of a cell that has never been written.
const Erased byte = 0xFF

var ErrOutOfRange = errors.New("address out of range")

func check(addr uint16) error {
	if addr >= Size {
		return fmt.Errorf("0x%02X: %w", addr, ErrOutOfRange)
	}
	return nil
}

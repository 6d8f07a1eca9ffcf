package eeprom

import "sync"

// A Memory image lives only as long as the process. It is meant for dev & tests.
type Memory struct {
	sync  sync.Mutex
	cells [Size]byte
}

func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.cells {
		m.cells[i] = Erased
	}
	return m
}

func (m *Memory) Read(addr uint16) (byte, error) {
	if err := check(addr); err != nil {
		return 0, err
	}

	m.sync.Lock()
	defer m.sync.Unlock()

	return m.cells[addr], nil
}

func (m *Memory) Write(addr uint16, b byte) error {
	if err := check(addr); err != nil {
		return err
	}

	m.sync.Lock()
	defer m.sync.Unlock()

	m.cells[addr] = b
	return nil
}

func (m *Memory) Dump() ([]byte, error) {
	m.sync.Lock()
	defer m.sync.Unlock()

	image := make([]byte, Size)
	copy(image, m.cells[:])
	return image, nil
}

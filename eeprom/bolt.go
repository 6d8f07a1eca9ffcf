package eeprom

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("eeprom")

// Bolt keeps the image in a bbolt database so settings survive restarts.
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("eeprom: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("eeprom: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("eeprom: bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) Path() string {
	return b.db.Path()
}

func (b *Bolt) Read(addr uint16) (byte, error) {
	if err := check(addr); err != nil {
		return 0, err
	}

	v := Erased
	err := b.db.View(func(tx *bolt.Tx) error {
		p := tx.Bucket(bucket).Get(key(addr))
		if len(p) == 1 {
			v = p[0]
		}
		return nil
	})
	return v, err
}

func (b *Bolt) Write(addr uint16, v byte) error {
	if err := check(addr); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key(addr), []byte{v})
	})
}

// Dump returns the whole image in address order.
func (b *Bolt) Dump() ([]byte, error) {
	image := make([]byte, Size)
	for i := range image {
		image[i] = Erased
	}

	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			addr := binary.BigEndian.Uint16(k)
			if addr < Size && len(v) == 1 {
				image[addr] = v[0]
			}
			return nil
		})
	})
	return image, err
}

func key(addr uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, addr)
}

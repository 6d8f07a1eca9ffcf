package environment

import (
	"os"
	"path/filepath"
)

const (
	KeyStateDir  = "PUMPD_STATE_DIR"
	KeyConfig    = "PUMPD_CONFIG"
	KeySocket    = "PUMPD_SOCKET"
	DefaultState = "/var/lib/pumpd"
)

func GetEnvPath(key, fallback string, elem ...string) (v string) {
	v = os.Getenv(key)
	if v == "" {
		v = fallback
	}

	return filepath.Join(append([]string{v}, elem...)...)
}

// StatePath returns a file location inside the state directory.
func StatePath(name string) string {
	return GetEnvPath(KeyStateDir, DefaultState, name)
}

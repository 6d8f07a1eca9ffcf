package pumpd

import (
	"time"

	"github.com/mdouchement/pumpd/button"
	"github.com/mdouchement/pumpd/lcd"
	"github.com/mdouchement/pumpd/stepper"
)

//go:generate mockgen -destination=mock_motor_test.go -package=pumpd . Motor

type Display interface {
	Clear()
	SetCursor(row, col uint8)
	WriteChar(c byte)
	SetCursorVisible(visible bool)
}

type Input interface {
	Poll() button.Events
}

type Storage interface {
	Read(addr uint16) (byte, error)
	Write(addr uint16, b byte) error
}

// Motor is the stepper collaborator. DistMode selects volume-target runs
// (true) over continuous flow-rate runs (false).
type Motor interface {
	SetDirection(forward bool)
	SetVelocity(p stepper.Profile)
	Enable()
	Disable()
	Start()
	Stop()
	IsMoving() bool
	IsEnabled() bool
	DistMode() bool
	SetDistMode(volume bool)
}

// Panel is the front panel state published to watchers.
type Panel struct {
	At         time.Time    `json:"at"`
	Display    lcd.Snapshot `json:"display"`
	Mode       string       `json:"mode"`
	Screen     string       `json:"screen"`
	Column     uint8        `json:"column"`
	Settings   Settings     `json:"settings"`
	Moving     bool         `json:"moving"`
	Enabled    bool         `json:"enabled"`
	DistMode   bool         `json:"dist_mode"`
	Dispensed  float64      `json:"dispensed"`
	RunStarted *time.Time   `json:"run_started,omitempty"`
}

func ToPtr[T any](v T) *T {
	return &v
}

const (
	eventPanel   = "panel"
	eventCurrent = "current"
	eventWatch   = "watch"
	eventUnwatch = "unwatch"
)

type event struct {
	name      string
	panel     Panel
	reply     chan<- Panel
	monitorID string
	monitor   chan<- []byte
}

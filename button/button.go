package button

import (
	"errors"
	"strings"
	"sync"
)

var ErrUnknownButton = errors.New("unknown button")

type Button uint8

const (
	Start Button = iota
	Select
	RotateForward  // clockwise detent
	RotateBackward // counter-clockwise detent
)

func (b Button) String() string {
	switch b {
	case Start:
		return "start"
	case Select:
		return "select"
	case RotateForward:
		return "cw"
	case RotateBackward:
		return "ccw"
	default:
		return "unknown"
	}
}

// Events is the edge-triggered snapshot consumed by one tick.
type Events struct {
	Start        bool `json:"start"`
	Select       bool `json:"select"`
	Shift        bool `json:"shift"`
	ShiftForward bool `json:"shift_forward"`
}

// Any reports whether at least one event is set.
func (e Events) Any() bool {
	return e.Start || e.Select || e.Shift
}

// A Source collects presses from any number of producers and hands them to
// the tick loop. Presses accumulated between two polls collapse into a single
// event per button.
type Source struct {
	sync    sync.Mutex
	pending Events
}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Press(b Button) {
	s.sync.Lock()
	defer s.sync.Unlock()

	switch b {
	case Start:
		s.pending.Start = true
	case Select:
		s.pending.Select = true
	case RotateForward:
		s.pending.Shift = true
		s.pending.ShiftForward = true
	case RotateBackward:
		s.pending.Shift = true
		s.pending.ShiftForward = false
	}
}

// Rotate is a shorthand for a rotary detent in the given direction.
func (s *Source) Rotate(forward bool) {
	if forward {
		s.Press(RotateForward)
		return
	}
	s.Press(RotateBackward)
}

// Poll returns the pending events and clears them.
func (s *Source) Poll() Events {
	s.sync.Lock()
	defer s.sync.Unlock()

	e := s.pending
	s.pending = Events{}
	return e
}

// Pending returns the pending events without consuming them.
func (s *Source) Pending() Events {
	s.sync.Lock()
	defer s.sync.Unlock()

	return s.pending
}

func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start", "s":
		return Start, nil
	case "select", "enter":
		return Select, nil
	case "cw", "right", "forward":
		return RotateForward, nil
	case "ccw", "left", "backward":
		return RotateBackward, nil
	default:
		return 0, ErrUnknownButton
	}
}

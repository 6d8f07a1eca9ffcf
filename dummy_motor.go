package pumpd

import (
	"sync"
	"time"

	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd/stepper"
)

// A DummyMotor should only be used for dev & tests.
// A goroutine plays the step counting interrupt of the board: it advances the
// position at the profile rate and stops a volume run on its target, leaving
// the driver enabled.
type DummyMotor struct {
	sync       sync.Mutex
	log        logger.Logger
	resolution time.Duration
	forward    bool
	profile    stepper.Profile
	distMode   bool
	enabled    bool
	moving     bool
	position   float64
	target     float64
	done       chan struct{}
}

func NewDummyMotor() *DummyMotor {
	return &DummyMotor{
		resolution: 10 * time.Millisecond,
		forward:    true,
	}
}

func (m *DummyMotor) SetLogger(l logger.Logger) {
	m.log = l
}

func (m *DummyMotor) Close() error {
	m.Stop()
	return nil
}

func (m *DummyMotor) Port() string {
	return "x-testing"
}

func (m *DummyMotor) HardwareInfo() (*stepper.HardwareInfo, error) {
	return &stepper.HardwareInfo{
		Revision: "n/a",
		MCU:      "n/a",
		Driver:   "n/a",
	}, nil
}

func (m *DummyMotor) FirmwareInfo() (*stepper.FirmwareInfo, error) {
	return &stepper.FirmwareInfo{
		Revision:        "n/a",
		ProtocolVersion: "n/a",
	}, nil
}

func (m *DummyMotor) SetDirection(forward bool) {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.forward = forward
}

func (m *DummyMotor) SetVelocity(p stepper.Profile) {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.profile = p
	m.target = float64(p.TargetSteps())
}

func (m *DummyMotor) Enable() {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.enabled = true
}

func (m *DummyMotor) Disable() {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.halt()
	m.enabled = false
}

func (m *DummyMotor) Start() {
	m.sync.Lock()
	defer m.sync.Unlock()

	if !m.enabled {
		if m.log != nil {
			m.log.Warnf("Dummy motor: start ignored, driver is disabled")
		}
		return
	}
	if m.moving {
		return
	}
	if m.distMode && m.target == 0 {
		if m.log != nil {
			m.log.Warnf("Dummy motor: start skipped, empty volume run")
		}
		return
	}

	m.moving = true
	m.position = 0
	m.done = make(chan struct{})
	go m.count(m.done, m.profile.StepsPerSecond(), m.distMode)
}

func (m *DummyMotor) Stop() {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.halt()
}

func (m *DummyMotor) IsMoving() bool {
	m.sync.Lock()
	defer m.sync.Unlock()

	return m.moving
}

func (m *DummyMotor) IsEnabled() bool {
	m.sync.Lock()
	defer m.sync.Unlock()

	return m.enabled
}

func (m *DummyMotor) DistMode() bool {
	m.sync.Lock()
	defer m.sync.Unlock()

	return m.distMode
}

func (m *DummyMotor) SetDistMode(volume bool) {
	m.sync.Lock()
	defer m.sync.Unlock()

	m.distMode = volume
}

// Steps returns the steps done since the last start.
func (m *DummyMotor) Steps() uint64 {
	m.sync.Lock()
	defer m.sync.Unlock()

	return uint64(m.position)
}

// halt must be called with the lock held.
func (m *DummyMotor) halt() {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	m.moving = false
}

func (m *DummyMotor) count(done chan struct{}, rate float64, volume bool) {
	ticker := time.NewTicker(m.resolution)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			m.sync.Lock()
			if m.done != done {
				// Stopped while waiting for the lock.
				m.sync.Unlock()
				return
			}

			m.position += rate * now.Sub(last).Seconds()
			last = now

			if volume && m.position >= m.target {
				m.position = m.target
				m.moving = false
				m.done = nil
				m.sync.Unlock()
				return
			}

			m.sync.Unlock()
		}
	}
}

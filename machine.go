package pumpd

import (
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd/button"
	"github.com/mdouchement/pumpd/stepper"
)

// State is a copy of the user interface state along with the motor status
// observed by the last tick.
type State struct {
	Mode     Mode     `json:"mode"`
	Screen   Screen   `json:"screen"`
	Column   uint8    `json:"column"`
	Working  uint32   `json:"working"`
	Forward  bool     `json:"forward"`
	Settings Settings `json:"settings"`
	Moving   bool     `json:"moving"`
	Enabled  bool     `json:"enabled"`
	DistMode bool     `json:"dist_mode"`
}

// Report tells what a tick did.
type Report struct {
	Redraw   bool
	Saved    bool
	Commands []stepper.Command
}

// A Machine is the front panel: it interprets input events according to the
// current screen and mode, edits and commits settings and arbitrates the
// motor. It is not safe for concurrent use, Tick must be called from a
// single goroutine.
type Machine struct {
	display     Display
	motor       Motor
	persistence *Persistence
	renderer    *Renderer
	log         logger.Logger

	settings Settings
	mode     Mode
	screen   Screen
	column   uint8
	working  uint32
	sign     bool

	moving  bool
	enabled bool
}

func NewMachine(display Display, motor Motor, storage Storage, defaults Settings, log logger.Logger) *Machine {
	return &Machine{
		display:     display,
		motor:       motor,
		persistence: NewPersistence(storage, log),
		renderer:    NewRenderer(display, 0),
		log:         log,
		settings:    defaults,
		mode:        ModeMenu,
		screen:      ScreenHome,
		column:      SentinelColumn,
	}
}

// Boot restores the persisted settings and draws the home screen.
func (m *Machine) Boot() (firstRun bool) {
	firstRun = m.persistence.Restore(&m.settings)
	m.sign = m.settings.Forward
	m.moving = m.motor.IsMoving()
	m.enabled = m.motor.IsEnabled()

	m.log.Infof("Settings: %d steps/rev, %d units/rev, %d units/min, %d units/run, forward=%t",
		m.settings.StepsPerRevolution,
		m.settings.UnitsPerRevolution,
		m.settings.UnitsPerMinute,
		m.settings.UnitsPerRun,
		m.settings.Forward,
	)

	m.render(m.screen, m.mode)
	return firstRun
}

func (m *Machine) State() State {
	return State{
		Mode:     m.mode,
		Screen:   m.screen,
		Column:   m.column,
		Working:  m.working,
		Forward:  m.sign,
		Settings: m.settings,
		Moving:   m.moving,
		Enabled:  m.enabled,
		DistMode: m.motor.DistMode(),
	}
}

func (m *Machine) Settings() Settings {
	return m.settings
}

// Tick processes one snapshot of input events.
func (m *Machine) Tick(e button.Events) Report {
	var r Report
	screen, mode := m.screen, m.mode

	switch m.screen {
	case ScreenHome:
		if e.Select {
			screen = ScreenFlowRate
			if m.motor.DistMode() {
				screen = ScreenVolume
			}
			r.Redraw = true
		}
	case ScreenExit:
		if e.Select {
			screen = ScreenHome
			r.Redraw = true
		} else if e.Shift {
			screen = m.screen.Shift(e.ShiftForward)
			r.Redraw = true
		}
	default:
		switch m.mode {
		case ModeMenu:
			screen, mode = m.menu(e, &r)
		case ModeEdit:
			mode = m.edit(e, &r)
		case ModeValue:
			mode = m.value(e, &r)
		}
	}

	if m.mode == ModeEdit && mode == ModeMenu {
		r.Saved = m.commit()
	}

	m.arbitrate(e, mode, &r)

	if r.Redraw {
		m.render(screen, mode)
	}
	if mode != ModeMenu {
		m.display.SetCursor(1, m.column)
	}

	m.screen, m.mode = screen, mode
	return r
}

func (m *Machine) menu(e button.Events, r *Report) (Screen, Mode) {
	switch {
	case e.Select:
		if m.screen == ScreenModeSelect && !m.motor.IsMoving() {
			m.motor.SetDistMode(!m.motor.DistMode())
			r.Redraw = true
			return m.screen, ModeMenu
		}

		m.column = SentinelColumn
		m.working = layoutOf(m.screen).field.value(m.settings)
		m.sign = m.settings.Forward
		m.display.SetCursorVisible(true)
		return m.screen, ModeEdit
	case e.Shift:
		r.Redraw = true
		return m.screen.Shift(e.ShiftForward), ModeMenu
	}

	return m.screen, ModeMenu
}

func (m *Machine) edit(e button.Events, r *Report) Mode {
	l := layoutOf(m.screen)

	switch {
	case e.Select:
		if m.column == SentinelColumn {
			m.display.SetCursorVisible(false)
			r.Redraw = true
			return ModeMenu
		}
		if l.signed && m.column == l.column {
			m.sign = !m.sign
			r.Redraw = true
			return ModeEdit
		}
		return ModeValue
	case e.Shift:
		column := int(m.column) - 1
		if e.ShiftForward {
			column = int(m.column) + 1
		}
		m.column = uint8(min(max(column, int(l.column)), int(SentinelColumn)))
	}

	return ModeEdit
}

func (m *Machine) value(e button.Events, r *Report) Mode {
	switch {
	case e.Select:
		return ModeEdit
	case e.Shift:
		m.working = EditDigit(m.working, position(m.column), e.ShiftForward)
		r.Redraw = true
	}

	return ModeValue
}

// commit stores the edited field and persists the settings.
// Screens without a numeric field have nothing to commit.
func (m *Machine) commit() bool {
	l := layoutOf(m.screen)
	if l.field == fieldNone {
		return false
	}

	l.field.commit(&m.settings, m.working)
	if l.signed {
		m.settings.Forward = m.sign
	}

	m.persistence.Save(m.settings)
	m.log.Infof("Saved %s: %d", m.screen, l.field.value(m.settings))
	return true
}

func (m *Machine) arbitrate(e button.Events, mode Mode, r *Report) {
	if e.Start {
		if m.motor.IsMoving() {
			m.motor.Stop()
			r.Commands = append(r.Commands, stepper.CommandStop)
		} else if mode == ModeMenu {
			m.motor.SetDirection(m.settings.Forward)
			m.motor.SetVelocity(m.settings.Profile())
			m.motor.Enable()
			m.motor.Start()
			r.Commands = append(r.Commands,
				stepper.CommandSetDirection,
				stepper.CommandSetVelocity,
				stepper.CommandEnable,
				stepper.CommandStart,
			)
			r.Redraw = true
		}
	}

	moving := m.motor.IsMoving()
	enabled := m.motor.IsEnabled()
	if !moving && enabled {
		m.motor.Disable()
		r.Commands = append(r.Commands, stepper.CommandDisable)
		r.Redraw = true
		enabled = false
	}

	if moving != m.moving || enabled != m.enabled {
		r.Redraw = true
	}
	m.moving, m.enabled = moving, enabled
}

func (m *Machine) render(screen Screen, mode Mode) {
	v := View{
		Screen:   screen,
		Forward:  m.settings.Forward,
		Moving:   m.moving,
		DistMode: m.motor.DistMode(),
	}

	switch {
	case screen == ScreenHome:
		v.Value = uint32(m.settings.UnitsPerMinute)
		if v.DistMode {
			v.Value = m.settings.UnitsPerRun
		}
	case mode != ModeMenu:
		v.Value = m.working
		v.Forward = m.sign
	default:
		v.Value = layoutOf(screen).field.value(m.settings)
	}

	m.renderer.Render(v)
}

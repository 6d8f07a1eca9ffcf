package pumpd

import "fmt"

// SentinelColumn is the rightmost column of the edit line. Selecting it
// leaves Edit mode.
const SentinelColumn uint8 = 15

type Screen uint8

const (
	ScreenHome Screen = iota
	ScreenFlowRate
	ScreenVolume
	ScreenModeSelect
	ScreenUnitsPerRevolution
	ScreenExit
)

// cycle is the navigation order. Home is only reachable through Exit.
var cycle = [...]Screen{
	ScreenFlowRate,
	ScreenVolume,
	ScreenModeSelect,
	ScreenUnitsPerRevolution,
	ScreenExit,
}

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenFlowRate:
		return "flow_rate"
	case ScreenVolume:
		return "volume"
	case ScreenModeSelect:
		return "mode_select"
	case ScreenUnitsPerRevolution:
		return "units_per_revolution"
	case ScreenExit:
		return "exit"
	default:
		return fmt.Sprintf("screen_%d", uint8(s))
	}
}

func (s Screen) index() int {
	for i, c := range cycle {
		if c == s {
			return i
		}
	}
	return -1
}

// Next returns the following screen of the navigation cycle.
// Screens outside the cycle lead to its first screen.
func (s Screen) Next() Screen {
	i := s.index()
	if i < 0 || i == len(cycle)-1 {
		return cycle[0]
	}
	return cycle[i+1]
}

// Previous returns the preceding screen of the navigation cycle.
// Screens outside the cycle lead to its last screen.
func (s Screen) Previous() Screen {
	i := s.index()
	if i <= 0 {
		return cycle[len(cycle)-1]
	}
	return cycle[i-1]
}

// Shift moves along the cycle in the rotary direction.
func (s Screen) Shift(forward bool) Screen {
	if forward {
		return s.Next()
	}
	return s.Previous()
}

type Mode uint8

const (
	ModeMenu Mode = iota
	ModeEdit
	ModeValue
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeEdit:
		return "edit"
	case ModeValue:
		return "value"
	default:
		return fmt.Sprintf("mode_%d", uint8(m))
	}
}

type field uint8

const (
	fieldNone field = iota
	fieldFlowRate
	fieldVolume
	fieldUnitsPerRevolution
)

func (f field) value(s Settings) uint32 {
	switch f {
	case fieldFlowRate:
		return uint32(s.UnitsPerMinute)
	case fieldVolume:
		return s.UnitsPerRun
	case fieldUnitsPerRevolution:
		return uint32(s.UnitsPerRevolution)
	default:
		return 0
	}
}

// commit stores v clamped to the field maximum.
func (f field) commit(s *Settings, v uint32) {
	switch f {
	case fieldFlowRate:
		s.UnitsPerMinute = Clamp16(v)
	case fieldVolume:
		s.UnitsPerRun = Clamp24(v)
	case fieldUnitsPerRevolution:
		s.UnitsPerRevolution = Clamp16(v)
	}
}

type layout struct {
	label  string
	field  field
	column uint8 // leftmost editable column, the sign on the flow rate screen
	signed bool
}

var layouts = map[Screen]layout{
	ScreenFlowRate: {
		label:  "UL/MIN",
		field:  fieldFlowRate,
		column: 9,
		signed: true,
	},
	ScreenVolume: {
		label:  "VOL(UL)",
		field:  fieldVolume,
		column: 6,
	},
	ScreenUnitsPerRevolution: {
		label:  "UL/REV",
		field:  fieldUnitsPerRevolution,
		column: 10,
	},
	ScreenModeSelect: {
		column: SentinelColumn,
	},
}

func layoutOf(s Screen) layout {
	l, ok := layouts[s]
	if !ok {
		return layout{column: SentinelColumn}
	}
	return l
}

// position converts an edit column to a digit position of the field value.
func position(column uint8) uint8 {
	return SentinelColumn - column - 1
}

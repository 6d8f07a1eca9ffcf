package pumpd

import "github.com/mdouchement/pumpd/stepper"

// Field maxima, set by the width of their storage slots.
const (
	MaxUnitsPerRevolution = 0xFFFF
	MaxUnitsPerRun        = 0xFFFFFF
	MaxUnitsPerMinute     = 0xFFFF
)

// Settings is the persisted record of pump parameters.
type Settings struct {
	StepsPerRevolution uint16 `json:"steps_per_revolution" yaml:"steps_per_revolution"`
	UnitsPerRevolution uint16 `json:"units_per_revolution" yaml:"units_per_revolution"`
	UnitsPerRun        uint32 `json:"units_per_run" yaml:"units_per_run"`
	UnitsPerMinute     uint16 `json:"units_per_minute" yaml:"units_per_minute"`
	Forward            bool   `json:"forward" yaml:"forward"`
}

func DefaultSettings() Settings {
	return Settings{
		StepsPerRevolution: 800,
		UnitsPerRevolution: 230,
		UnitsPerRun:        500,
		UnitsPerMinute:     500,
		Forward:            true,
	}
}

// Profile returns the run parameters handed to the motor.
func (s Settings) Profile() stepper.Profile {
	return stepper.Profile{
		StepsPerRevolution: s.StepsPerRevolution,
		UnitsPerRevolution: s.UnitsPerRevolution,
		UnitsPerMinute:     s.UnitsPerMinute,
		UnitsPerRun:        s.UnitsPerRun,
	}
}

// Clamp16 saturates v to a 16-bit field.
func Clamp16(v uint32) uint16 {
	return uint16(min(v, MaxUnitsPerMinute))
}

// Clamp24 saturates v to a 24-bit field.
func Clamp24(v uint32) uint32 {
	return min(v, MaxUnitsPerRun)
}

package stepper

import (
	"math"
	"time"
)

// A Profile describes a run in user units. The motor converts it to steps.
type Profile struct {
	StepsPerRevolution uint16 `json:"steps_per_revolution"`
	UnitsPerRevolution uint16 `json:"units_per_revolution"`
	UnitsPerMinute     uint16 `json:"units_per_minute"`
	UnitsPerRun        uint32 `json:"units_per_run"`
}

// StepsPerSecond returns the step rate needed to reach UnitsPerMinute.
func (p Profile) StepsPerSecond() float64 {
	if p.UnitsPerRevolution == 0 {
		return 0
	}

	revPerMinute := float64(p.UnitsPerMinute) / float64(p.UnitsPerRevolution)
	return revPerMinute * float64(p.StepsPerRevolution) / 60
}

// TargetSteps returns the number of steps needed to dispense UnitsPerRun.
func (p Profile) TargetSteps() uint64 {
	if p.UnitsPerRevolution == 0 {
		return 0
	}

	return uint64(p.UnitsPerRun) * uint64(p.StepsPerRevolution) / uint64(p.UnitsPerRevolution)
}

// RunDuration returns how long a volume run lasts at the profile rate.
// A zero rate never completes and reports zero.
func (p Profile) RunDuration() time.Duration {
	rate := p.StepsPerSecond()
	if rate == 0 {
		return 0
	}

	seconds := float64(p.TargetSteps()) / rate
	return time.Duration(seconds * float64(time.Second))
}

// UnitsForSteps converts a step count back to user units.
func (p Profile) UnitsForSteps(steps uint64) float64 {
	if p.StepsPerRevolution == 0 {
		return 0
	}

	return float64(steps) * float64(p.UnitsPerRevolution) / float64(p.StepsPerRevolution)
}

// UnitsAfter returns the units dispensed after d at the profile rate.
func (p Profile) UnitsAfter(d time.Duration) float64 {
	return float64(p.UnitsPerMinute) * d.Minutes()
}

// MilliStepsPerSecond is the wire encoding of StepsPerSecond.
func (p Profile) MilliStepsPerSecond() uint32 {
	v := math.Round(p.StepsPerSecond() * 1000)
	return uint32(min(v, math.MaxUint32))
}

package pumpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenCycle(t *testing.T) {
	assert.Equal(t, ScreenVolume, ScreenFlowRate.Next())
	assert.Equal(t, ScreenModeSelect, ScreenVolume.Next())
	assert.Equal(t, ScreenUnitsPerRevolution, ScreenModeSelect.Next())
	assert.Equal(t, ScreenExit, ScreenUnitsPerRevolution.Next())
	assert.Equal(t, ScreenFlowRate, ScreenExit.Next())

	assert.Equal(t, ScreenExit, ScreenFlowRate.Previous())
	assert.Equal(t, ScreenFlowRate, ScreenVolume.Previous())

	assert.Equal(t, ScreenFlowRate, ScreenHome.Next())
	assert.Equal(t, ScreenExit, ScreenHome.Previous())
}

func TestScreenCycleIsClosed(t *testing.T) {
	for _, start := range cycle {
		forward, backward := start, start
		for range len(cycle) {
			forward = forward.Shift(true)
			backward = backward.Shift(false)
			assert.NotEqual(t, ScreenHome, forward)
			assert.NotEqual(t, ScreenHome, backward)
		}
		assert.Equal(t, start, forward)
		assert.Equal(t, start, backward)
	}
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "flow_rate", ScreenFlowRate.String())
	assert.Equal(t, "screen_42", Screen(42).String())
	assert.Equal(t, "value", ModeValue.String())
}

func TestFieldCommitClamps(t *testing.T) {
	s := DefaultSettings()

	fieldFlowRate.commit(&s, 70000)
	fieldVolume.commit(&s, 999_999_999)
	fieldUnitsPerRevolution.commit(&s, 123)
	fieldNone.commit(&s, 1)

	assert.EqualValues(t, MaxUnitsPerMinute, s.UnitsPerMinute)
	assert.EqualValues(t, MaxUnitsPerRun, s.UnitsPerRun)
	assert.EqualValues(t, 123, s.UnitsPerRevolution)
}

func TestPosition(t *testing.T) {
	assert.EqualValues(t, 0, position(14))
	assert.EqualValues(t, 4, position(10))
	assert.EqualValues(t, 8, position(layoutOf(ScreenVolume).column))
}

package pumpd

import (
	"fmt"
	"testing"

	"github.com/mdouchement/pumpd/lcd"
	"github.com/stretchr/testify/assert"
)

func pad(s string) string {
	return fmt.Sprintf("%-16s", s)
}

func TestRenderer(t *testing.T) {
	ret := string(lcd.Return)

	tests := []struct {
		name  string
		view  View
		lines [2]string
	}{
		{
			name:  "home flow idle",
			view:  View{Screen: ScreenHome, Value: 500},
			lines: [2]string{"PUMP OFF    FLOW", "       500UL/MIN"},
		},
		{
			name:  "home volume running",
			view:  View{Screen: ScreenHome, Value: 1234, Moving: true, DistMode: true},
			lines: [2]string{"PUMP  ON  VOLUME", "          1234UL"},
		},
		{
			name:  "home zero",
			view:  View{Screen: ScreenHome},
			lines: [2]string{"PUMP OFF    FLOW", "         0UL/MIN"},
		},
		{
			name:  "flow rate forward",
			view:  View{Screen: ScreenFlowRate, Value: 472, Forward: true},
			lines: [2]string{pad("UL/MIN"), "         +  472" + ret},
		},
		{
			name:  "flow rate reverse zero",
			view:  View{Screen: ScreenFlowRate},
			lines: [2]string{pad("UL/MIN"), "         -    0" + ret},
		},
		{
			name:  "flow rate overflow keeps the sign",
			view:  View{Screen: ScreenFlowRate, Value: 123456, Forward: true},
			lines: [2]string{pad("UL/MIN"), "         +23456" + ret},
		},
		{
			name:  "volume",
			view:  View{Screen: ScreenVolume, Value: MaxUnitsPerRun},
			lines: [2]string{pad("VOL(UL)"), "       16777215" + ret},
		},
		{
			name:  "units per revolution",
			view:  View{Screen: ScreenUnitsPerRevolution, Value: 230},
			lines: [2]string{pad("UL/REV"), "            230" + ret},
		},
		{
			name:  "mode select flow",
			view:  View{Screen: ScreenModeSelect},
			lines: [2]string{pad(ret + "FLOW"), pad(" VOLUME")},
		},
		{
			name:  "mode select volume",
			view:  View{Screen: ScreenModeSelect, DistMode: true},
			lines: [2]string{pad(" FLOW"), pad(ret + "VOLUME")},
		},
		{
			name:  "exit",
			view:  View{Screen: ScreenExit},
			lines: [2]string{pad("EXIT " + ret), pad("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := lcd.New(lcd.DefaultOpts)
			display.WriteChar('x') // stale content must be cleared

			NewRenderer(display, display.Cols()).Render(tt.view)

			assert.Equal(t, tt.lines[0], display.Line(0))
			assert.Equal(t, tt.lines[1], display.Line(1))
		})
	}
}

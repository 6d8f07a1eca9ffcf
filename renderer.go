package pumpd

import (
	"strconv"

	"github.com/mdouchement/pumpd/lcd"
)

// View is what a screen may show.
type View struct {
	Screen   Screen
	Value    uint32 // active numeric field
	Forward  bool
	Moving   bool
	DistMode bool
}

// A Renderer draws screens on a 2 lines display. Layouts are static, the
// numeric field is right-aligned against the last column.
type Renderer struct {
	display Display
	last    uint8
}

func NewRenderer(display Display, cols uint8) *Renderer {
	if cols == 0 {
		cols = lcd.DefaultOpts.Cols
	}

	return &Renderer{
		display: display,
		last:    cols - 1,
	}
}

func (r *Renderer) Render(v View) {
	r.display.Clear()

	switch v.Screen {
	case ScreenHome:
		r.home(v)
	case ScreenModeSelect:
		r.modeSelect(v)
	case ScreenExit:
		r.text(0, 0, "EXIT")
		r.glyph(0, 5, lcd.Return)
	default:
		r.field(v)
	}
}

func (r *Renderer) home(v View) {
	r.text(0, 0, "PUMP")
	if v.Moving {
		r.text(0, 6, "ON")
	} else {
		r.text(0, 5, "OFF")
	}

	unit := "UL/MIN"
	if v.DistMode {
		r.text(0, 10, "VOLUME")
		unit = "UL"
	} else {
		r.text(0, 12, "FLOW")
	}

	start := r.last - uint8(len(unit)) + 1
	r.text(1, start, unit)
	r.digits(v.Value, start-1, 0)
}

func (r *Renderer) modeSelect(v View) {
	if !v.DistMode {
		r.glyph(0, 0, lcd.Return)
	}
	r.text(0, 1, "FLOW")

	if v.DistMode {
		r.glyph(1, 0, lcd.Return)
	}
	r.text(1, 1, "VOLUME")
}

func (r *Renderer) field(v View) {
	l := layoutOf(v.Screen)

	r.text(0, 0, l.label)
	r.glyph(1, r.last, lcd.Return)

	first := l.column
	if l.signed {
		first++
	}
	r.digits(v.Value, r.last-1, first)

	if l.signed {
		sign := lcd.Minus
		if v.Forward {
			sign = lcd.Plus
		}
		r.glyph(1, l.column, sign)
	}
}

// digits writes v right-aligned with its last digit at column end.
// Leading positions stay blank and digits left of first are dropped.
func (r *Renderer) digits(v uint32, end, first uint8) {
	s := strconv.FormatUint(uint64(v), 10)

	width := int(end) - int(first) + 1
	if len(s) > width {
		s = s[len(s)-width:]
	}

	r.text(1, end-uint8(len(s))+1, s)
}

func (r *Renderer) text(row, col uint8, s string) {
	r.display.SetCursor(row, col)
	for i := range len(s) {
		r.display.WriteChar(s[i])
	}
}

func (r *Renderer) glyph(row, col uint8, c byte) {
	r.display.SetCursor(row, col)
	r.display.WriteChar(c)
}

// Package lcd provides an in-memory character display with the addressing
// model of a HD44780 module: a cursor, a fixed grid of bytes and a visible
// cursor flag.
package lcd

import (
	"strings"
	"sync"
)

// Glyphs outside the ASCII range of the character ROM.
const (
	Return byte = 0x7F // left arrow
	Right  byte = 0x7E // right arrow
	Plus   byte = '+'
	Minus  byte = '-'
	Space  byte = ' '
)

type Opts struct {
	Lines uint8
	Cols  uint8
}

var DefaultOpts = Opts{
	Lines: 2,
	Cols:  16,
}

type Buffer struct {
	sync          sync.Mutex
	opts          Opts
	cells         [][]byte
	row, col      uint8
	cursorVisible bool
}

// Snapshot is a printable copy of the display.
type Snapshot struct {
	Lines         []string `json:"lines"`
	CursorRow     uint8    `json:"cursor_row"`
	CursorCol     uint8    `json:"cursor_col"`
	CursorVisible bool     `json:"cursor_visible"`
}

func New(opts Opts) *Buffer {
	if opts.Lines == 0 {
		opts.Lines = DefaultOpts.Lines
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultOpts.Cols
	}

	b := &Buffer{
		opts:  opts,
		cells: make([][]byte, opts.Lines),
	}
	for i := range b.cells {
		b.cells[i] = make([]byte, opts.Cols)
	}
	b.Clear()

	return b
}

func (b *Buffer) Cols() uint8 {
	return b.opts.Cols
}

func (b *Buffer) Lines() uint8 {
	return b.opts.Lines
}

// Clear blanks every cell and homes the cursor.
func (b *Buffer) Clear() {
	b.sync.Lock()
	defer b.sync.Unlock()

	for _, line := range b.cells {
		for i := range line {
			line[i] = Space
		}
	}
	b.row, b.col = 0, 0
}

func (b *Buffer) SetCursor(row, col uint8) {
	b.sync.Lock()
	defer b.sync.Unlock()

	b.row = min(row, b.opts.Lines-1)
	b.col = col
}

// WriteChar stores c at the cursor and moves the cursor one column right.
// Writes beyond the last column are dropped.
func (b *Buffer) WriteChar(c byte) {
	b.sync.Lock()
	defer b.sync.Unlock()

	if b.col >= b.opts.Cols {
		return
	}
	b.cells[b.row][b.col] = c
	b.col++
}

func (b *Buffer) SetCursorVisible(visible bool) {
	b.sync.Lock()
	defer b.sync.Unlock()

	b.cursorVisible = visible
}

// At returns the raw byte stored at the given cell.
func (b *Buffer) At(row, col uint8) byte {
	b.sync.Lock()
	defer b.sync.Unlock()

	if row >= b.opts.Lines || col >= b.opts.Cols {
		return Space
	}
	return b.cells[row][col]
}

// Line returns the raw bytes of a row as a string.
func (b *Buffer) Line(row uint8) string {
	b.sync.Lock()
	defer b.sync.Unlock()

	if row >= b.opts.Lines {
		return ""
	}
	return string(b.cells[row])
}

func (b *Buffer) Snapshot() Snapshot {
	b.sync.Lock()
	defer b.sync.Unlock()

	s := Snapshot{
		Lines:         make([]string, len(b.cells)),
		CursorRow:     b.row,
		CursorCol:     b.col,
		CursorVisible: b.cursorVisible,
	}
	for i, line := range b.cells {
		s.Lines[i] = Printable(line)
	}

	return s
}

// Printable maps ROM glyphs to their terminal equivalent.
func Printable(p []byte) string {
	var sb strings.Builder
	for _, c := range p {
		switch {
		case c == Return:
			sb.WriteRune('←')
		case c == Right:
			sb.WriteRune('→')
		case c < 0x20 || c > 0x7F:
			sb.WriteByte('?')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

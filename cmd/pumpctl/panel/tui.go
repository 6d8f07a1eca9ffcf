package panel

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mdouchement/pumpd"
	"github.com/mdouchement/pumpd/button"
	"github.com/mdouchement/pumpd/cmd/pumpctl/press"
	"github.com/mdouchement/pumpd/lcd"
)

var (
	lcdStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00afff")).
			Background(lipgloss.Color("#1c3f1c")).
			Foreground(lipgloss.Color("#b5f5b5")).
			Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
)

type errMsg struct {
	err error
}

type model struct {
	client *http.Client
	table  table.Model
	panel  pumpd.Panel
	err    error
}

func newTUI(client *http.Client) *model {
	columns := []table.Column{
		{Title: "Status", Width: 20},
		{Title: "Value", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(9),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		Foreground(lipgloss.Color("#00afff")).
		BorderForeground(lipgloss.Color("#00afff")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Bold(false)
	t.SetStyles(s)

	return &model{
		client: client,
		table:  t,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
	case pumpd.Panel:
		m.panel = msg
		m.update()
	case errMsg:
		m.err = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

		if b, ok := keyButton(msg.String()); ok {
			return m, m.press(b)
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	views := []string{
		lcdStyle.Render(strings.Join(renderLCD(m.panel.Display), "\n")),
		m.table.View(),
		helpStyle.Render("s: start/stop • enter: select • ←/→: rotate • q: quit"),
	}
	if m.err != nil {
		views = append(views, errStyle.Render(m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (m *model) press(b button.Button) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: press.Send(m.client, b)}
	}
}

func (m *model) update() {
	p := m.panel

	state := "stopped"
	switch {
	case p.Moving:
		state = "running"
	case p.Enabled:
		state = "stopping"
	}

	mode := "flow rate"
	if p.DistMode {
		mode = "volume"
	}

	direction := "forward"
	if !p.Settings.Forward {
		direction = "reverse"
	}

	dispensed := fmt.Sprintf("%s µL", humanize.FormatFloat("#,###.#", p.Dispensed))
	if p.RunStarted != nil {
		dispensed += " since " + humanize.Time(*p.RunStarted)
	}

	m.table.SetRows([]table.Row{
		{"Pump", state},
		{"Run mode", mode},
		{"Menu", fmt.Sprintf("%s (%s)", p.Screen, p.Mode)},
		{"Flow rate", fmt.Sprintf("%s µL/min", humanize.Comma(int64(p.Settings.UnitsPerMinute)))},
		{"Volume per run", fmt.Sprintf("%s µL", humanize.Comma(int64(p.Settings.UnitsPerRun)))},
		{"Volume per rev", fmt.Sprintf("%s µL", humanize.Comma(int64(p.Settings.UnitsPerRevolution)))},
		{"Direction", direction},
		{"Dispensed", dispensed},
	})
}

func keyButton(key string) (button.Button, bool) {
	switch key {
	case "s":
		return button.Start, true
	case "enter", " ":
		return button.Select, true
	case "right", "l":
		return button.RotateForward, true
	case "left", "h":
		return button.RotateBackward, true
	default:
		return 0, false
	}
}

// renderLCD highlights the cursor cell when it is visible.
func renderLCD(s lcd.Snapshot) []string {
	if len(s.Lines) == 0 {
		blank := strings.Repeat(" ", int(lcd.DefaultOpts.Cols))
		return []string{blank, blank}
	}

	lines := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		runes := []rune(line)
		if !s.CursorVisible || int(s.CursorRow) != i || int(s.CursorCol) >= len(runes) {
			lines[i] = line
			continue
		}

		col := s.CursorCol
		lines[i] = string(runes[:col]) + cursorStyle.Render(string(runes[col])) + string(runes[col+1:])
	}

	return lines
}

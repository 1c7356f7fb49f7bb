package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gifflet/scrcpy-connect/pkg/connect"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc/q", "cancel"),
	),
}

// Model is the bubbletea model of the device list.
type Model struct {
	serials   []connect.Serial
	cursor    int
	selected  connect.Serial
	cancelled bool
}

// NewModel creates a Model listing serials with the first one highlighted.
func NewModel(serials []connect.Serial) Model {
	return Model{serials: serials}
}

// Selected returns the chosen serial and whether a choice was made.
func (m Model) Selected() (connect.Serial, bool) {
	return m.selected, m.selected != ""
}

// Cancelled reports whether the user left without choosing.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.serials)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Select):
		if len(m.serials) > 0 {
			m.selected = m.serials[m.cursor]
			return m, tea.Quit
		}

	default:
		// digits jump straight to the numbered entry
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if idx := int(s[0] - '1'); idx < len(m.serials) {
				m.cursor = idx
				m.selected = m.serials[idx]
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

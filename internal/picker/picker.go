// Package picker implements an interactive terminal device chooser.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gifflet/scrcpy-connect/pkg/connect"
)

// Picker is a connect.Chooser that renders the attached devices as a
// navigable list.
type Picker struct {
	in  io.Reader
	out io.Writer
}

// New creates a Picker reading keys from in and drawing on out.
func New(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out}
}

// Choose runs the list until the user selects or cancels.
func (p *Picker) Choose(ctx context.Context, serials []connect.Serial) (connect.Serial, error) {
	if len(serials) == 0 {
		return "", connect.ErrNoDevices
	}

	program := tea.NewProgram(NewModel(serials),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("running device picker: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.Cancelled() {
		return "", connect.ErrSelectionCancelled
	}
	serial, ok := m.Selected()
	if !ok {
		return "", connect.ErrSelectionCancelled
	}
	return serial, nil
}

package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"radar-sim/internal/sim"
)

// Run starts the dashboard on the alternate screen and blocks until the
// user quits or ctx is cancelled. w may be nil.
func Run(ctx context.Context, s *sim.Simulator, a analyst, w *Writer, interval time.Duration) error {
	p := tea.NewProgram(NewModel(ctx, s, a, w, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

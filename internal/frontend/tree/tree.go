package tree

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend"
	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
)

// Frontend runs a Component in a bubbletea program on the terminal.
type Frontend[S any, M any] struct {
	Root      Component[S, M]
	In        *os.File
	Out       *os.File
	AltScreen bool
}

// Run implements frontend.Frontend. Keys are read by an input.Source and
// fed to the program; bubbletea only renders. The terminal is restored on
// every return path.
func (f *Frontend[S, M]) Run(ctx context.Context, env frontend.Env[S, M]) error {
	log := pslog.Ctx(ctx).With("frontend", "tree")

	restore, err := input.MakeRaw(f.In)
	if err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			log.Warn("restore terminal failed", "err", rerr)
		}
	}()

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(f.Out),
		tea.WithoutSignalHandler(),
	}
	if f.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	model := NewModel(f.Root, env.Snapshots, env.Messages, env.Done)
	p := tea.NewProgram(model, opts...)

	src := input.StartTerminal(ctx, f.In, f.Out)
	defer src.Close()
	go forward(src.Events(), p)

	log.Debug("program starting", "alt_screen", f.AltScreen)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tree: %w", err)
	}
	log.Debug("program stopped")
	return nil
}

// forward hands input events to the program until the source closes.
func forward(events <-chan input.Event, p *tea.Program) {
	for ev := range events {
		p.Send(eventMsg(ev))
	}
}

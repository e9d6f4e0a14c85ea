// Package inline is the immediate-mode frontend. It keeps no widget tree:
// every frame the application draws the latest snapshot from scratch and
// reads the keys pressed since the previous frame. Frames are drawn into a
// fixed number of lines below the cursor instead of taking over the screen.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend"
	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
)

// Defaults for Frontend.
const (
	DefaultHeight     = 20
	DefaultRenderTick = 250 * time.Millisecond
	defaultWidth      = 80
)

// App draws one frame for state. Keys pressed since the last frame are
// available through ui; messages for the store are queued with ui.Send and
// delivered once the frame is on screen.
type App[S any, M any] interface {
	Show(ui *UI[M], state S) []string
}

// UI is the per-frame context handed to App.Show.
type UI[M any] struct {
	keys   []input.Key
	out    []M
	width  int
	height int
}

// NewUI creates the context of one frame.
func NewUI[M any](keys []input.Key, width, height int) *UI[M] {
	return &UI[M]{keys: keys, width: width, height: height}
}

// Keys returns the keys pressed since the previous frame, oldest first.
func (u *UI[M]) Keys() []input.Key { return u.keys }

// HasInput reports whether any key is pending.
func (u *UI[M]) HasInput() bool { return len(u.keys) > 0 }

// Send queues messages for the store.
func (u *UI[M]) Send(msgs ...M) { u.out = append(u.out, msgs...) }

// Size returns the frame size in cells.
func (u *UI[M]) Size() (width, height int) { return u.width, u.height }

// Sent returns the queued messages.
func (u *UI[M]) Sent() []M { return u.out }

// Frontend runs an App inline on the terminal.
type Frontend[S any, M any] struct {
	App    App[S, M]
	In     *os.File
	Out    *os.File
	Height int           // lines reserved for frames; DefaultHeight when zero
	Tick   time.Duration // redraw period; DefaultRenderTick when zero
}

// Run implements frontend.Frontend. The frame area is cleared and the
// terminal restored on every return path.
func (f *Frontend[S, M]) Run(ctx context.Context, env frontend.Env[S, M]) error {
	log := pslog.Ctx(ctx).With("frontend", "inline")

	restore, err := input.MakeRaw(f.In)
	if err != nil {
		return fmt.Errorf("inline: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			log.Warn("restore terminal failed", "err", rerr)
		}
	}()

	width := defaultWidth
	if w, _, serr := input.Size(f.Out); serr == nil && w > 0 {
		width = w
	}

	src := input.StartTerminal(ctx, f.In, f.Out)
	defer src.Close()

	r := newRenderer(f.Out, f.height())
	defer func() {
		if cerr := r.clear(); cerr != nil {
			log.Warn("clear frame failed", "err", cerr)
		}
	}()

	log.Debug("inline loop starting", "height", f.height(), "width", width)
	return f.loop(ctx, env, src.Events(), r, width)
}

func (f *Frontend[S, M]) height() int {
	if f.Height > 0 {
		return f.Height
	}
	return DefaultHeight
}

func (f *Frontend[S, M]) tick() time.Duration {
	if f.Tick > 0 {
		return f.Tick
	}
	return DefaultRenderTick
}

// loop draws a frame whenever a snapshot or an event arrives and on every
// tick, until the snapshots end or the run is terminated.
func (f *Frontend[S, M]) loop(ctx context.Context, env frontend.Env[S, M], events <-chan input.Event, r *renderer, width int) error {
	ticker := time.NewTicker(f.tick())
	defer ticker.Stop()

	var (
		state S
		ready bool
		keys  []input.Key
	)

	draw := func() error {
		if !ready {
			return nil
		}
		ui := NewUI[M](keys, width, r.height)
		keys = nil
		lines := f.App.Show(ui, state)
		if err := r.draw(lines, width); err != nil {
			return fmt.Errorf("inline: draw: %w", err)
		}
		for _, m := range ui.Sent() {
			if !env.Send(m) {
				break
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-env.Done:
			return nil
		case s, ok := <-env.Snapshots:
			if !ok {
				return nil
			}
			state, ready = s, true
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch ev.Kind {
			case input.EventKey:
				if !ready {
					continue
				}
				keys = append(keys, ev.Key)
			case input.EventResize:
				width = ev.Width
			default:
				continue
			}
		case <-ticker.C:
		}
		if err := draw(); err != nil {
			return err
		}
	}
}

// renderer draws frames into a fixed region starting at the cursor line.
type renderer struct {
	w      io.Writer
	height int
	drawn  int // lines of the region in use; the cursor sits on the last one
}

func newRenderer(w io.Writer, height int) *renderer {
	return &renderer{w: w, height: height}
}

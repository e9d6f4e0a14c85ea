//go:build !windows

package input

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

// watchResize emits a resize event for every SIGWINCH until ctx ends or
// send reports the receiver gone.
func watchResize(ctx context.Context, out *os.File, send func(Event) bool) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGWINCH)
	defer signal.Stop(sig)

	log := pslog.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
			if err != nil {
				log.Debug("input: winsize query failed", "err", err)
				continue
			}
			if !send(ResizeEvent(int(ws.Col), int(ws.Row))) {
				return
			}
		}
	}
}

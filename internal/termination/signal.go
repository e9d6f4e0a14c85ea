package termination

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"pkt.systems/pslog"
)

// ListenForInterrupt captures interrupt signals until ctx is cancelled. The
// first signal broadcasts OsInterrupt; every signal arriving after a reason
// was broadcast is logged and ignored, so the process keeps running until
// its owner is done tearing down.
func ListenForInterrupt[P any](ctx context.Context, t *Terminator[P]) {
	listen(ctx, t, nil)
}

// listen is ListenForInterrupt; ready, when set, runs once the signals are
// captured.
func listen[P any](ctx context.Context, t *Terminator[P], ready func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, interruptSignals...)
	defer signal.Stop(sigCh)
	if ready != nil {
		ready()
	}

	log := pslog.Ctx(ctx)
	for {
		select {
		case sig := <-sigCh:
			if err := t.Terminate(Interrupted[P]()); errors.Is(err, ErrAlreadyTerminated) {
				log.Debug("termination signal ignored", "signal", sig.String())
				continue
			}
			log.Info("termination signal received", "signal", sig.String())
		case <-ctx.Done():
			return
		}
	}
}

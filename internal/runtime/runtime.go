// Package runtime wires the store, the worker pool and a frontend into one
// run and reports how it ended.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend"
	"github.com/LISSConsulting/LISSTech.Flux/internal/store"
	"github.com/LISSConsulting/LISSTech.Flux/internal/termination"
	"github.com/LISSConsulting/LISSTech.Flux/internal/worker"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

// App describes one run.
type App[S store.State[S, M, P], M any, P any] struct {
	State      S
	Frontend   frontend.Frontend[S, M]
	Processors []worker.Processor[M]
	// Init is sent on the message bus before the frontend starts.
	Init     []M
	TickRate time.Duration
	// Equal enables change detection in the store when set.
	Equal func(a, b S) bool
	// NoSignals skips the OS interrupt listener.
	NoSignals bool
}

// Run starts the store, the worker pool and the frontend and waits for all
// of them. It returns the single termination reason of the run, or the
// first error of any component.
func Run[S store.State[S, M, P], M any, P any](ctx context.Context, app App[S, M, P]) (termination.Reason[P], error) {
	log := pslog.Ctx(ctx)

	var (
		terminator *termination.Terminator[P]
		interrupts *termination.Receiver[P]
	)
	if app.NoSignals {
		terminator, interrupts = termination.New[P]()
	} else {
		// Signals stay captured until every component, frontend teardown
		// included, has returned.
		sigCtx, stopSignals := context.WithCancel(ctx)
		defer stopSignals()
		terminator, interrupts = termination.Create[P](sigCtx)
	}
	defer terminator.Close()

	opts := []store.Option[S]{store.WithTickRate[S](app.TickRate)}
	if app.Equal != nil {
		opts = append(opts, store.WithChangeDetection(app.Equal))
	}
	st, snapshots := store.New[S, M, P](opts...)

	messages := bus.NewBroadcast[M]()
	defer messages.Close()
	storeMessages := messages.Subscribe()
	derived := bus.NewUnbounded[M]()

	var poolMessages *bus.Subscription[M]
	if len(app.Processors) > 0 {
		poolMessages = messages.Subscribe()
	}
	for _, m := range app.Init {
		if err := messages.Send(m); err != nil {
			return termination.Reason[P]{}, fmt.Errorf("runtime: init message: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer storeMessages.Close()
		defer derived.Close()
		_, err := st.Run(gctx, app.State, terminator, storeMessages.C(), derived.C(), interrupts.Resubscribe())
		log.Debug("store stopped", "published", st.Published())
		if err != nil {
			terminator.Close()
			return fmt.Errorf("runtime: store: %w", err)
		}
		return nil
	})

	if poolMessages != nil {
		pool := worker.New[M, P](app.Processors...)
		g.Go(func() error {
			defer poolMessages.Close()
			_, err := pool.Run(gctx, poolMessages.C(), derived, interrupts.Resubscribe())
			log.Debug("workers stopped", "dispatched", pool.Dispatched(), "failed", pool.Failed())
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, termination.ErrUnexpectedExit) {
				return fmt.Errorf("runtime: workers: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer snapshots.Close()
		env := frontend.Env[S, M]{
			Snapshots: snapshots.C(),
			Messages:  messages,
			Done:      interrupts.Done(),
		}
		if err := app.Frontend.Run(gctx, env); err != nil {
			return fmt.Errorf("runtime: frontend: %w", err)
		}
		// A frontend leaving on its own ends the run; without a reason this
		// surfaces as an unexpected exit.
		terminator.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("run failed", "err", err)
		return termination.Reason[P]{}, err
	}
	reason, err := interrupts.Reason()
	if err != nil {
		return termination.Reason[P]{}, fmt.Errorf("runtime: %w", err)
	}
	log.Info("run finished", "reason", reason.Kind.String())
	return reason, nil
}

// ExitCode maps the outcome of Run to a process exit status.
func ExitCode[P any](reason termination.Reason[P], err error) int {
	switch {
	case err != nil:
		return ExitError
	case reason.Kind == termination.OsInterrupt:
		return ExitInterrupted
	default:
		return ExitOK
	}
}

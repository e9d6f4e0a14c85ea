// Package frontend defines the contract every rendering strategy implements.
// A frontend draws the snapshots the store publishes and turns user input
// into messages; it never touches the state directly.
package frontend

import (
	"context"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
)

// Env is what the runtime hands a frontend.
type Env[S any, M any] struct {
	// Snapshots delivers every published state in order. It closes when the
	// store stops; frontends treat that as a normal exit.
	Snapshots <-chan S
	// Messages goes to the store (and to the worker pool).
	Messages bus.Sender[M]
	// Done closes once the run was terminated.
	Done <-chan struct{}
}

// Send forwards msg and reports whether anyone received it. A false return
// means shutdown is in progress.
func (e Env[S, M]) Send(msg M) bool {
	return e.Messages.Send(msg) == nil
}

// Frontend renders snapshots until the run ends. Run must restore the
// terminal on every return path.
type Frontend[S any, M any] interface {
	Run(ctx context.Context, env Env[S, M]) error
}

// Func adapts a function to Frontend.
type Func[S any, M any] func(ctx context.Context, env Env[S, M]) error

// Run implements Frontend.
func (f Func[S, M]) Run(ctx context.Context, env Env[S, M]) error {
	return f(ctx, env)
}

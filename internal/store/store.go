// Package store owns the canonical application state. A Store applies
// messages through the state's pure Update method, refreshes it on a fixed
// tick, publishes every resulting snapshot and decides when the run ends.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
	"github.com/LISSConsulting/LISSTech.Flux/internal/termination"
)

// DefaultTickRate is the period of the time-based refresh.
const DefaultTickRate = time.Second

// ErrNoSubscriber is returned by Run when a snapshot could not be published
// because every subscriber is gone before the run was terminated.
var ErrNoSubscriber = errors.New("store: no snapshot subscriber left")

// Exit is returned by a transition that ends the run. A nil Value means the
// user exited without a result.
type Exit[P any] struct {
	Value *P
}

// Quit is the exit without a payload.
func Quit[P any]() *Exit[P] {
	return &Exit[P]{}
}

// Return is the exit carrying v.
func Return[P any](v P) *Exit[P] {
	return &Exit[P]{Value: &v}
}

// State is implemented by application state values. Update and Tick must be
// pure: they return a new value and never perform I/O.
type State[S any, M any, P any] interface {
	// Update applies msg. A non-nil Exit ends the run.
	Update(msg M) (S, *Exit[P])
	// Tick refreshes time-dependent parts of the state.
	Tick() S
}

// Option configures a Store of state type S.
type Option[S any] func(*options[S])

type options[S any] struct {
	tickRate time.Duration
	equal    func(a, b S) bool
}

// WithTickRate sets the tick period. Non-positive values keep the default.
func WithTickRate[S any](d time.Duration) Option[S] {
	return func(o *options[S]) {
		if d > 0 {
			o.tickRate = d
		}
	}
}

// WithChangeDetection suppresses publishing a snapshot equal to the last
// published one. Without it every accepted message and every tick publishes.
func WithChangeDetection[S any](equal func(a, b S) bool) Option[S] {
	return func(o *options[S]) { o.equal = equal }
}

// Store is the single writer of an application state of type S.
type Store[S State[S, M, P], M any, P any] struct {
	snapshots *bus.Broadcast[S]
	tickRate  time.Duration
	equal     func(a, b S) bool
	published atomic.Int64
}

// New creates a Store and the first snapshot subscription. Further readers
// may call Subscribe before Run.
func New[S State[S, M, P], M any, P any](opts ...Option[S]) (*Store[S, M, P], *bus.Subscription[S]) {
	o := options[S]{tickRate: DefaultTickRate}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[S, M, P]{
		snapshots: bus.NewBroadcast[S](),
		tickRate:  o.tickRate,
		equal:     o.equal,
	}
	return s, s.snapshots.Subscribe()
}

// Subscribe adds a snapshot subscriber.
func (s *Store[S, M, P]) Subscribe() *bus.Subscription[S] {
	return s.snapshots.Subscribe()
}

// Published returns the number of snapshots published so far.
func (s *Store[S, M, P]) Published() int64 {
	return s.published.Load()
}

// Run publishes state, then processes messages and ticks until the run ends.
//
// messages carries frontend messages and derived carries worker results; a
// nil or closed channel is simply never selected again. When a transition
// returns an Exit, the final snapshot is published and Run broadcasts
// UserExit through terminator. A reason broadcast elsewhere stops the loop
// without publishing. The snapshot subscriptions are closed when Run returns.
func (s *Store[S, M, P]) Run(
	ctx context.Context,
	state S,
	terminator *termination.Terminator[P],
	messages <-chan M,
	derived <-chan M,
	interrupts *termination.Receiver[P],
) (termination.Reason[P], error) {
	log := pslog.Ctx(ctx)
	defer s.snapshots.Close()

	if err := s.publish(state, interrupts); err != nil {
		return s.stopped(log, interrupts, err)
	}
	last := state
	log.Debug("store started", "tick", s.tickRate.String())

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		var (
			next S
			exit *Exit[P]
		)

		select {
		case <-ctx.Done():
			log.Debug("store cancelled")
			return termination.Reason[P]{}, ctx.Err()
		case <-interrupts.Done():
			return s.stopped(log, interrupts, nil)
		case msg, ok := <-messages:
			if !ok {
				messages = nil
				continue
			}
			if interrupts.Resolved() {
				return s.stopped(log, interrupts, nil)
			}
			next, exit = state.Update(msg)
		case msg, ok := <-derived:
			if !ok {
				derived = nil
				continue
			}
			if interrupts.Resolved() {
				return s.stopped(log, interrupts, nil)
			}
			next, exit = state.Update(msg)
		case <-ticker.C:
			if interrupts.Resolved() {
				return s.stopped(log, interrupts, nil)
			}
			next = state.Tick()
		}

		state = next
		if s.equal == nil || !s.equal(last, state) {
			if err := s.publish(state, interrupts); err != nil {
				return s.stopped(log, interrupts, err)
			}
			last = state
		}

		if exit != nil {
			err := terminator.Terminate(termination.Exited(exit.Value))
			if err != nil && !errors.Is(err, termination.ErrAlreadyTerminated) {
				return termination.Reason[P]{}, fmt.Errorf("store: terminate: %w", err)
			}
			// An OS interrupt may have won the race; report what was broadcast.
			return s.stopped(log, interrupts, nil)
		}
	}
}

// publish sends state to all subscribers. Losing every subscriber is only an
// error while the run has not been terminated.
func (s *Store[S, M, P]) publish(state S, interrupts *termination.Receiver[P]) error {
	if err := s.snapshots.Send(state); err != nil {
		if interrupts.Resolved() {
			return nil
		}
		return ErrNoSubscriber
	}
	s.published.Add(1)
	return nil
}

func (s *Store[S, M, P]) stopped(log pslog.Logger, interrupts *termination.Receiver[P], err error) (termination.Reason[P], error) {
	if err != nil {
		log.Error("store failed", "err", err)
		return termination.Reason[P]{}, err
	}
	reason, err := interrupts.Reason()
	if err != nil {
		log.Error("store stopped without reason", "err", err)
		return termination.Reason[P]{}, err
	}
	log.Info("store stopped", "reason", reason.Kind.String(), "published", s.published.Load())
	return reason, nil
}

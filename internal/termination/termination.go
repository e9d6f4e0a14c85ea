// Package termination implements the run-wide cancellation signal. Exactly
// one Reason is broadcast per run; receivers created before or after the
// broadcast all observe that same Reason.
package termination

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrAlreadyTerminated is returned by Terminate when a reason was already
	// broadcast. Callers treat it as benign.
	ErrAlreadyTerminated = errors.New("termination: already terminated")
	// ErrUnexpectedExit is reported when the channel was closed without ever
	// broadcasting a reason.
	ErrUnexpectedExit = errors.New("termination: unexpected exit")
	// ErrPending is returned by Receiver.Reason before anything was broadcast.
	ErrPending = errors.New("termination: no reason yet")
)

// channel is the state shared by a Terminator and all of its receivers.
type channel[P any] struct {
	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	reason *Reason[P]
}

func (c *channel[P]) resolve(r *Reason[P]) bool {
	fired := false
	c.once.Do(func() {
		c.mu.Lock()
		c.reason = r
		c.mu.Unlock()
		close(c.done)
		fired = true
	})
	return fired
}

// Terminator is the sending side.
type Terminator[P any] struct {
	ch *channel[P]
}

// Receiver observes the broadcast reason.
type Receiver[P any] struct {
	ch *channel[P]
}

// New creates a termination channel without a signal listener.
func New[P any]() (*Terminator[P], *Receiver[P]) {
	ch := &channel[P]{done: make(chan struct{})}
	return &Terminator[P]{ch: ch}, &Receiver[P]{ch: ch}
}

// Create creates a termination channel and starts the OS signal listener,
// which broadcasts OsInterrupt on the first SIGINT or SIGTERM. The listener
// keeps the signals captured until ctx is cancelled, also after the channel
// resolved.
func Create[P any](ctx context.Context) (*Terminator[P], *Receiver[P]) {
	t, r := New[P]()
	go ListenForInterrupt(ctx, t)
	return t, r
}

// Terminate broadcasts reason. Only the first call has any effect; later
// calls return ErrAlreadyTerminated.
func (t *Terminator[P]) Terminate(reason Reason[P]) error {
	r := reason
	if !t.ch.resolve(&r) {
		return ErrAlreadyTerminated
	}
	return nil
}

// Close ends the channel. If no reason was broadcast yet, receivers see
// ErrUnexpectedExit.
func (t *Terminator[P]) Close() {
	t.ch.resolve(nil)
}

// Subscribe returns a new receiver. It observes the stored reason even when
// created after the broadcast.
func (t *Terminator[P]) Subscribe() *Receiver[P] {
	return &Receiver[P]{ch: t.ch}
}

// Done is closed once a reason was broadcast or the channel was closed.
func (r *Receiver[P]) Done() <-chan struct{} {
	return r.ch.done
}

// Resolved reports whether Done is closed.
func (r *Receiver[P]) Resolved() bool {
	select {
	case <-r.ch.done:
		return true
	default:
		return false
	}
}

// Reason returns the broadcast reason. It returns ErrPending while the
// channel is open and ErrUnexpectedExit if it closed without a reason.
func (r *Receiver[P]) Reason() (Reason[P], error) {
	select {
	case <-r.ch.done:
	default:
		return Reason[P]{}, ErrPending
	}
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()
	if r.ch.reason == nil {
		return Reason[P]{}, ErrUnexpectedExit
	}
	return *r.ch.reason, nil
}

// Wait blocks until the channel resolves or ctx ends.
func (r *Receiver[P]) Wait(ctx context.Context) (Reason[P], error) {
	select {
	case <-r.ch.done:
		return r.Reason()
	case <-ctx.Done():
		return Reason[P]{}, ctx.Err()
	}
}

// Resubscribe returns another receiver on the same channel.
func (r *Receiver[P]) Resubscribe() *Receiver[P] {
	return &Receiver[P]{ch: r.ch}
}

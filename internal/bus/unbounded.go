// Package bus provides the in-process channels that carry messages and state
// snapshots between the store, the frontend and the worker pool.
//
// Sends never block on a slow consumer: input events, messages and snapshots
// are low-rate, and delivering them promptly matters more than bounding
// memory. A send only fails once the receiving side is gone, which callers
// treat as shutdown in progress.
package bus

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send when nobody is left to receive the value.
var ErrClosed = errors.New("bus: closed")

// Sender is the producing end handed to frontends and workers.
type Sender[T any] interface {
	Send(v T) error
}

// Unbounded is a multi-producer, single-consumer queue. Values are delivered
// on C in the order Send accepted them.
type Unbounded[T any] struct {
	in  chan T
	out chan T

	recvDone chan struct{} // receiver went away
	sendDone chan struct{} // no more values will be sent

	recvOnce sync.Once
	sendOnce sync.Once
}

// NewUnbounded creates a queue and starts the goroutine that buffers values
// between producers and the consumer.
func NewUnbounded[T any]() *Unbounded[T] {
	u := &Unbounded[T]{
		in:       make(chan T),
		out:      make(chan T),
		recvDone: make(chan struct{}),
		sendDone: make(chan struct{}),
	}
	go u.pump()
	return u
}

// Send enqueues v. It returns ErrClosed if the receiver has closed the queue
// or the send side was closed with CloseSend. It is safe to call from
// multiple goroutines.
func (u *Unbounded[T]) Send(v T) error {
	select {
	case <-u.recvDone:
		return ErrClosed
	case <-u.sendDone:
		return ErrClosed
	default:
	}

	select {
	case u.in <- v:
		return nil
	case <-u.recvDone:
		return ErrClosed
	case <-u.sendDone:
		return ErrClosed
	}
}

// C returns the receiving channel. It is closed once the queue is closed from
// either side and all values accepted before CloseSend have been delivered.
func (u *Unbounded[T]) C() <-chan T {
	return u.out
}

// Close is called by the consumer when it stops receiving. Pending values are
// dropped and later sends fail with ErrClosed.
func (u *Unbounded[T]) Close() {
	u.recvOnce.Do(func() { close(u.recvDone) })
}

// CloseSend is called when no more values will be produced. Values already
// accepted are still delivered before C is closed.
func (u *Unbounded[T]) CloseSend() {
	u.sendOnce.Do(func() { close(u.sendDone) })
}

func (u *Unbounded[T]) pump() {
	defer close(u.out)

	var queue []T
	for {
		var (
			out  chan T
			next T
		)
		if len(queue) > 0 {
			out = u.out
			next = queue[0]
		}

		select {
		case v := <-u.in:
			queue = append(queue, v)
		case out <- next:
			var zero T
			queue[0] = zero
			queue = queue[1:]
		case <-u.recvDone:
			return
		case <-u.sendDone:
			for _, v := range queue {
				select {
				case u.out <- v:
				case <-u.recvDone:
					return
				}
			}
			return
		}
	}
}

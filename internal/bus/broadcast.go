package bus

import "sync"

// Broadcast fans every sent value out to all live subscriptions. Each
// subscription has its own unbounded queue, so every subscriber observes the
// values in the same order and a slow subscriber never holds up the others.
type Broadcast[T any] struct {
	mu     sync.Mutex
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// NewBroadcast creates a broadcast without subscribers.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscription. Values sent before Subscribe are
// not replayed. Subscribing to a closed broadcast yields a subscription whose
// channel is already closed.
func (b *Broadcast[T]) Subscribe() *Subscription[T] {
	s := &Subscription[T]{queue: NewUnbounded[T](), parent: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.queue.CloseSend()
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Send delivers v to every live subscription. It returns ErrClosed when the
// broadcast was closed or no subscription accepted the value.
func (b *Broadcast[T]) Send(v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	delivered := 0
	for s := range b.subs {
		if err := s.queue.Send(v); err != nil {
			delete(b.subs, s)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return ErrClosed
	}
	return nil
}

// Receivers reports the number of live subscriptions.
func (b *Broadcast[T]) Receivers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends the broadcast. Subscribers receive everything sent before Close
// and then see their channel closed.
func (b *Broadcast[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.queue.CloseSend()
		delete(b.subs, s)
	}
}

func (b *Broadcast[T]) unsubscribe(s *Subscription[T]) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription is one receiver of a Broadcast.
type Subscription[T any] struct {
	queue  *Unbounded[T]
	parent *Broadcast[T]
	once   sync.Once
}

// C returns the channel values are delivered on.
func (s *Subscription[T]) C() <-chan T {
	return s.queue.C()
}

// Close unsubscribes. Pending values are dropped.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.parent.unsubscribe(s)
		s.queue.Close()
	})
}

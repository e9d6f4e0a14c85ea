package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
)

const (
	readBufferSize = 256
	maxReadBackoff = time.Second
	// escTimeout is how long a sequence cut off by a read waits for the
	// rest of its bytes before it is decoded as is.
	escTimeout = 50 * time.Millisecond
)

// Source is a running input reader.
type Source struct {
	queue  *bus.Unbounded[Event]
	reader cancelreader.CancelReader
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start reads r on a dedicated goroutine until r reports EOF, the source is
// closed or ctx ends. Read errors other than EOF are logged and the read is
// retried after a growing pause.
func Start(ctx context.Context, r io.Reader) *Source {
	ctx, cancel := context.WithCancel(ctx)
	s := &Source{
		queue:  bus.NewUnbounded[Event](),
		cancel: cancel,
	}
	if cr, err := cancelreader.NewReader(r); err == nil {
		s.reader = cr
		r = cr
	} else {
		pslog.Ctx(ctx).Debug("input: cancelable reader unavailable", "err", err)
	}

	chunks := make(chan []byte)
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		defer close(chunks)
		readLoop(ctx, r, chunks)
	}()
	go func() {
		defer s.wg.Done()
		defer s.queue.CloseSend()
		s.decodeLoop(ctx, chunks)
	}()
	return s
}

// Events returns the event channel. It closes after Close or EOF.
func (s *Source) Events() <-chan Event {
	return s.queue.C()
}

// Close stops the reader and drops undelivered events.
func (s *Source) Close() {
	s.cancel()
	if s.reader != nil {
		s.reader.Cancel()
	}
	s.queue.Close()
}

// send delivers ev. It reports false once nobody listens anymore.
func (s *Source) send(ev Event) bool {
	return s.queue.Send(ev) == nil
}

// decodeLoop turns chunks into events. Bytes of a sequence split across
// reads stay pending until the next chunk completes them or escTimeout
// passes, which is how a lone ESC becomes the escape key.
func (s *Source) decodeLoop(ctx context.Context, chunks <-chan []byte) {
	var (
		pending []byte
		flush   <-chan time.Time
		ok      bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case chunk, open := <-chunks:
			if !open {
				s.deliver(pending, true)
				return
			}
			pending, ok = s.deliver(append(pending, chunk...), false)
		case <-flush:
			pending, ok = s.deliver(pending, true)
		}
		if !ok {
			return
		}
		flush = nil
		if len(pending) > 0 {
			flush = time.After(escTimeout)
		}
	}
}

// deliver sends every complete event in b and returns the undecoded tail.
// With complete set, b is decoded to the end. It reports false once nobody
// listens anymore.
func (s *Source) deliver(b []byte, complete bool) ([]byte, bool) {
	for len(b) > 0 {
		ev, used := decode(b, complete)
		if used == 0 {
			break
		}
		b = b[used:]
		if !s.send(ev) {
			return nil, false
		}
	}
	return bytes.Clone(b), true
}

// readLoop hands every read to chunks until r stops or ctx ends.
func readLoop(ctx context.Context, r io.Reader, chunks chan<- []byte) {
	log := pslog.Ctx(ctx)
	buf := make([]byte, readBufferSize)
	failures := 0

	for {
		if ctx.Err() != nil {
			return
		}
		n, err := r.Read(buf)
		if n > 0 {
			failures = 0
			select {
			case chunks <- bytes.Clone(buf[:n]):
			case <-ctx.Done():
				return
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, cancelreader.ErrCanceled) {
			log.Debug("input: reader stopped", "err", err)
			return
		}

		failures++
		log.Warn("input: read failed", "err", err, "failures", failures)
		backoff := time.Duration(failures) * 10 * time.Millisecond
		if backoff > maxReadBackoff {
			backoff = maxReadBackoff
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

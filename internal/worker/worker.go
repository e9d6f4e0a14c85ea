// Package worker runs background processors next to the store. Every message
// the frontend sends is handed to every processor; whatever a processor
// returns goes back to the store as derived messages.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
	"github.com/LISSConsulting/LISSTech.Flux/internal/termination"
)

// Processor performs slow or fallible work for a message. It is called from
// a single goroutine per processor, so implementations need no locking of
// their own state. ctx is cancelled when the run terminates.
type Processor[M any] interface {
	Name() string
	Process(ctx context.Context, msg M) ([]M, error)
}

// Func adapts a function to Processor.
type Func[M any] struct {
	Label string
	Fn    func(ctx context.Context, msg M) ([]M, error)
}

// Name implements Processor.
func (f Func[M]) Name() string { return f.Label }

// Process implements Processor.
func (f Func[M]) Process(ctx context.Context, msg M) ([]M, error) { return f.Fn(ctx, msg) }

// Pool fans messages out to processors.
type Pool[M any, P any] struct {
	processors []Processor[M]
	dispatched atomic.Int64
	failed     atomic.Int64
}

// New creates a pool for processors.
func New[M any, P any](processors ...Processor[M]) *Pool[M, P] {
	return &Pool[M, P]{processors: processors}
}

// Dispatched returns the number of work units started so far.
func (p *Pool[M, P]) Dispatched() int64 { return p.dispatched.Load() }

// Failed returns the number of work units that returned an error or
// panicked.
func (p *Pool[M, P]) Failed() int64 { return p.failed.Load() }

// Run dispatches messages until the run terminates, messages closes or ctx
// ends. No work is started after termination and results of work still in
// flight at that point are discarded. Run returns after every processor
// goroutine has stopped.
func (p *Pool[M, P]) Run(
	ctx context.Context,
	messages <-chan M,
	derived bus.Sender[M],
	interrupts *termination.Receiver[P],
) (termination.Reason[P], error) {
	log := pslog.Ctx(ctx)
	runCtx, cancel := context.WithCancel(ctx)

	queues := make([]*bus.Unbounded[M], len(p.processors))
	var wg sync.WaitGroup
	for i, proc := range p.processors {
		q := bus.NewUnbounded[M]()
		queues[i] = q
		wg.Add(1)
		go func(proc Processor[M], q *bus.Unbounded[M]) {
			defer wg.Done()
			p.serve(runCtx, proc, q.C(), derived, interrupts)
		}(proc, q)
	}
	log.Debug("worker pool started", "processors", len(p.processors))

	stop := func() {
		cancel()
		for _, q := range queues {
			q.Close()
		}
		wg.Wait()
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return termination.Reason[P]{}, ctx.Err()
		case <-interrupts.Done():
			stop()
			reason, err := interrupts.Reason()
			if err != nil {
				return termination.Reason[P]{}, err
			}
			log.Debug("worker pool stopped", "reason", reason.Kind.String(), "dispatched", p.dispatched.Load())
			return reason, nil
		case msg, ok := <-messages:
			if !ok {
				// The bus closed; wait for the reason before returning.
				messages = nil
				continue
			}
			if interrupts.Resolved() {
				continue
			}
			for _, q := range queues {
				_ = q.Send(msg)
			}
		}
	}
}

func (p *Pool[M, P]) serve(
	ctx context.Context,
	proc Processor[M],
	queue <-chan M,
	derived bus.Sender[M],
	interrupts *termination.Receiver[P],
) {
	log := pslog.Ctx(ctx).With("processor", proc.Name())
	for {
		var msg M
		select {
		case <-ctx.Done():
			return
		case m, ok := <-queue:
			if !ok {
				return
			}
			msg = m
		}
		if interrupts.Resolved() || ctx.Err() != nil {
			return
		}

		p.dispatched.Add(1)
		out, err := p.process(ctx, proc, msg)
		if err != nil {
			p.failed.Add(1)
			log.Warn("worker: unit failed", "err", err)
			continue
		}
		for _, m := range out {
			if interrupts.Resolved() {
				log.Debug("worker: result discarded after termination")
				break
			}
			if err := derived.Send(m); err != nil {
				// The store is gone; shutdown is in progress.
				return
			}
		}
	}
}

// process calls proc, turning a panic into an error so one bad unit cannot
// take the pool down.
func (p *Pool[M, P]) process(ctx context.Context, proc Processor[M], msg M) (out []M, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker: %s panicked: %v", proc.Name(), r)
		}
	}()
	return proc.Process(ctx, msg)
}

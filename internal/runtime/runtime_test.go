package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend"
	"github.com/LISSConsulting/LISSTech.Flux/internal/store"
	"github.com/LISSConsulting/LISSTech.Flux/internal/termination"
	"github.com/LISSConsulting/LISSTech.Flux/internal/worker"
)

type pickState struct {
	items    []string
	selected string
	details  string
}

type pickMsg struct {
	kind string
	id   string
}

func (s pickState) Update(m pickMsg) (pickState, *store.Exit[string]) {
	switch m.kind {
	case "select":
		s.selected = m.id
	case "details":
		s.details = m.id
	case "submit":
		return s, store.Return(s.selected)
	case "quit":
		return s, store.Quit[string]()
	}
	return s, nil
}

func (s pickState) Tick() pickState { return s }

func run(t *testing.T, app App[pickState, pickMsg, string]) (termination.Reason[string], error) {
	t.Helper()
	app.NoSignals = true
	if app.TickRate == 0 {
		app.TickRate = time.Hour
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Run(ctx, app)
}

func TestRun_SubmitEndsWithPayload(t *testing.T) {
	var seen []pickState
	fe := frontend.Func[pickState, pickMsg](func(ctx context.Context, env frontend.Env[pickState, pickMsg]) error {
		first := <-env.Snapshots
		seen = append(seen, first)
		env.Send(pickMsg{kind: "select", id: first.items[1]})
		env.Send(pickMsg{kind: "submit"})
		for s := range env.Snapshots {
			seen = append(seen, s)
		}
		return nil
	})

	reason, err := run(t, App[pickState, pickMsg, string]{
		State:    pickState{items: []string{"A", "B"}},
		Frontend: fe,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reason.HasPayload() || *reason.Payload != "B" {
		t.Fatalf("reason = %v, want UserExit(B)", reason)
	}
	if len(seen) != 3 {
		t.Errorf("frontend saw %d snapshots, want 3", len(seen))
	}
	if code := ExitCode(reason, err); code != ExitOK {
		t.Errorf("ExitCode = %d", code)
	}
}

func TestRun_WorkerResultsReachTheStore(t *testing.T) {
	details := worker.Func[pickMsg]{Label: "details", Fn: func(_ context.Context, m pickMsg) ([]pickMsg, error) {
		if m.kind != "select" {
			return nil, nil
		}
		return []pickMsg{{kind: "details", id: "details of " + m.id}}, nil
	}}

	var final pickState
	fe := frontend.Func[pickState, pickMsg](func(ctx context.Context, env frontend.Env[pickState, pickMsg]) error {
		<-env.Snapshots
		env.Send(pickMsg{kind: "select", id: "A"})
		for s := range env.Snapshots {
			final = s
			if s.details != "" {
				env.Send(pickMsg{kind: "quit"})
			}
		}
		return nil
	})

	reason, err := run(t, App[pickState, pickMsg, string]{
		State:      pickState{items: []string{"A"}},
		Frontend:   fe,
		Processors: []worker.Processor[pickMsg]{details},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason.Kind != termination.UserExit || reason.HasPayload() {
		t.Fatalf("reason = %v, want payload-less UserExit", reason)
	}
	if final.details != "details of A" || final.selected != "A" {
		t.Errorf("final snapshot = %+v", final)
	}
}

func TestRun_InitMessages(t *testing.T) {
	details := worker.Func[pickMsg]{Label: "details", Fn: func(_ context.Context, m pickMsg) ([]pickMsg, error) {
		if m.kind != "select" {
			return nil, nil
		}
		return []pickMsg{{kind: "details", id: "details of " + m.id}}, nil
	}}

	var final pickState
	fe := frontend.Func[pickState, pickMsg](func(ctx context.Context, env frontend.Env[pickState, pickMsg]) error {
		for s := range env.Snapshots {
			final = s
			if s.details != "" {
				env.Send(pickMsg{kind: "quit"})
			}
		}
		return nil
	})

	_, err := run(t, App[pickState, pickMsg, string]{
		State:      pickState{items: []string{"A"}},
		Frontend:   fe,
		Processors: []worker.Processor[pickMsg]{details},
		Init:       []pickMsg{{kind: "select", id: "A"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final.selected != "A" || final.details != "details of A" {
		t.Errorf("init message not applied: %+v", final)
	}
}

func TestRun_FrontendError(t *testing.T) {
	boom := errors.New("terminal gone")
	fe := frontend.Func[pickState, pickMsg](func(ctx context.Context, env frontend.Env[pickState, pickMsg]) error {
		<-env.Snapshots
		return boom
	})

	reason, err := run(t, App[pickState, pickMsg, string]{Frontend: fe})
	if !errors.Is(err, boom) {
		t.Fatalf("expected frontend error, got %v", err)
	}
	if code := ExitCode(reason, err); code != ExitError {
		t.Errorf("ExitCode = %d, want %d", code, ExitError)
	}
}

func TestRun_FrontendLeavingIsUnexpected(t *testing.T) {
	fe := frontend.Func[pickState, pickMsg](func(ctx context.Context, env frontend.Env[pickState, pickMsg]) error {
		<-env.Snapshots
		return nil
	})

	_, err := run(t, App[pickState, pickMsg, string]{Frontend: fe})
	if !errors.Is(err, termination.ErrUnexpectedExit) {
		t.Fatalf("expected ErrUnexpectedExit, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	v := "x"
	tests := []struct {
		name   string
		reason termination.Reason[string]
		err    error
		want   int
	}{
		{"payload", termination.Exited(&v), nil, ExitOK},
		{"no payload", termination.Exited[string](nil), nil, ExitOK},
		{"interrupt", termination.Interrupted[string](), nil, ExitInterrupted},
		{"error", termination.Reason[string]{}, errors.New("x"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.reason, tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

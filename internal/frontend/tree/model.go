// Package tree is the component-tree frontend: a bubbletea program whose
// root component is rebuilt from every published snapshot.
package tree

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Flux/internal/bus"
	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
)

// Component is the root of the view tree. It keeps its own view-local state
// (scroll positions, sizes) and derives everything else from snapshots.
type Component[S any, M any] interface {
	// Update hands over a new snapshot. The same snapshot may arrive twice.
	Update(state S)
	// HandleKey turns a key press into messages for the store.
	HandleKey(k input.Key) []M
	// Resize records the new terminal size and returns messages the new
	// size implies, such as a changed page size.
	Resize(width, height int) []M
	View() string
}

// snapshotMsg carries a published state.
type snapshotMsg[S any] struct{ state S }

// snapshotsClosedMsg signals the store stopped publishing.
type snapshotsClosedMsg struct{}

// terminatedMsg signals the run was terminated.
type terminatedMsg struct{}

// eventMsg carries one input event.
type eventMsg input.Event

// Model is the bubbletea model driving a Component.
type Model[S any, M any] struct {
	root      Component[S, M]
	snapshots <-chan S
	messages  bus.Sender[M]
	done      <-chan struct{}

	ready  bool // first snapshot received
	width  int
	height int
}

// NewModel creates a Model for root fed from snapshots.
func NewModel[S any, M any](root Component[S, M], snapshots <-chan S, messages bus.Sender[M], done <-chan struct{}) Model[S, M] {
	return Model[S, M]{
		root:      root,
		snapshots: snapshots,
		messages:  messages,
		done:      done,
		width:     80,
		height:    24,
	}
}

// Init returns the initial commands: wait for the first snapshot and for
// termination.
func (m Model[S, M]) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), waitForDone(m.done))
}

// waitForSnapshot blocks on the snapshot channel.
func waitForSnapshot[S any](ch <-chan S) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return snapshotsClosedMsg{}
		}
		return snapshotMsg[S]{state: s}
	}
}

func waitForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return terminatedMsg{}
	}
}

// Update handles incoming bubbletea messages.
func (m Model[S, M]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg[S]:
		m.root.Update(msg.state)
		if !m.ready {
			m.ready = true
			m.send(m.root.Resize(m.width, m.height))
		}
		return m, waitForSnapshot(m.snapshots)

	case snapshotsClosedMsg, terminatedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case eventMsg:
		ev := input.Event(msg)
		switch ev.Kind {
		case input.EventResize:
			return m.resize(ev.Width, ev.Height), nil
		case input.EventKey:
			if m.ready {
				m.send(m.root.HandleKey(ev.Key))
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model[S, M]) resize(w, h int) Model[S, M] {
	if w == m.width && h == m.height {
		return m
	}
	m.width, m.height = w, h
	m.send(m.root.Resize(w, h))
	return m
}

// send forwards messages to the store. A failed send means shutdown is in
// progress; the terminated message follows.
func (m Model[S, M]) send(msgs []M) {
	for _, msg := range msgs {
		if m.messages.Send(msg) != nil {
			return
		}
	}
}

// View renders the root component, or nothing before the first snapshot.
func (m Model[S, M]) View() string {
	if !m.ready {
		return ""
	}
	return m.root.View()
}

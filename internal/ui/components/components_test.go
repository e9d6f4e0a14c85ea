package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestDetailsView(t *testing.T) {
	v := NewDetailsView(20, 3).SetContent("a", numbered(10))
	if !strings.Contains(v.View(), "line 0") {
		t.Fatalf("expected first line visible, got %q", v.View())
	}

	v = v.ScrollDown(4)
	if v.Offset() != 4 {
		t.Fatalf("offset after scroll = %d", v.Offset())
	}

	t.Run("same key keeps position", func(t *testing.T) {
		same := v.SetContent("a", numbered(12))
		if same.Offset() != 4 {
			t.Errorf("offset = %d, want 4", same.Offset())
		}
	})

	t.Run("new key scrolls to top", func(t *testing.T) {
		other := v.SetContent("b", numbered(12))
		if other.Offset() != 0 {
			t.Errorf("offset = %d, want 0", other.Offset())
		}
	})

	t.Run("scroll up stops at top", func(t *testing.T) {
		up := v.ScrollUp(10)
		if up.Offset() != 0 {
			t.Errorf("offset = %d, want 0", up.Offset())
		}
	})
}

func TestShortcuts(t *testing.T) {
	s := NewShortcuts(lipgloss.NewStyle())
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}

	short := ansi.Strip(s.Short(bindings, 80))
	if !strings.Contains(short, "enter show") || !strings.Contains(short, "q quit") {
		t.Errorf("unexpected short help %q", short)
	}

	full := ansi.Strip(s.Full([][]key.Binding{bindings}, 80))
	if !strings.Contains(full, "enter") || !strings.Contains(full, "quit") {
		t.Errorf("unexpected full help %q", full)
	}
}

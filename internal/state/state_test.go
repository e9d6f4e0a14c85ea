package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type cursorState struct {
	Selected string `json:"selected"`
	Sort     string `json:"sort"`
}

func TestIdentifier(t *testing.T) {
	a := Identifier("patch", "select", "/src/heartwood")
	b := Identifier("patch", "select", "/src/heartwood")
	if a != b {
		t.Errorf("identifier not stable: %s != %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected md5 hex digest, got %q", a)
	}

	others := []string{
		Identifier("issue", "select", "/src/heartwood"),
		Identifier("patch", "show", "/src/heartwood"),
		Identifier("patch", "select", "/src/other"),
		Identifier("patch", "select", "/src/heartwood", "abc123"),
	}
	for _, o := range others {
		if o == a {
			t.Errorf("expected distinct identifier, got %s twice", o)
		}
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "states")
	s, err := NewFileStore(dir, Identifier("inbox", "select", "/repo"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := Load[cursorState](s); !errors.Is(err, ErrNoState) {
		t.Fatalf("expected ErrNoState before first save, got %v", err)
	}

	want := cursorState{Selected: "9f1c2ab", Sort: "timestamp"}
	if err := Save(s, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load[cursorState](s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "broken")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load[cursorState](s); err == nil || errors.Is(err, ErrNoState) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "concurrent")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Save(s, cursorState{Selected: "x", Sort: "id"})
		}()
	}
	wg.Wait()

	if _, err := Load[cursorState](s); err != nil {
		t.Fatalf("state must stay readable: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

package input

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// StartTerminal reads key events from in and, where the platform supports
// it, adds resize events measured on out.
func StartTerminal(ctx context.Context, in, out *os.File) *Source {
	s := Start(ctx, in)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		watchResize(ctx, out, s.send)
	}()
	return s
}

// MakeRaw switches f to raw mode and returns the func restoring the previous
// mode. It does nothing when f is not a terminal.
func MakeRaw(f *os.File) (restore func() error, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("input: raw mode: %w", err)
	}
	return func() error { return term.Restore(fd, old) }, nil
}

// Size returns the dimensions of the terminal behind f.
func Size(f *os.File) (width, height int, err error) {
	width, height, err = term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("input: terminal size: %w", err)
	}
	return width, height, nil
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

//go:build windows

package input

import (
	"context"
	"os"
)

// watchResize is a no-op: the console has no out-of-band resize signal.
func watchResize(ctx context.Context, _ *os.File, _ func(Event) bool) {
	<-ctx.Done()
}

//go:build windows

package termination

import "os"

var interruptSignals = []os.Signal{os.Interrupt}

package termination

import "fmt"

// Kind says why a run ended.
type Kind int

const (
	// OsInterrupt means the process received an interrupt or terminate signal.
	OsInterrupt Kind = iota
	// UserExit means the application state asked to exit, with or without a
	// payload.
	UserExit
)

// String returns a stable, lower-case label used in logs.
func (k Kind) String() string {
	switch k {
	case OsInterrupt:
		return "os_interrupt"
	case UserExit:
		return "user_exit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reason is the single value broadcast when a run ends. Payload is only ever
// set for UserExit and may be nil when the user exited without a result.
type Reason[P any] struct {
	Kind    Kind
	Payload *P
}

// Interrupted builds the OsInterrupt reason.
func Interrupted[P any]() Reason[P] {
	return Reason[P]{Kind: OsInterrupt}
}

// Exited builds a UserExit reason carrying payload (nil for none).
func Exited[P any](payload *P) Reason[P] {
	return Reason[P]{Kind: UserExit, Payload: payload}
}

// HasPayload reports whether the reason carries an exit payload.
func (r Reason[P]) HasPayload() bool {
	return r.Kind == UserExit && r.Payload != nil
}

func (r Reason[P]) String() string {
	if r.HasPayload() {
		return fmt.Sprintf("%s(%v)", r.Kind, *r.Payload)
	}
	return r.Kind.String()
}

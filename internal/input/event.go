// Package input turns raw terminal input into a typed event stream. Reads
// happen on a dedicated goroutine; events are delivered on an unbounded
// queue so a slow consumer never stalls the reader.
package input

import (
	"fmt"
	"strings"
)

// KeyCode identifies a key independent of modifiers.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBackTab
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEsc
)

var keyNames = map[KeyCode]string{
	KeyUnknown:   "unknown",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyBackTab:   "shift+tab",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyEsc:       "esc",
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModAlt Modifiers = 1 << iota
	ModCtrl
	ModShift
)

// Key is one decoded key press.
type Key struct {
	Code KeyCode
	Rune rune // set for KeyRune
	Mod  Modifiers
}

// Char is a plain printable key.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Ctrl is ctrl+r.
func Ctrl(r rune) Key { return Key{Code: KeyRune, Rune: r, Mod: ModCtrl} }

// Alt is alt+r.
func Alt(r rune) Key { return Key{Code: KeyRune, Rune: r, Mod: ModAlt} }

// Named is a non-rune key without modifiers.
func Named(code KeyCode) Key { return Key{Code: code} }

// String renders the key the way bubbletea names keys ("ctrl+c", "up", "q",
// "alt+enter") so key bindings read the same in every frontend.
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModShift != 0 && k.Code != KeyBackTab {
		b.WriteString("shift+")
	}
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' && k.Mod == 0 {
			b.WriteString(" ")
		} else {
			b.WriteRune(k.Rune)
		}
	default:
		name, ok := keyNames[k.Code]
		if !ok {
			name = fmt.Sprintf("key(%d)", int(k.Code))
		}
		b.WriteString(name)
	}
	return b.String()
}

// EventKind discriminates Event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventKey
	EventResize
)

// Event is one occurrence on the input stream.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// KeyEvent wraps k.
func KeyEvent(k Key) Event { return Event{Kind: EventKey, Key: k} }

// ResizeEvent reports new terminal dimensions.
func ResizeEvent(w, h int) Event { return Event{Kind: EventResize, Width: w, Height: h} }

package input

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const esc = 0x1b

// Decode decodes the first event in b and returns it with the number of
// bytes consumed. b is taken as complete input: it consumes at least one byte
// when b is non-empty, and a lone ESC at the end of b decodes as the escape
// key.
func Decode(b []byte) (Event, int) {
	return decode(b, true)
}

// decode is Decode for input that may continue. Unless complete is set, a
// sequence cut off at the end of b consumes nothing, so the caller can wait
// for the rest.
func decode(b []byte, complete bool) (Event, int) {
	if len(b) == 0 {
		return Event{}, 0
	}

	c := b[0]
	if c == esc {
		return decodeEscape(b, complete)
	}
	if c < utf8.RuneSelf {
		return KeyEvent(controlKey(c)), 1
	}

	if !complete && !utf8.FullRune(b) {
		return Event{}, 0
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return Event{Kind: EventUnknown}, 1
	}
	return KeyEvent(Char(r)), size
}

// controlKey maps a single ASCII byte.
func controlKey(c byte) Key {
	switch {
	case c == '\r' || c == '\n':
		return Named(KeyEnter)
	case c == '\t':
		return Named(KeyTab)
	case c == 0x7f || c == 0x08:
		return Named(KeyBackspace)
	case c == 0x00:
		return Ctrl(' ')
	case c >= 0x01 && c <= 0x1a:
		return Ctrl(rune('a' + c - 1))
	case c < 0x20:
		return Named(KeyUnknown)
	default:
		return Char(rune(c))
	}
}

func decodeEscape(b []byte, complete bool) (Event, int) {
	if len(b) == 1 {
		if !complete {
			return Event{}, 0
		}
		return KeyEvent(Named(KeyEsc)), 1
	}
	switch b[1] {
	case '[':
		return decodeCSI(b, complete)
	case 'O':
		return decodeSS3(b, complete)
	case esc:
		return KeyEvent(Named(KeyEsc)), 1
	}

	// alt+key
	ev, n := decode(b[1:], complete)
	if n == 0 {
		return Event{}, 0
	}
	if ev.Kind != EventKey {
		return Event{Kind: EventUnknown}, 1 + n
	}
	ev.Key.Mod |= ModAlt
	return ev, 1 + n
}

// decodeSS3 handles ESC O <final>, sent by some terminals for arrows,
// home and end in application cursor mode.
func decodeSS3(b []byte, complete bool) (Event, int) {
	if len(b) < 3 {
		if !complete {
			return Event{}, 0
		}
		return KeyEvent(Alt('O')), 2
	}
	if code, ok := finalKeys[b[2]]; ok {
		return KeyEvent(Named(code)), 3
	}
	return Event{Kind: EventUnknown}, 3
}

var finalKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeKeys = map[int]KeyCode{
	1: KeyHome,
	7: KeyHome,
	4: KeyEnd,
	8: KeyEnd,
	3: KeyDelete,
	5: KeyPageUp,
	6: KeyPageDown,
}

// decodeCSI handles ESC [ params final.
func decodeCSI(b []byte, complete bool) (Event, int) {
	i := 2
	for i < len(b) && (b[i] >= '0' && b[i] <= '9' || b[i] == ';') {
		i++
	}
	if i >= len(b) {
		if !complete {
			return Event{}, 0
		}
		// Truncated for good: drop what we have.
		return Event{Kind: EventUnknown}, len(b)
	}
	final := b[i]
	n := i + 1
	if final < 0x40 || final > 0x7e {
		return Event{Kind: EventUnknown}, n
	}

	params := parseParams(string(b[2:i]))
	mod := Modifiers(0)
	if len(params) >= 2 {
		mod = csiModifiers(params[1])
	}

	switch final {
	case '~':
		if len(params) == 0 {
			return Event{Kind: EventUnknown}, n
		}
		code, ok := tildeKeys[params[0]]
		if !ok {
			return Event{Kind: EventUnknown}, n
		}
		return KeyEvent(Key{Code: code, Mod: mod}), n
	case 'Z':
		return KeyEvent(Named(KeyBackTab)), n
	}

	if code, ok := finalKeys[final]; ok {
		return KeyEvent(Key{Code: code, Mod: mod}), n
	}
	return Event{Kind: EventUnknown}, n
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

// csiModifiers decodes the xterm modifier parameter (1 + bitmask).
func csiModifiers(p int) Modifiers {
	if p <= 1 {
		return 0
	}
	bits := p - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// Package browse is the selection application flux runs: a list of inbox
// notifications, issues or patches the user moves through, searches and
// finally picks from.
package browse

import (
	"fmt"
	"strings"
)

// Kind is what a selector lists.
type Kind int

const (
	KindInbox Kind = iota
	KindIssues
	KindPatches
)

var kindNames = [...]string{
	KindInbox:   "inbox",
	KindIssues:  "issue",
	KindPatches: "patch",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title is the plural shown in the header.
func (k Kind) Title() string {
	switch k {
	case KindIssues:
		return "issues"
	case KindPatches:
		return "patches"
	default:
		return "inbox"
	}
}

// Mode decides what a selector returns.
type Mode int

const (
	// ModeOperation returns an operation together with the chosen id.
	ModeOperation Mode = iota
	// ModeID returns the chosen id only.
	ModeID
)

var modeNames = [...]string{
	ModeOperation: "operation",
	ModeID:        "id",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "operation" or "id".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("browse: unknown mode %q (want operation or id)", s)
}

// Operations a selection can carry.
const (
	OpShow     = "show"
	OpClear    = "clear"
	OpEdit     = "edit"
	OpCheckout = "checkout"
	OpComment  = "comment"
	OpDelete   = "delete"
)

// operation binds a key to an operation in ModeOperation.
type operation struct {
	key  string
	name string
}

// operations lists the per-kind operation keys besides enter, which always
// means show.
var operations = map[Kind][]operation{
	KindInbox: {
		{"c", OpClear},
	},
	KindIssues: {
		{"e", OpEdit},
	},
	KindPatches: {
		{"c", OpCheckout},
		{"m", OpComment},
		{"e", OpEdit},
		{"d", OpDelete},
	},
}

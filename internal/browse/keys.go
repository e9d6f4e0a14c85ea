package browse

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
)

// KeyMap holds the bindings of one selector. Both frontends translate key
// presses through it, so the selectors behave the same in each.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Choose   key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding

	Operations []key.Binding // ModeOperation only; Help().Desc is the operation

	SearchApply  key.Binding
	SearchCancel key.Binding
	SearchDelete key.Binding

	DetailsUp   key.Binding
	DetailsDown key.Binding
}

// Keys returns the bindings for a selector.
func Keys(kind Kind, mode Mode) KeyMap {
	choose := "select"
	if mode == ModeOperation {
		choose = OpShow
	}
	km := KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		Choose:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", choose)),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		SearchApply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		SearchCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SearchDelete: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
		DetailsUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "scroll details up")),
		DetailsDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "scroll details down")),
	}
	if mode == ModeOperation {
		for _, op := range operations[kind] {
			km.Operations = append(km.Operations,
				key.NewBinding(key.WithKeys(op.key), key.WithHelp(op.key, op.name)))
		}
	}
	return km
}

// ShortHelp is the hint bar below the list.
func (k KeyMap) ShortHelp() []key.Binding {
	out := []key.Binding{k.Choose}
	out = append(out, k.Operations...)
	return append(out, k.Search, k.Help, k.Quit)
}

// SearchHelp is the hint bar while the search input is open.
func (k KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.SearchApply, k.SearchCancel}
}

// FullHelp is the help page.
func (k KeyMap) FullHelp() [][]key.Binding {
	nav := []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End}
	actions := append([]key.Binding{k.Choose}, k.Operations...)
	other := []key.Binding{k.Search, k.DetailsUp, k.DetailsDown, k.Help, k.Quit}
	return [][]key.Binding{nav, actions, other}
}

// KeyMessages translates a key press into messages for s. Navigation is
// resolved against s, so the resulting Select names the item the user saw.
func KeyMessages(s State, k input.Key) []Message {
	km := Keys(s.kind, s.mode)

	// ctrl+c quits from everywhere, the search input included.
	if k.String() == "ctrl+c" {
		return []Message{Quit{}}
	}

	switch {
	case s.help:
		if key.Matches(k, km.Help, km.Quit) {
			return []Message{ToggleHelp{}}
		}
		return nil

	case s.searching:
		return searchMessages(s, km, k)
	}

	if key.Matches(k, km.Quit) {
		return []Message{Quit{}}
	}
	if key.Matches(k, km.Choose) {
		return []Message{Choose{}}
	}
	for _, op := range km.Operations {
		if key.Matches(k, op) {
			return []Message{Choose{Operation: op.Help().Desc}}
		}
	}
	switch {
	case key.Matches(k, km.Search):
		return []Message{OpenSearch{}}
	case key.Matches(k, km.Help):
		return []Message{ToggleHelp{}}
	}

	if target, ok := navigate(s, km, k); ok {
		return []Message{Select{Index: target, ID: s.items[target].ID}}
	}
	return nil
}

func searchMessages(s State, km KeyMap, k input.Key) []Message {
	var msg Message
	value := s.search.Read()
	switch {
	case key.Matches(k, km.SearchApply):
		msg = ApplySearch{}
	case key.Matches(k, km.SearchCancel):
		msg = CloseSearch{}
	case key.Matches(k, km.SearchDelete):
		r := []rune(value)
		if len(r) == 0 {
			return nil
		}
		msg = UpdateSearch{Value: string(r[:len(r)-1])}
	case k.Code == input.KeyRune && k.Mod&(input.ModCtrl|input.ModAlt) == 0:
		msg = UpdateSearch{Value: value + string(k.Rune)}
	default:
		return nil
	}

	// Searching may move the cursor to another item; announce it so its
	// details get loaded.
	msgs := []Message{msg}
	next, _ := s.Update(msg)
	if item, ok := next.Selected(); ok {
		if prev, had := s.Selected(); !had || prev.ID != item.ID {
			msgs = append(msgs, Select{Index: next.cursor, ID: item.ID})
		}
	}
	return msgs
}

// navigate returns the index a navigation key moves the cursor to.
func navigate(s State, km KeyMap, k input.Key) (int, bool) {
	n := len(s.items)
	if n == 0 {
		return 0, false
	}
	cur := max(s.cursor, 0)
	page := max(s.pageSize, 1)

	var target int
	switch {
	case key.Matches(k, km.Up):
		target = cur - 1
	case key.Matches(k, km.Down):
		target = cur + 1
	case key.Matches(k, km.PageUp):
		target = cur - page
	case key.Matches(k, km.PageDown):
		target = cur + page
	case key.Matches(k, km.Home):
		target = 0
	case key.Matches(k, km.End):
		target = n - 1
	default:
		return 0, false
	}
	target = min(max(target, 0), n-1)
	if target == s.cursor {
		return 0, false
	}
	return target, true
}

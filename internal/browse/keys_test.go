package browse

import (
	"reflect"
	"testing"

	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
)

func TestKeyMessages(t *testing.T) {
	base := loadIssues(t, ModeOperation)
	base, _ = base.Update(PageSizeChanged{Size: 2})
	searching, _ := base.Update(OpenSearch{})
	help, _ := base.Update(ToggleHelp{})
	idMode := loadIssues(t, ModeID)

	tests := []struct {
		name  string
		state State
		key   input.Key
		want  []Message
	}{
		{"down", base, input.Char('j'), []Message{Select{Index: 1, ID: "bbbbbbbbbb"}}},
		{"arrow down", base, input.Named(input.KeyDown), []Message{Select{Index: 1, ID: "bbbbbbbbbb"}}},
		{"up at top", base, input.Char('k'), nil},
		{"end", base, input.Char('G'), []Message{Select{Index: 2, ID: "dddddddddd"}}},
		{"page down", base, input.Named(input.KeyPageDown), []Message{Select{Index: 2, ID: "dddddddddd"}}},
		{"choose", base, input.Named(input.KeyEnter), []Message{Choose{}}},
		{"operation key", base, input.Char('e'), []Message{Choose{Operation: OpEdit}}},
		{"no operations in id mode", idMode, input.Char('e'), nil},
		{"open search", base, input.Char('/'), []Message{OpenSearch{}}},
		{"help", base, input.Char('?'), []Message{ToggleHelp{}}},
		{"quit", base, input.Char('q'), []Message{Quit{}}},
		{"esc quits", base, input.Named(input.KeyEsc), []Message{Quit{}}},
		{"details scroll is view local", base, input.Ctrl('d'), nil},
		{"typing in search", searching, input.Char('q'), []Message{UpdateSearch{Value: "q"}}},
		{"esc closes search", searching, input.Named(input.KeyEsc), []Message{CloseSearch{}}},
		{"enter applies search", searching, input.Named(input.KeyEnter), []Message{ApplySearch{}}},
		{"backspace on empty search", searching, input.Named(input.KeyBackspace), nil},
		{"ctrl+c in search", searching, input.Ctrl('c'), []Message{Quit{}}},
		{"q closes help", help, input.Char('q'), []Message{ToggleHelp{}}},
		{"navigation ignored in help", help, input.Char('j'), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyMessages(tt.state, tt.key)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeyMessages(%s) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeyMessages_SearchMovesSelection(t *testing.T) {
	s := loadIssues(t, ModeOperation)
	s, _ = s.Update(OpenSearch{})
	s, _ = s.Update(UpdateSearch{Value: "pe"})

	// "per" only matches the perf label, away from the cursor.
	got := KeyMessages(s, input.Char('r'))
	want := []Message{UpdateSearch{Value: "per"}, Select{Index: 0, ID: "dddddddddd"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	s = Predict(s, got)
	if item, _ := s.Selected(); item.ID != "dddddddddd" {
		t.Errorf("predicted selection = %s", item.ID)
	}
	got = KeyMessages(s, input.Named(input.KeyBackspace))
	if !reflect.DeepEqual(got, []Message{UpdateSearch{Value: "pe"}}) {
		t.Errorf("backspace = %#v", got)
	}
}

func TestKeys_HelpListsOperations(t *testing.T) {
	km := Keys(KindPatches, ModeOperation)
	var names []string
	for _, b := range km.Operations {
		names = append(names, b.Help().Desc)
	}
	want := []string{OpCheckout, OpComment, OpEdit, OpDelete}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("operations = %v, want %v", names, want)
	}
	if got := km.Choose.Help().Desc; got != OpShow {
		t.Errorf("choose help = %q", got)
	}
	if got := Keys(KindPatches, ModeID).Operations; len(got) != 0 {
		t.Errorf("id mode operations = %v", got)
	}
}

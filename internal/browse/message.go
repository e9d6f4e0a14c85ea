package browse

import "github.com/LISSConsulting/LISSTech.Flux/internal/git"

// Message is a change request for State. Frontends derive messages from
// key presses and resizes; processors answer with derived messages.
type Message interface {
	message()
}

// Quit ends the run without a selection.
type Quit struct{}

// Choose ends the run with the item under the cursor. An empty Operation
// means show in ModeOperation and no operation in ModeID.
type Choose struct {
	Operation string
}

// Select moves the cursor to the item with ID. Index is the position the
// sender saw it at and is used when ID is empty.
type Select struct {
	Index int
	ID    string
}

// PageSizeChanged reports how many rows the frontend shows.
type PageSizeChanged struct {
	Size int
}

// OpenSearch opens the search input.
type OpenSearch struct{}

// UpdateSearch replaces the pending search text.
type UpdateSearch struct {
	Value string
}

// ApplySearch commits the pending search text and closes the input.
type ApplySearch struct{}

// CloseSearch drops the pending search text and closes the input.
type CloseSearch struct{}

// ToggleHelp shows or hides the help page.
type ToggleHelp struct{}

// DetailsLoaded carries the details of the item with ID.
type DetailsLoaded struct {
	ID      string
	Body    string
	Commits []git.Commit
	Stat    string
	Err     string
}

func (Quit) message()            {}
func (Choose) message()          {}
func (Select) message()          {}
func (PageSizeChanged) message() {}
func (OpenSearch) message()      {}
func (UpdateSearch) message()    {}
func (ApplySearch) message()     {}
func (CloseSearch) message()     {}
func (ToggleHelp) message()      {}
func (DetailsLoaded) message()   {}

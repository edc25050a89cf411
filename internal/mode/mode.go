// Package mode maps key presses to semantic actions. Dispatch is a pure
// function of the key map, the current mode and the key.
package mode

import "fmt"

// SearchKind distinguishes the two search flavours.
type SearchKind int

const (
	SearchNone SearchKind = iota
	SearchRegular
	SearchGlobal
)

// Mode is Normal (the zero value) or one of the search modes. Depth only
// applies to global search.
type Mode struct {
	Search SearchKind
	Depth  int
}

func Normal() Mode {
	return Mode{}
}

func Search() Mode {
	return Mode{Search: SearchRegular}
}

func Global(depth int) Mode {
	return Mode{Search: SearchGlobal, Depth: depth}
}

func (m Mode) IsSearch() bool {
	return m.Search != SearchNone
}

func (m Mode) String() string {
	switch m.Search {
	case SearchRegular:
		return "SEARCH"
	case SearchGlobal:
		return fmt.Sprintf("GLOBAL(%d)", m.Depth)
	default:
		return "NORMAL"
	}
}

// Kind identifies an action.
type Kind int

const (
	None Kind = iota
	Up
	Down
	UpDir
	Open
	Delete
	ToggleCurrent
	EnterMode
	AddToSearch
	PopFromSearch
	FreezeSearch
	Quit
	Refresh
	Yank
)

var kindNames = [...]string{
	None:          "none",
	Up:            "up",
	Down:          "down",
	UpDir:         "up-dir",
	Open:          "open",
	Delete:        "delete",
	ToggleCurrent: "toggle",
	EnterMode:     "enter-mode",
	AddToSearch:   "add-to-search",
	PopFromSearch: "pop-from-search",
	FreezeSearch:  "freeze-search",
	Quit:          "quit",
	Refresh:       "refresh",
	Yank:          "yank",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is what the controller applies. Mode is set for EnterMode, Text for
// AddToSearch.
type Action struct {
	Kind Kind
	Mode Mode
	Text string
}

func (a Action) String() string {
	switch a.Kind {
	case EnterMode:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Mode)
	case AddToSearch:
		return fmt.Sprintf("%s(%q)", a.Kind, a.Text)
	default:
		return a.Kind.String()
	}
}

package mode

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
)

// Binding names as used in the configuration file.
const (
	BindDown         = "down"
	BindUp           = "up"
	BindParent       = "parent"
	BindOpen         = "open"
	BindDelete       = "delete"
	BindToggle       = "toggle"
	BindSearch       = "search"
	BindGlobalSearch = "global_search"
	BindQuit         = "quit"
	BindCancel       = "cancel"
	BindRefresh      = "refresh"
	BindYank         = "yank"
	BindHelp         = "help"
)

// DefaultGlobalDepth is the depth carried by Global search unless configured.
const DefaultGlobalDepth = 10

// KeyMap holds the Normal-mode bindings. Search-mode keys are fixed.
type KeyMap struct {
	Down         key.Binding
	Up           key.Binding
	Parent       key.Binding
	Open         key.Binding
	Delete       key.Binding
	Toggle       key.Binding
	Search       key.Binding
	GlobalSearch key.Binding
	Quit         key.Binding
	Cancel       key.Binding
	Refresh      key.Binding
	Yank         key.Binding
	// Help is handled by the view; Dispatch never returns an action for it.
	Help key.Binding

	GlobalDepth int
}

// DefaultKeys lists the default keys per binding name.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		BindDown:         {"j", "down"},
		BindUp:           {"k", "up"},
		BindParent:       {"h", "left", "backspace"},
		BindOpen:         {"l", "right", "enter", "o"},
		BindDelete:       {"d", "delete"},
		BindToggle:       {" ", "t"},
		BindSearch:       {"/", "s"},
		BindGlobalSearch: {"g"},
		BindQuit:         {"q", "ctrl+c"},
		BindCancel:       {"esc"},
		BindRefresh:      {"r"},
		BindYank:         {"y"},
		BindHelp:         {"?"},
	}
}

var helpText = map[string]string{
	BindDown:         "down",
	BindUp:           "up",
	BindParent:       "parent dir",
	BindOpen:         "open",
	BindDelete:       "delete",
	BindToggle:       "select",
	BindSearch:       "search",
	BindGlobalSearch: "global search",
	BindQuit:         "quit",
	BindCancel:       "clear filter",
	BindRefresh:      "refresh",
	BindYank:         "copy path",
	BindHelp:         "toggle help",
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	km, _ := NewKeyMap(nil, DefaultGlobalDepth)
	return km
}

// NewKeyMap builds a KeyMap from the defaults with overrides applied.
// Unknown binding names and empty key lists are rejected.
func NewKeyMap(overrides map[string][]string, globalDepth int) (KeyMap, error) {
	keys := DefaultKeys()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := keys[name]; !ok {
			return KeyMap{}, fmt.Errorf("unknown key binding %q", name)
		}
		if len(overrides[name]) == 0 {
			return KeyMap{}, fmt.Errorf("key binding %q has no keys", name)
		}
		keys[name] = overrides[name]
	}
	if globalDepth <= 0 {
		globalDepth = DefaultGlobalDepth
	}

	bind := func(name string) key.Binding {
		k := keys[name]
		return key.NewBinding(
			key.WithKeys(k...),
			key.WithHelp(helpKey(k[0]), helpText[name]),
		)
	}
	return KeyMap{
		Down:         bind(BindDown),
		Up:           bind(BindUp),
		Parent:       bind(BindParent),
		Open:         bind(BindOpen),
		Delete:       bind(BindDelete),
		Toggle:       bind(BindToggle),
		Search:       bind(BindSearch),
		GlobalSearch: bind(BindGlobalSearch),
		Quit:         bind(BindQuit),
		Cancel:       bind(BindCancel),
		Refresh:      bind(BindRefresh),
		Yank:         bind(BindYank),
		Help:         bind(BindHelp),
		GlobalDepth:  globalDepth,
	}, nil
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Parent, k.Toggle, k.Delete, k.Search, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Open, k.Parent},
		{k.Toggle, k.Delete, k.Yank, k.Refresh},
		{k.Search, k.GlobalSearch, k.Cancel, k.Quit},
		{k.Help},
	}
}

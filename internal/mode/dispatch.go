package mode

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Dispatch maps a key press in mode m to an action. It never fails;
// unbound keys yield a None action.
func Dispatch(keys KeyMap, m Mode, msg tea.KeyMsg) Action {
	if m.IsSearch() {
		return dispatchSearch(keys, msg)
	}
	return dispatchNormal(keys, msg)
}

func dispatchNormal(keys KeyMap, msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, keys.Down):
		return Action{Kind: Down}
	case key.Matches(msg, keys.Up):
		return Action{Kind: Up}
	case key.Matches(msg, keys.Parent):
		return Action{Kind: UpDir}
	case key.Matches(msg, keys.Open):
		return Action{Kind: Open}
	case key.Matches(msg, keys.Delete):
		return Action{Kind: Delete}
	case key.Matches(msg, keys.Toggle):
		return Action{Kind: ToggleCurrent}
	case key.Matches(msg, keys.Search):
		return Action{Kind: EnterMode, Mode: Search()}
	case key.Matches(msg, keys.GlobalSearch):
		return Action{Kind: EnterMode, Mode: Global(keys.GlobalDepth)}
	case key.Matches(msg, keys.Quit):
		return Action{Kind: Quit}
	case key.Matches(msg, keys.Cancel):
		return Action{Kind: EnterMode, Mode: Normal()}
	case key.Matches(msg, keys.Refresh):
		return Action{Kind: Refresh}
	case key.Matches(msg, keys.Yank):
		return Action{Kind: Yank}
	}
	return Action{}
}

func dispatchSearch(keys KeyMap, msg tea.KeyMsg) Action {
	switch msg.Type {
	case tea.KeyEsc:
		return Action{Kind: EnterMode, Mode: Normal()}
	case tea.KeyEnter:
		return Action{Kind: FreezeSearch}
	case tea.KeyBackspace:
		return Action{Kind: PopFromSearch}
	case tea.KeyUp, tea.KeyCtrlP:
		return Action{Kind: Up}
	case tea.KeyDown, tea.KeyCtrlN:
		return Action{Kind: Down}
	case tea.KeyCtrlC:
		return Action{Kind: Quit}
	case tea.KeySpace:
		return Action{Kind: AddToSearch, Text: " "}
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return Action{}
		}
		// alt+key reaches the Normal-mode binding without leaving search
		if msg.Alt {
			return dispatchNormal(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: msg.Runes})
		}
		return Action{Kind: AddToSearch, Text: string(msg.Runes)}
	}
	return Action{}
}

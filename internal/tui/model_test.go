package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fls/internal/config"
	"fls/internal/controller"
	"fls/internal/entry"
	"fls/internal/mode"
)

type memFS map[string][]entry.Entry

func (f memFS) List(_ context.Context, dir string) ([]entry.Entry, error) {
	return f[dir], nil
}

func (memFS) Delete(context.Context, string, bool) error { return nil }

func (memFS) Open(context.Context, string) error { return nil }

func newTestModel(t *testing.T, names ...string) model {
	t.Helper()
	dir := filepath.FromSlash("/w")
	fs := memFS{}
	for _, n := range names {
		fs[dir] = append(fs[dir], entry.New(filepath.Join(dir, n), 1, false))
	}
	c := controller.New(dir, controller.Options{Lister: fs, Deleter: fs, Opener: fs})

	m := newModel(c, Options{Theme: config.New().Theme})
	// apply the first listing directly; the spinner tick never fires here
	msg := c.Init()()
	c.Update(msg)
	return m
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewListsEntries(t *testing.T) {
	m := newTestModel(t, "alpha.txt", "beta.txt")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	view := m.View()
	assert.Contains(t, view, "alpha.txt")
	assert.Contains(t, view, "beta.txt")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "2/2")
}

func TestViewShowsSearchTerm(t *testing.T) {
	m := newTestModel(t, "alpha.txt", "beta.txt")
	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("b"))

	view := m.View()
	assert.Contains(t, view, "SEARCH")
	assert.Contains(t, view, "/b_")
	assert.Contains(t, view, "1/2")
	assert.NotContains(t, view, "alpha.txt")
}

func TestHelpToggleOnlyInNormalMode(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = update(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "global search")

	m, _ = update(t, m, runes("?"))
	assert.False(t, m.help.ShowAll)

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("?"))
	assert.False(t, m.help.ShowAll)
	assert.Equal(t, "?", m.c.Term())
}

func TestHelpKeyFromKeyMap(t *testing.T) {
	keys, err := mode.NewKeyMap(map[string][]string{mode.BindHelp: {"H"}}, 0)
	require.NoError(t, err)
	m := newTestModel(t, "a")
	m.c = controller.New(m.c.Dir(), controller.Options{Lister: memFS{}, Deleter: memFS{}, Opener: memFS{}, Keys: &keys})

	m, _ = update(t, m, runes("?"))
	assert.False(t, m.help.ShowAll, "default key no longer bound")
	m, _ = update(t, m, runes("H"))
	assert.True(t, m.help.ShowAll)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "a")
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestScrollFollowsHover(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("f%02d", i)
	}
	m := newTestModel(t, names...)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15})

	for i := 0; i < 30; i++ {
		m, _ = update(t, m, runes("j"))
	}
	require.Equal(t, 30, m.c.Hover())
	view := m.View()
	assert.Contains(t, view, "f30")
	assert.NotContains(t, view, "f00")
	assert.LessOrEqual(t, m.scrollOffset, 30)

	for i := 0; i < 30; i++ {
		m, _ = update(t, m, runes("k"))
	}
	assert.Equal(t, 0, m.scrollOffset)
	assert.Contains(t, m.View(), "f00")
}

func TestDirChangeBridge(t *testing.T) {
	events := make(chan string, 1)
	m := newTestModel(t, "a")
	m.events = events

	events <- m.c.Dir()
	msg := m.waitDirChange()()
	assert.Equal(t, dirChangedMsg{dir: m.c.Dir()}, msg)

	gen := m.c.Generation()
	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, gen+1, m.c.Generation())

	close(events)
	assert.Nil(t, m.waitDirChange()())
}

func TestNoEventsNoWait(t *testing.T) {
	m := newTestModel(t, "a")
	assert.Nil(t, m.waitDirChange())
}

func TestRenderItemTruncates(t *testing.T) {
	m := newTestModel(t, strings.Repeat("x", 200))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.Contains(t, m.View(), "…")
}

func TestNewStylesFallsBack(t *testing.T) {
	s := NewStyles(config.Theme{})
	assert.Equal(t, NewStyles(config.New().Theme), s)
}

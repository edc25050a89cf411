package controller

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"fls/internal/entry"
	"fls/internal/store"
)

var errDenied = errors.New("permission denied")

// fakeFS serves listings from memory and records deletes and opens. A
// successful delete also drops the path from its parent's listing.
type fakeFS struct {
	dirs      map[string][]entry.Entry
	listErr   map[string]error
	deleteErr map[string]error
	openErr   error
	copyErr   error

	deleted []string
	opened  []string
	copied  []string
	watched []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs:      make(map[string][]entry.Entry),
		listErr:   make(map[string]error),
		deleteErr: make(map[string]error),
	}
}

// add registers dir with children; names ending in "/" are directories.
func (f *fakeFS) add(dir string, children ...string) {
	dir = filepath.FromSlash(dir)
	var out []entry.Entry
	for _, n := range children {
		isDir := strings.HasSuffix(n, "/")
		out = append(out, entry.New(filepath.Join(dir, strings.TrimSuffix(n, "/")), 1, isDir))
	}
	f.dirs[dir] = out
}

func (f *fakeFS) List(_ context.Context, dir string) ([]entry.Entry, error) {
	if err := f.listErr[dir]; err != nil {
		return nil, err
	}
	return append([]entry.Entry(nil), f.dirs[dir]...), nil
}

func (f *fakeFS) Delete(_ context.Context, path string, _ bool) error {
	if err := f.deleteErr[path]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, path)
	parent := filepath.Dir(path)
	kept := f.dirs[parent][:0:0]
	for _, e := range f.dirs[parent] {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	f.dirs[parent] = kept
	return nil
}

func (f *fakeFS) Open(_ context.Context, path string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, path)
	return nil
}

func (f *fakeFS) Copy(text string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakeFS) Watch(dir string) error {
	f.watched = append(f.watched, dir)
	return nil
}

// substring scores names containing the term, keeping tests independent of
// the fuzzy library's ranking.
type substring struct{}

func (substring) Score(term, name string) (int, bool) {
	if strings.Contains(name, term) {
		return 100 - len(name), true
	}
	return 0, false
}

func newController(fs *fakeFS, dir string) *Controller {
	return New(filepath.FromSlash(dir), Options{
		Lister:    fs,
		Deleter:   fs,
		Opener:    fs,
		Clipboard: fs,
		Watcher:   fs,
		Scorer:    substring{},
	})
}

// run executes cmd and everything it batches, returning the messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle runs cmd and feeds every resulting message back in order.
func settle(c *Controller, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		settle(c, c.Update(msg))
	}
}

// started returns a controller whose first listing has been applied.
func started(t *testing.T, fs *fakeFS, dir string) *Controller {
	t.Helper()
	c := newController(fs, dir)
	settle(c, c.Init())
	require.False(t, c.Loading())
	return c
}

func press(c *Controller, keys ...string) {
	for _, k := range keys {
		settle(c, c.Update(keyMsg(k)))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func visibleNames(c *Controller) []string {
	var out []string
	for _, it := range c.Visible() {
		out = append(out, it.Name)
	}
	return out
}

func hoverInBounds(t *testing.T, c *Controller) {
	t.Helper()
	last := c.VisibleCount() - 1
	if last < 0 {
		last = 0
	}
	require.GreaterOrEqual(t, c.Hover(), 0)
	require.LessOrEqual(t, c.Hover(), last)
}

func allMaxScore(c *Controller) bool {
	for _, it := range c.Visible() {
		if it.Score != store.MaxScore {
			return false
		}
	}
	return true
}

func p(s string) string {
	return filepath.FromSlash(s)
}

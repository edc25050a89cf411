// Package tui draws the controller's state and feeds it terminal input.
// All browser logic lives in the controller; this package only adds what a
// terminal needs on top: window size, scrolling, a spinner and help.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"fls/internal/config"
	"fls/internal/controller"
	"fls/internal/fuzzy"
	"fls/internal/log"
	"fls/internal/store"
	"fls/pkg/utils"
)

// maxFailures caps the failure lines shown in the footer.
const maxFailures = 3

// Options configures the view.
type Options struct {
	// Events delivers directories that changed on disk; nil disables
	// auto-refresh.
	Events <-chan string
	Theme  config.Theme
	DryRun bool
}

type model struct {
	c      *controller.Controller
	events <-chan string
	dryRun bool

	sp     spinner.Model
	help   help.Model
	styles Styles
	now    func() time.Time

	scrollOffset int

	// terminal size
	termW int
	termH int
}

func newModel(c *controller.Controller, opts Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{
		c:      c,
		events: opts.Events,
		dryRun: opts.DryRun,
		sp:     sp,
		help:   help.New(),
		styles: NewStyles(opts.Theme),
		now:    time.Now,
	}
}

// Run shows the browser until the user quits.
func Run(c *controller.Controller, opts Options) error {
	m := newModel(c, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// dirChangedMsg is read off the watcher channel and handed on as a
// controller.DirChangedMsg.
type dirChangedMsg struct{ dir string }

func (m model) waitDirChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		dir, ok := <-events
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.c.Init(), m.sp.Tick, m.waitDirChange())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.adjustScroll()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd

	case dirChangedMsg:
		log.Debugf("directory changed: %s", msg.dir)
		cmd := m.c.Update(controller.DirChangedMsg{Dir: msg.dir})
		return m, tea.Batch(cmd, m.waitDirChange())

	case tea.KeyMsg:
		if key.Matches(msg, m.c.Keys().Help) && !m.c.Mode().IsSearch() {
			m.help.ShowAll = !m.help.ShowAll
			m.adjustScroll()
			return m, nil
		}
	}

	cmd := m.c.Update(msg)
	if m.c.ShouldExit() {
		return m, tea.Quit
	}
	m.adjustScroll()
	return m, cmd
}

func (m model) View() string {
	header := m.headerText()
	footer := m.footerText()
	return header + m.renderList(m.listHeight(header, footer)) + footer
}

func (m *model) headerText() string {
	var b strings.Builder

	title := m.styles.Header.Render(m.c.Dir())
	if m.dryRun {
		title += " " + m.styles.Dim.Render("[dry-run]")
	}
	b.WriteString(title + "\n")

	b.WriteString(m.styles.Badge.Render(m.c.Mode().String()))
	if term := m.c.Term(); term != "" || m.c.Mode().IsSearch() {
		b.WriteString(" /" + term)
		if m.c.Mode().IsSearch() {
			b.WriteString("_")
		}
	}
	b.WriteString(fmt.Sprintf("  %d/%d", m.c.VisibleCount(), m.c.StoredCount()))
	if n := m.c.Pending(); n > 0 {
		b.WriteString(fmt.Sprintf("  deleting: %d", n))
	}
	if m.c.Loading() {
		b.WriteString("  " + m.sp.View())
	}
	b.WriteString("\n")

	if err := m.c.DirErr(); err != nil {
		b.WriteString(m.styles.Error.Render(err.Error()) + "\n")
	}
	return b.String()
}

func (m *model) footerText() string {
	var b strings.Builder
	b.WriteString("\n")
	if s := m.c.Status(); s != "" {
		b.WriteString(m.styles.Dim.Render(s) + "\n")
	}
	failures := m.c.Failures()
	if len(failures) > maxFailures {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("%d failures, latest:", len(failures))) + "\n")
		failures = failures[len(failures)-maxFailures:]
	}
	for _, f := range failures {
		b.WriteString(m.styles.Error.Render(" - "+f.Err.Error()) + "\n")
	}
	b.WriteString(m.help.View(m.c.Keys()))
	return b.String()
}

// listHeight is the number of rows left for entries.
func (m *model) listHeight(header, footer string) int {
	h := m.termH - strings.Count(header, "\n") - strings.Count(footer, "\n") - 1
	if h < 3 {
		h = 3
	}
	return h
}

func (m *model) renderList(height int) string {
	if m.c.Loading() && m.c.StoredCount() == 0 {
		return m.styles.Dim.Render("Loading...") + "\n"
	}
	items := m.c.Visible()
	if len(items) == 0 {
		if m.c.StoredCount() > 0 {
			return m.styles.Dim.Render("No matches.") + "\n"
		}
		return m.styles.Dim.Render("Empty directory.") + "\n"
	}

	start := m.scrollOffset
	if start >= len(items) {
		start = 0
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	hover := m.c.Hover()
	for i := start; i < end; i++ {
		b.WriteString(m.renderItem(items[i], i == hover) + "\n")
	}
	return b.String()
}

// nameWidth is what remains of the terminal after prefix, mark, size and age.
func (m *model) nameWidth() int {
	w := m.termW - 2 - 4 - 8 - 16
	if w < 10 {
		w = 10
	}
	return w
}

func (m *model) renderItem(it store.ScoredEntry, hovered bool) string {
	prefix := "  "
	if hovered {
		prefix = m.styles.Cursor.Render(">") + " "
	}

	mark := m.styles.Mark.Render("[ ]")
	if it.Selected {
		mark = m.styles.MarkSelected.Render("[x]")
	}

	size := m.styles.Dim.Render(fmt.Sprintf("%7s", "-"))
	if !it.IsDir {
		size = sizeStyle(it.Size).Render(fmt.Sprintf("%7s", utils.HumanizeBytesCompact(it.Size)))
	}

	width := m.nameWidth()
	name := runewidth.Truncate(it.DisplayName(), width, "…")
	pad := width - runewidth.StringWidth(name)
	if pad < 0 {
		pad = 0
	}
	name = m.highlight(it, name)

	age := m.styles.Dim.Render(utils.Age(it.ModTime, m.now()))
	return prefix + mark + " " + size + " " + name + strings.Repeat(" ", pad) + " " + age
}

// highlight paints the runes of name matched by the search term.
func (m *model) highlight(it store.ScoredEntry, name string) string {
	base := m.styles.File
	if it.IsDir {
		base = m.styles.Dir
	}
	if it.Selected {
		base = m.styles.Selected
	}

	matched := make(map[int]struct{})
	for _, i := range fuzzy.Highlights(m.c.Term(), it.Name) {
		matched[i] = struct{}{}
	}
	if len(matched) == 0 {
		return base.Render(name)
	}

	var b strings.Builder
	for i, r := range name {
		if _, ok := matched[i]; ok {
			b.WriteString(m.styles.Highlight.Render(string(r)))
			continue
		}
		b.WriteString(base.Render(string(r)))
	}
	return b.String()
}

func (m *model) adjustScroll() {
	header := m.headerText()
	footer := m.footerText()
	visibleHeight := m.listHeight(header, footer)
	hover := m.c.Hover()

	// Scroll down if cursor is below visible area
	if hover >= m.scrollOffset+visibleHeight {
		m.scrollOffset = hover - visibleHeight + 1
	}

	// Scroll up if cursor is above visible area
	if hover < m.scrollOffset {
		m.scrollOffset = hover
	}
}

// Package controller owns the browser state: the current directory, the
// filtered entry store, the input mode and the search term.
//
// All state changes happen inside Update and Apply, which bubbletea calls
// from its single event loop. Filesystem work is never done inline; it is
// returned as a tea.Cmd that runs elsewhere and reports back with one of the
// result messages in messages.go. Listing results carry the generation that
// requested them and are dropped when a later navigation or refresh has
// started. Delete results are matched by path.
package controller

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"fls/internal/entry"
	"fls/internal/fuzzy"
	"fls/internal/log"
	"fls/internal/mode"
	"fls/internal/store"
)

// Lister reads the direct children of a directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]entry.Entry, error)
}

// Deleter removes a single path.
type Deleter interface {
	Delete(ctx context.Context, path string, isDir bool) error
}

// Opener hands a file to the OS default application.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Clipboard receives yanked paths.
type Clipboard interface {
	Copy(text string) error
}

// Watcher is told which directory is on screen.
type Watcher interface {
	Watch(dir string) error
}

// Options wires the collaborators. Lister, Deleter and Opener are required;
// the rest are optional.
type Options struct {
	Context   context.Context
	Lister    Lister
	Deleter   Deleter
	Opener    Opener
	Clipboard Clipboard
	Watcher   Watcher
	Scorer    fuzzy.Scorer
	Keys      *mode.KeyMap
}

type Controller struct {
	ctx       context.Context
	lister    Lister
	deleter   Deleter
	opener    Opener
	clipboard Clipboard
	watcher   Watcher
	scorer    fuzzy.Scorer
	keys      mode.KeyMap

	dir        string
	mode       mode.Mode
	term       string
	files      *store.Store
	generation uint64
	loading    bool
	dirErr     error
	status     string
	failures   []Failure

	// pending holds batch-drained entries until their delete result arrives
	pending map[string]store.ScoredEntry
	// inflight tracks single deletes of entries still in the store
	inflight map[string]struct{}
	// removed maps deleted paths to the generation they were deleted under
	removed map[string]uint64

	shouldExit bool
}

// New creates a controller rooted at dir. Nothing is listed until Init.
func New(dir string, opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = fuzzy.New()
	}
	keys := mode.DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	return &Controller{
		ctx:       ctx,
		lister:    opts.Lister,
		deleter:   opts.Deleter,
		opener:    opts.Opener,
		clipboard: opts.Clipboard,
		watcher:   opts.Watcher,
		scorer:    scorer,
		keys:      keys,
		dir:       filepath.Clean(dir),
		files:     store.New(),
		pending:   make(map[string]store.ScoredEntry),
		inflight:  make(map[string]struct{}),
		removed:   make(map[string]uint64),
	}
}

// Init starts the first listing.
func (c *Controller) Init() tea.Cmd {
	return c.navigate(c.dir)
}

// Update handles key presses and async results.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if c.shouldExit {
			return nil
		}
		return c.Apply(mode.Dispatch(c.keys, c.mode, msg))
	case ListingMsg:
		c.applyListing(msg)
	case DeleteMsg:
		c.applyDelete(msg)
	case OpenMsg:
		c.applyOpen(msg)
	case YankMsg:
		c.applyYank(msg)
	case DirChangedMsg:
		if msg.Dir == c.dir && !c.shouldExit {
			return c.refresh()
		}
	}
	return nil
}

// Apply performs a single action and returns any async work it started.
func (c *Controller) Apply(a mode.Action) tea.Cmd {
	if c.shouldExit {
		return nil
	}
	log.Debugf("apply %s", a)

	switch a.Kind {
	case mode.Up:
		c.files.MoveUp()
	case mode.Down:
		c.files.MoveDown()
	case mode.ToggleCurrent:
		c.files.ToggleSelected(c.files.Hover())
	case mode.EnterMode:
		if !a.Mode.IsSearch() {
			c.term = ""
		}
		c.mode = a.Mode
		c.refilter()
	case mode.AddToSearch:
		if a.Text == "" {
			return nil
		}
		c.term += a.Text
		c.refilter()
	case mode.PopFromSearch:
		if c.term == "" {
			return nil
		}
		r := []rune(c.term)
		c.term = string(r[:len(r)-1])
		c.refilter()
	case mode.FreezeSearch:
		c.mode = mode.Normal()
	case mode.Open:
		return c.open()
	case mode.UpDir:
		return c.upDir()
	case mode.Delete:
		return c.delete()
	case mode.Quit:
		c.shouldExit = true
	case mode.Refresh:
		return c.refresh()
	case mode.Yank:
		return c.yank()
	}
	return nil
}

// navigate resets everything for dir and lists it under a new generation.
func (c *Controller) navigate(dir string) tea.Cmd {
	c.generation++
	c.dir = dir
	c.mode = mode.Normal()
	c.term = ""
	c.files.Replace(nil)
	c.dirErr = nil
	c.status = ""
	c.failures = nil
	c.pending = make(map[string]store.ScoredEntry)
	c.inflight = make(map[string]struct{})
	c.removed = make(map[string]uint64)
	c.loading = true

	if c.watcher != nil {
		if err := c.watcher.Watch(dir); err != nil {
			log.WithFields(log.F("dir", dir), log.F("error", err)).Warn("cannot watch directory")
		}
	}
	log.WithFields(log.F("dir", dir), log.F("generation", c.generation)).Debug("navigate")
	return c.listCmd(c.generation, dir)
}

// refresh re-lists the current directory, keeping mode, term, selection and
// the hovered entry.
func (c *Controller) refresh() tea.Cmd {
	c.generation++
	c.loading = true
	return c.listCmd(c.generation, c.dir)
}

func (c *Controller) open() tea.Cmd {
	it, ok := c.files.Hovered()
	if !ok {
		return nil
	}
	if it.IsDir {
		return c.navigate(it.Path)
	}
	c.status = "opening " + it.Name
	return c.openCmd(it.Path)
}

func (c *Controller) upDir() tea.Cmd {
	parent := filepath.Dir(c.dir)
	if parent == c.dir {
		c.status = errNoParent.Error()
		log.WithFields(log.F("dir", c.dir)).Debug("no parent directory")
		return nil
	}
	return c.navigate(parent)
}

// delete removes the visible selection, or the hovered entry when nothing
// is selected. Selected entries leave the store right away and are parked
// until their result arrives; a hovered entry stays until success.
func (c *Controller) delete() tea.Cmd {
	if c.files.AnySelected() {
		drained := c.files.DrainSelected()
		cmds := make([]tea.Cmd, 0, len(drained))
		for _, it := range drained {
			c.pending[it.Path] = it
			if _, busy := c.inflight[it.Path]; busy {
				continue
			}
			cmds = append(cmds, c.deleteCmd(it.Entry))
		}
		c.status = plural(len(drained), "deleting %d entry", "deleting %d entries")
		return tea.Batch(cmds...)
	}

	it, ok := c.files.Hovered()
	if !ok {
		return nil
	}
	if _, busy := c.inflight[it.Path]; busy {
		return nil
	}
	c.inflight[it.Path] = struct{}{}
	c.status = "deleting " + it.Name
	return c.deleteCmd(it.Entry)
}

func (c *Controller) yank() tea.Cmd {
	it, ok := c.files.Hovered()
	if !ok || c.clipboard == nil {
		return nil
	}
	return c.yankCmd(it.Path)
}

func (c *Controller) refilter() {
	c.files.Rescore(c.score)
}

func (c *Controller) score(e entry.Entry) int {
	if c.term == "" {
		return store.MaxScore
	}
	s, ok := c.scorer.Score(c.term, e.Name)
	if !ok {
		return 0
	}
	return s
}

// Dir is the directory on screen.
func (c *Controller) Dir() string { return c.dir }

func (c *Controller) Mode() mode.Mode { return c.mode }

// Term is the active search term; it stays set after a search is frozen.
func (c *Controller) Term() string { return c.term }

func (c *Controller) Hover() int { return c.files.Hover() }

// Visible returns a copy of the entries passing the filter.
func (c *Controller) Visible() []store.ScoredEntry { return c.files.Visible() }

func (c *Controller) VisibleCount() int { return c.files.VisibleCount() }

// StoredCount includes entries hidden by the filter.
func (c *Controller) StoredCount() int { return c.files.Len() }

func (c *Controller) Generation() uint64 { return c.generation }

// Loading reports whether the latest listing is still outstanding.
func (c *Controller) Loading() bool { return c.loading }

// DirErr is set when the current directory could not be read.
func (c *Controller) DirErr() error { return c.dirErr }

// Status is a one-line description of the last notable event.
func (c *Controller) Status() string { return c.status }

// Failures lists failed operations since the last navigation, one per path.
func (c *Controller) Failures() []Failure {
	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

// Pending is the number of deletes still awaiting a result.
func (c *Controller) Pending() int {
	n := len(c.pending)
	for p := range c.inflight {
		if _, parked := c.pending[p]; !parked {
			n++
		}
	}
	return n
}

func (c *Controller) Keys() mode.KeyMap { return c.keys }

func (c *Controller) ShouldExit() bool { return c.shouldExit }

// Package store keeps the entries of the current directory together with
// their filter scores, selection flags and the hover cursor.
//
// The backing slice is never reordered. Entries with a non-positive score are
// hidden but kept, so they come back when the filter loosens. Every index
// taken or returned by the visible-view methods is a visible index, not a
// position in the backing slice.
package store

import (
	"errors"
	"math"

	"fls/internal/entry"
)

// MaxScore marks an entry as matching unconditionally (empty filter).
const MaxScore = math.MaxInt

// ErrOutOfRange is returned when a visible index does not exist.
var ErrOutOfRange = errors.New("visible index out of range")

// ScoredEntry is an entry plus its current filter score and selection flag.
type ScoredEntry struct {
	entry.Entry
	Score    int
	Selected bool

	// order is the position in the listing that installed the entry
	order int
}

// Visible reports whether the entry passes the active filter.
func (s ScoredEntry) Visible() bool {
	return s.Score > 0
}

// Store is owned by a single goroutine; it does no locking.
type Store struct {
	items []ScoredEntry
	hover int
}

func New() *Store {
	return &Store{}
}

// Replace drops everything and installs entries fully visible. Later
// duplicates of an already seen path are ignored.
func (s *Store) Replace(entries []entry.Entry) {
	seen := make(map[string]struct{}, len(entries))
	items := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Path]; dup {
			continue
		}
		seen[e.Path] = struct{}{}
		items = append(items, ScoredEntry{Entry: e, Score: MaxScore, order: len(items)})
	}
	s.items = items
	s.hover = 0
}

// Rescore recomputes every score with fn. Nothing is removed or reordered.
func (s *Store) Rescore(fn func(entry.Entry) int) {
	for i := range s.items {
		s.items[i].Score = fn(s.items[i].Entry)
	}
	s.hover = 0
}

// Len is the number of stored entries, hidden ones included.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) VisibleCount() int {
	n := 0
	for _, it := range s.items {
		if it.Visible() {
			n++
		}
	}
	return n
}

// VisibleAt returns the i-th visible entry.
func (s *Store) VisibleAt(i int) (ScoredEntry, error) {
	idx := s.physical(i)
	if idx < 0 {
		return ScoredEntry{}, ErrOutOfRange
	}
	return s.items[idx], nil
}

// Visible returns a copy of the visible view in order.
func (s *Store) Visible() []ScoredEntry {
	out := make([]ScoredEntry, 0, len(s.items))
	for _, it := range s.items {
		if it.Visible() {
			out = append(out, it)
		}
	}
	return out
}

// ToggleSelected flips the selection of the i-th visible entry. Out of range
// indexes (including any index on an empty store) are ignored.
func (s *Store) ToggleSelected(i int) {
	if idx := s.physical(i); idx >= 0 {
		s.items[idx].Selected = !s.items[idx].Selected
	}
}

// RemoveVisible takes the i-th visible entry out of the store.
func (s *Store) RemoveVisible(i int) (ScoredEntry, error) {
	idx := s.physical(i)
	if idx < 0 {
		return ScoredEntry{}, ErrOutOfRange
	}
	return s.removeAt(idx), nil
}

// RemovePath removes the entry stored under path, visible or not.
func (s *Store) RemovePath(path string) (ScoredEntry, bool) {
	idx := s.indexOf(path)
	if idx < 0 {
		return ScoredEntry{}, false
	}
	return s.removeAt(idx), true
}

func (s *Store) Contains(path string) bool {
	return s.indexOf(path) >= 0
}

// AnySelected reports whether a visible entry is selected.
func (s *Store) AnySelected() bool {
	for _, it := range s.items {
		if it.Visible() && it.Selected {
			return true
		}
	}
	return false
}

// DrainSelected removes and returns every visible selected entry, keeping
// their relative order. Hidden selected entries stay.
func (s *Store) DrainSelected() []ScoredEntry {
	var drained []ScoredEntry
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Visible() && it.Selected {
			drained = append(drained, it)
			continue
		}
		kept = append(kept, it)
	}
	// zero the tail so dropped entries are not retained by the array
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = ScoredEntry{}
	}
	s.items = kept
	s.clampHover()
	return drained
}

// Restore puts back an entry that was removed earlier, e.g. a drained entry
// whose delete failed, at its listing position. The hovered entry keeps the
// cursor. A path already present is left alone.
func (s *Store) Restore(it ScoredEntry) bool {
	if s.Contains(it.Path) {
		return false
	}
	hovered, hadHover := s.Hovered()

	idx := len(s.items)
	for i, x := range s.items {
		if x.order > it.order {
			idx = i
			break
		}
	}
	s.items = append(s.items, ScoredEntry{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = it

	if hadHover {
		s.Follow(hovered.Path, s.hover)
	}
	s.clampHover()
	return true
}

// SelectedPaths lists the paths of all selected entries, hidden included.
func (s *Store) SelectedPaths() []string {
	var out []string
	for _, it := range s.items {
		if it.Selected {
			out = append(out, it.Path)
		}
	}
	return out
}

// Reselect marks the entries under paths as selected. Unknown paths are
// skipped.
func (s *Store) Reselect(paths []string) {
	if len(paths) == 0 {
		return
	}
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		want[p] = struct{}{}
	}
	for i := range s.items {
		if _, ok := want[s.items[i].Path]; ok {
			s.items[i].Selected = true
		}
	}
}

func (s *Store) Hover() int {
	return s.hover
}

// Hovered returns the entry under the cursor.
func (s *Store) Hovered() (ScoredEntry, bool) {
	it, err := s.VisibleAt(s.hover)
	return it, err == nil
}

func (s *Store) MoveUp() {
	if s.hover > 0 {
		s.hover--
	}
}

func (s *Store) MoveDown() {
	if s.hover < s.VisibleCount()-1 {
		s.hover++
	}
}

// SetHover moves the cursor to i, clamped into the visible range.
func (s *Store) SetHover(i int) {
	s.hover = i
	s.clampHover()
}

// VisibleIndex returns the visible index of path.
func (s *Store) VisibleIndex(path string) (int, bool) {
	i := 0
	for _, it := range s.items {
		if !it.Visible() {
			continue
		}
		if it.Path == path {
			return i, true
		}
		i++
	}
	return 0, false
}

// Follow puts the cursor on path if it is visible, or at fallback otherwise.
func (s *Store) Follow(path string, fallback int) {
	if i, ok := s.VisibleIndex(path); ok {
		fallback = i
	}
	s.SetHover(fallback)
}

func (s *Store) clampHover() {
	last := s.VisibleCount() - 1
	if s.hover > last {
		s.hover = last
	}
	if s.hover < 0 {
		s.hover = 0
	}
}

func (s *Store) removeAt(idx int) ScoredEntry {
	it := s.items[idx]
	copy(s.items[idx:], s.items[idx+1:])
	s.items[len(s.items)-1] = ScoredEntry{}
	s.items = s.items[:len(s.items)-1]
	s.clampHover()
	return it
}

// physical maps a visible index to a backing index, or -1.
func (s *Store) physical(i int) int {
	if i < 0 {
		return -1
	}
	for idx, it := range s.items {
		if !it.Visible() {
			continue
		}
		if i == 0 {
			return idx
		}
		i--
	}
	return -1
}

func (s *Store) indexOf(path string) int {
	for idx, it := range s.items {
		if it.Path == path {
			return idx
		}
	}
	return -1
}

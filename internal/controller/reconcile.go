package controller

import (
	"path/filepath"

	errs "fls/internal/errors"
	"fls/internal/log"
)

func (c *Controller) applyListing(msg ListingMsg) {
	if msg.Generation != c.generation {
		log.WithFields(log.F("dir", msg.Dir), log.F("generation", msg.Generation), log.F("current", c.generation)).
			Debug("dropping stale listing")
		return
	}
	c.loading = false
	if msg.Err != nil {
		c.dirErr = errs.NewIoError(errs.OpList, msg.Dir, msg.Err)
		log.WithFields(log.F("dir", msg.Dir), log.F("error", msg.Err)).Warn("listing failed")
		return
	}
	c.dirErr = nil

	hovered, hadHover := c.files.Hovered()
	hover := c.files.Hover()
	selected := c.files.SelectedPaths()
	c.files.Replace(msg.Entries)
	// parked batch entries stay out of view until their result arrives; they
	// take the position of the fresh listing
	for p, parked := range c.pending {
		if fresh, ok := c.files.RemovePath(p); ok {
			fresh.Selected = parked.Selected
			c.pending[p] = fresh
		}
	}
	// a listing read before a delete finished may still hold the path
	for p, gen := range c.removed {
		if gen == msg.Generation {
			c.files.RemovePath(p)
			continue
		}
		delete(c.removed, p)
	}
	c.files.Reselect(selected)
	if c.term != "" {
		c.refilter()
	}
	if hadHover {
		c.files.Follow(hovered.Path, hover)
	}
	log.WithFields(log.F("dir", msg.Dir), log.F("entries", len(msg.Entries))).Debug("listing applied")
}

func (c *Controller) applyDelete(msg DeleteMsg) {
	delete(c.inflight, msg.Path)
	parked, wasParked := c.pending[msg.Path]
	delete(c.pending, msg.Path)

	if msg.Err == nil {
		c.files.RemovePath(msg.Path)
		c.removed[msg.Path] = c.generation
		c.clearFailure(msg.Path)
		c.status = "deleted " + filepath.Base(msg.Path)
		log.WithFields(log.F("path", msg.Path)).Info("deleted")
		return
	}

	err := errs.NewIoError(errs.OpDelete, msg.Path, msg.Err)
	c.addFailure(msg.Path, err)
	c.status = err.Error()
	log.WithFields(log.F("path", msg.Path), log.F("error", msg.Err)).Warn("delete failed")

	if wasParked && !c.files.Contains(msg.Path) {
		parked.Score = c.score(parked.Entry)
		c.files.Restore(parked)
	}
}

func (c *Controller) applyOpen(msg OpenMsg) {
	if msg.Err == nil {
		c.clearFailure(msg.Path)
		c.status = "opened " + filepath.Base(msg.Path)
		return
	}
	err := errs.NewOpenError(msg.Path, msg.Err)
	c.addFailure(msg.Path, err)
	c.status = err.Error()
	log.WithFields(log.F("path", msg.Path), log.F("error", msg.Err)).Warn("open failed")
}

func (c *Controller) applyYank(msg YankMsg) {
	if msg.Err == nil {
		c.status = "copied " + msg.Path
		return
	}
	err := errs.NewClipboardError(msg.Path, msg.Err)
	c.addFailure(msg.Path, err)
	c.status = err.Error()
	log.WithFields(log.F("path", msg.Path), log.F("error", msg.Err)).Warn("copy failed")
}

// addFailure records err for path, replacing an older failure for it.
func (c *Controller) addFailure(path string, err error) {
	for i := range c.failures {
		if c.failures[i].Path == path {
			c.failures[i].Err = err
			return
		}
	}
	c.failures = append(c.failures, Failure{Path: path, Err: err})
}

func (c *Controller) clearFailure(path string) {
	kept := c.failures[:0]
	for _, f := range c.failures {
		if f.Path != path {
			kept = append(kept, f)
		}
	}
	c.failures = kept
}

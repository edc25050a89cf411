package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"fls/internal/entry"
)

// The commands below copy what they need out of the controller so that the
// returned closures never touch controller state off the event loop.

func (c *Controller) listCmd(gen uint64, dir string) tea.Cmd {
	ctx, lister := c.ctx, c.lister
	return func() tea.Msg {
		entries, err := lister.List(ctx, dir)
		return ListingMsg{Generation: gen, Dir: dir, Entries: entries, Err: err}
	}
}

func (c *Controller) deleteCmd(e entry.Entry) tea.Cmd {
	ctx, deleter := c.ctx, c.deleter
	path, isDir := e.Path, e.IsDir
	return func() tea.Msg {
		return DeleteMsg{Path: path, Err: deleter.Delete(ctx, path, isDir)}
	}
}

func (c *Controller) openCmd(path string) tea.Cmd {
	ctx, opener := c.ctx, c.opener
	return func() tea.Msg {
		return OpenMsg{Path: path, Err: opener.Open(ctx, path)}
	}
}

func (c *Controller) yankCmd(path string) tea.Cmd {
	clip := c.clipboard
	return func() tea.Msg {
		return YankMsg{Path: path, Err: clip.Copy(path)}
	}
}

// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("no clipboard utility available")

// Clipboard writes to the system clipboard. The zero value is ready to use.
type Clipboard struct{}

func New() Clipboard {
	return Clipboard{}
}

// Copy replaces the clipboard contents with text.
func (Clipboard) Copy(text string) error {
	if sysclip.Unsupported {
		return ErrUnsupported
	}
	return sysclip.WriteAll(text)
}

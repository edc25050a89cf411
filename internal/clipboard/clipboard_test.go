package clipboard

import (
	"testing"

	sysclip "github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
)

func TestCopyUnsupported(t *testing.T) {
	if !sysclip.Unsupported {
		t.Skip("a clipboard utility is installed")
	}
	assert.ErrorIs(t, New().Copy("/tmp/a.txt"), ErrUnsupported)
}

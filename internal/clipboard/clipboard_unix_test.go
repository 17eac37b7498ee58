//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteImageWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() { initOnce = sync.Once{} })

	changed, err := WriteImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.ErrorIs(t, err, errNoDisplay)
	assert.Nil(t, changed)
}

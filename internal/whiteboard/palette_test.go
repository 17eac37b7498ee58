package whiteboard

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteDefaults(t *testing.T) {
	pal := PaletteColors()
	assert.Equal(t, DefaultColor, pal[DefaultColorIndex()].Color)
	assert.Equal(t, int(DefaultLineWidth), WidthOptions()[DefaultWidthIndex()])

	c, ok := LookupColor(" red ")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0xEF, 0x44, 0x44, 0xFF}, c)
	_, ok = LookupColor("chartreuse")
	assert.False(t, ok)
}

func TestEnsurePaletteColorAndWidth(t *testing.T) {
	assert.Equal(t, 1, EnsurePaletteColor(color.RGBA{0xEF, 0x44, 0x44, 0xFF}, ""))

	before := len(PaletteColors())
	teal := color.RGBA{0, 0x80, 0x80, 0xFF}
	idx := EnsurePaletteColor(teal, "")
	assert.Equal(t, before, idx)
	assert.Equal(t, "#008080", PaletteColors()[idx].Name)
	assert.Equal(t, idx, EnsurePaletteColor(teal, "Teal"))

	assert.Equal(t, 2, EnsureWidth(3))
	idx = EnsureWidth(4)
	assert.Equal(t, 4, WidthOptions()[idx])
	assert.IsIncreasing(t, WidthOptions())
	assert.Equal(t, 50, WidthOptions()[EnsureWidth(400)])
}

package whiteboard

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"
)

// PaletteColor is a named toolbar swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

const (
	defaultColorIndex = 0
	defaultWidthIndex = 2
)

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"White", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
		{"Red", color.RGBA{0xEF, 0x44, 0x44, 0xFF}},
		{"Orange", color.RGBA{0xF9, 0x73, 0x16, 0xFF}},
		{"Yellow", color.RGBA{0xEA, 0xB3, 0x08, 0xFF}},
		{"Green", color.RGBA{0x22, 0xC5, 0x5E, 0xFF}},
		{"Blue", color.RGBA{0x3B, 0x82, 0xF6, 0xFF}},
		{"Purple", color.RGBA{0xA8, 0x55, 0xF7, 0xFF}},
	}

	widthsMu sync.RWMutex
	widths   = []int{1, 2, 3, 5, 8, 13, 21, 34, 50}
)

// DefaultColorIndex returns the palette index of DefaultColor.
func DefaultColorIndex() int { return defaultColorIndex }

// DefaultWidthIndex returns the width index of DefaultLineWidth.
func DefaultWidthIndex() int { return defaultWidthIndex }

// PaletteColors returns a copy of the swatches.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// LookupColor finds a swatch by case-insensitive name.
func LookupColor(name string) (color.RGBA, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for _, p := range palette {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p.Color, true
		}
	}
	return color.RGBA{}, false
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// WidthOptions returns a copy of the width chips.
func WidthOptions() []int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// EnsureWidth makes sure width is included in the options and returns its index.
func EnsureWidth(width int) int {
	width = int(ClampLineWidth(float64(width)))
	widthsMu.Lock()
	defer widthsMu.Unlock()
	idx := sort.SearchInts(widths, width)
	if idx < len(widths) && widths[idx] == width {
		return idx
	}
	widths = append(widths, 0)
	copy(widths[idx+1:], widths[idx:])
	widths[idx] = width
	return idx
}

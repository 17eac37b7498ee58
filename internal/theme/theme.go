package theme

import (
	"image/color"

	"github.com/example/inkboard/internal/whiteboard"
)

// Theme defines the color palette for the board and its floating toolbar.
// Colors are written as straight (non-premultiplied) #RRGGBBAA values.
type Theme struct {
	Name string

	// Canvas
	CanvasBackground    color.RGBA // Board fill, also the eraser ink
	SelectionOutline    color.RGBA
	SelectionOutlineAlt color.RGBA // Second dash color
	HandleFill          color.RGBA
	HandleBorder        color.RGBA
	MarqueeFill         color.RGBA
	MarqueeBorder       color.RGBA

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarBorder     color.RGBA
	ToolbarShadow     color.RGBA
	Separator         color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextPress       color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Status line
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded dark board theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		CanvasBackground:      color.RGBA{0x1C, 0x1C, 0x22, 0xFF},
		SelectionOutline:      color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
		SelectionOutlineAlt:   color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		HandleFill:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		HandleBorder:          color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
		MarqueeFill:           color.RGBA{0x3B, 0x82, 0xF6, 0x33},
		MarqueeBorder:         color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
		ToolbarBackground:     color.RGBA{0x2A, 0x2A, 0x33, 0xFF},
		ToolbarBorder:         color.RGBA{0x3F, 0x3F, 0x4A, 0xFF},
		ToolbarShadow:         color.RGBA{0x00, 0x00, 0x00, 0x8C},
		Separator:             color.RGBA{0x4A, 0x4A, 0x55, 0xFF},
		ButtonBackground:      color.RGBA{0x2A, 0x2A, 0x33, 0xFF},
		ButtonBackgroundHover: color.RGBA{0x3A, 0x3A, 0x46, 0xFF},
		ButtonBackgroundPress: color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
		ButtonText:            color.RGBA{0xE4, 0xE4, 0xE7, 0xFF},
		ButtonTextPress:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		ButtonTextDisabled:    color.RGBA{0x71, 0x71, 0x7A, 0xFF},
		ButtonBorder:          color.RGBA{0x52, 0x52, 0x5B, 0xFF},
		MessageBackground:     color.RGBA{0x00, 0x00, 0x00, 0xB0},
		MessageText:           color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	}
}

// Straight converts a theme color into the non-premultiplied form the
// compositor expects.
func Straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// CanvasStyle returns the renderer style for the board.
func (t *Theme) CanvasStyle() whiteboard.Style {
	return whiteboard.Style{
		Background:    Straight(t.CanvasBackground),
		Outline:       Straight(t.SelectionOutline),
		OutlineAlt:    Straight(t.SelectionOutlineAlt),
		HandleFill:    Straight(t.HandleFill),
		HandleBorder:  Straight(t.HandleBorder),
		MarqueeFill:   Straight(t.MarqueeFill),
		MarqueeBorder: Straight(t.MarqueeBorder),
	}
}

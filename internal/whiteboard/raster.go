package whiteboard

import (
	"image"
	"image/color"
	"image/draw"
)

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// strokeRect draws the outline of r, thick pixels wide, inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color, thick int) {
	if thick < 1 {
		thick = 1
	}
	if 2*thick >= r.Dx() || 2*thick >= r.Dy() {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick), c)
	fillRect(dst, image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick), c)
}

// dashedRect walks the border of r clockwise from the top-left corner,
// switching between c1 and c2 every dash pixels so the pattern stays
// continuous around corners.
func dashedRect(dst *image.RGBA, r image.Rectangle, dash, thick int, c1, c2 color.Color) {
	if dash < 1 {
		dash = 1
	}
	if thick < 1 {
		thick = 1
	}
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	b := dst.Bounds()
	step := 0
	// (nx, ny) points into the rectangle so thickness grows inwards.
	put := func(x, y, nx, ny int) {
		col := c1
		if (step/dash)%2 == 1 {
			col = c2
		}
		step++
		for k := 0; k < thick; k++ {
			p := image.Pt(x+nx*k, y+ny*k)
			if p.In(b) {
				dst.Set(p.X, p.Y, col)
			}
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		put(x, r.Min.Y, 0, 1)
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		put(r.Max.X-1, y, -1, 0)
	}
	for x := r.Max.X - 2; x >= r.Min.X; x-- {
		put(x, r.Max.Y-1, 0, -1)
	}
	for y := r.Max.Y - 2; y > r.Min.Y; y-- {
		put(r.Min.X, y, 1, 0)
	}
}

package whiteboard

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Style holds the colors used by the Renderer.
type Style struct {
	Background    color.Color
	Outline       color.Color
	OutlineAlt    color.Color
	HandleFill    color.Color
	HandleBorder  color.Color
	MarqueeFill   color.Color
	MarqueeBorder color.Color
}

// DefaultStyle is a dark board with blue selection chrome.
var DefaultStyle = Style{
	Background:    color.RGBA{0x1C, 0x1C, 0x22, 0xFF},
	Outline:       color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
	OutlineAlt:    color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	HandleFill:    color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	HandleBorder:  color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
	MarqueeFill:   color.NRGBA{0x3B, 0x82, 0xF6, 0x33},
	MarqueeBorder: color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Actions  []*Action
	View     Viewport
	Selected []int64
	// Marquee is in logical screen space.
	Marquee *Box
	DPR     float64
}

// Board strips the selection chrome, leaving only the drawing.
func (sc Scene) Board() Scene {
	sc.Selected = nil
	sc.Marquee = nil
	return sc
}

// Renderer rasterizes scenes. It keeps a scratch rasterizer between frames
// and is not safe for concurrent use.
type Renderer struct {
	Style Style
	z     vector.Rasterizer
}

func NewRenderer(st Style) *Renderer { return &Renderer{Style: st} }

// Image renders sc into a new image of size device pixels.
func (r *Renderer) Image(size image.Point, sc Scene) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	r.Render(img, sc)
	return img
}

// transform maps world points to device pixels of the destination image.
type transform struct {
	k   float64
	off Point
}

func (t transform) apply(p Point) Point { return p.Mul(t.k).Add(t.off) }

// Render redraws dst from scratch.
func (r *Renderer) Render(dst *image.RGBA, sc Scene) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.Style.Background), image.Point{}, draw.Src)

	dpr := sc.DPR
	if dpr <= 0 {
		dpr = 1
	}
	origin := Point{float64(dst.Bounds().Min.X), float64(dst.Bounds().Min.Y)}
	t := transform{k: sc.View.scale() * dpr, off: sc.View.Offset.Mul(dpr).Add(origin)}

	for _, a := range sc.Actions {
		r.drawAction(dst, a, t)
	}

	if len(sc.Selected) > 0 {
		var sel Selection
		sel.Add(sc.Selected...)
		if box, ok := sel.Bounds(sc.Actions); ok {
			r.drawSelection(dst, box, t, dpr)
		}
	}

	if sc.Marquee != nil {
		m := Box{Min: sc.Marquee.Min.Mul(dpr).Add(origin), Max: sc.Marquee.Max.Mul(dpr).Add(origin)}
		rect := pixelRect(m)
		fillRect(dst, rect, r.Style.MarqueeFill)
		strokeRect(dst, rect, r.Style.MarqueeBorder, lineThickness(dpr))
	}
}

func (r *Renderer) drawAction(dst *image.RGBA, a *Action, t transform) {
	if len(a.Points) == 0 {
		return
	}
	pts := make([]Point, len(a.Points))
	for i, p := range a.Points {
		pts[i] = t.apply(p)
	}
	hw := a.LineWidth * t.k / 2

	var fill, holes [][]Point
	switch a.Tool {
	case ToolPen, ToolEraser:
		fill = strokePolyline(pts, hw)
	case ToolRect:
		box := BoxOf(pts[0], pts[len(pts)-1])
		fill = [][]Point{rectPolygon(box.Grow(hw))}
		if inner := box.Grow(-hw); inner.Dx() > 0 && inner.Dy() > 0 {
			holes = [][]Point{rectPolygon(inner)}
		}
	case ToolCircle:
		box := BoxOf(pts[0], pts[len(pts)-1])
		c := box.Center()
		rx, ry := box.Dx()/2, box.Dy()/2
		fill = [][]Point{ellipsePolygon(c, rx+hw, ry+hw)}
		if rx > hw && ry > hw {
			holes = [][]Point{ellipsePolygon(c, rx-hw, ry-hw)}
		}
	default:
		return
	}

	clip, ok := polygonBounds(fill)
	if !ok {
		return
	}
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	col := color.Color(a.Color)
	if a.Tool == ToolEraser {
		col = r.Style.Background
	}

	r.z.Reset(clip.Dx(), clip.Dy())
	r.z.DrawOp = draw.Over
	off := Point{float64(clip.Min.X), float64(clip.Min.Y)}
	for _, poly := range fill {
		addPolygon(&r.z, poly, off, false)
	}
	for _, poly := range holes {
		addPolygon(&r.z, poly, off, true)
	}
	r.z.Draw(dst, clip, image.NewUniform(col), image.Point{})
}

func (r *Renderer) drawSelection(dst *image.RGBA, box Box, t transform, dpr float64) {
	dev := Box{Min: t.apply(box.Min), Max: t.apply(box.Max)}
	thick := lineThickness(dpr)
	dashedRect(dst, pixelRect(dev), 4*thick, thick, r.Style.Outline, r.Style.OutlineAlt)

	size := HandleSize * dpr
	for _, h := range Handles {
		hr := pixelRect(h.Rect(dev, size))
		fillRect(dst, hr, r.Style.HandleFill)
		strokeRect(dst, hr, r.Style.HandleBorder, thick)
	}
}

// strokePolyline returns the polygons whose union is a round-capped,
// round-joined stroke of half-width hw through pts. A single point yields a
// dot.
func strokePolyline(pts []Point, hw float64) [][]Point {
	polys := make([][]Point, 0, 2*len(pts))
	for i, p := range pts {
		polys = append(polys, ellipsePolygon(p, hw, hw))
		if i == 0 {
			continue
		}
		a := pts[i-1]
		d := p.Dist(a)
		if d == 0 {
			continue
		}
		n := Point{(p.Y - a.Y) / d * hw, -(p.X - a.X) / d * hw}
		polys = append(polys, []Point{a.Add(n), p.Add(n), p.Sub(n), a.Sub(n)})
	}
	return polys
}

func rectPolygon(b Box) []Point {
	return []Point{b.Min, {b.Max.X, b.Min.Y}, b.Max, {b.Min.X, b.Max.Y}}
}

func ellipsePolygon(c Point, rx, ry float64) []Point {
	n := int(math.Ceil(2 * math.Pi * math.Max(rx, ry) / 1.5))
	if n < 12 {
		n = 12
	}
	if n > 256 {
		n = 256
	}
	out := make([]Point, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Point{c.X + rx*math.Cos(a), c.Y + ry*math.Sin(a)}
	}
	return out
}

func signedArea(poly []Point) float64 {
	var s float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}

// addPolygon appends poly to z. The rasterizer sums signed coverage, so every
// filled polygon is emitted with positive area and every hole with negative
// area; overlapping fills then saturate instead of cancelling.
func addPolygon(z *vector.Rasterizer, poly []Point, off Point, hole bool) {
	area := signedArea(poly)
	if len(poly) < 3 || area == 0 {
		return
	}
	reverse := (area < 0) != hole
	at := func(i int) Point {
		if reverse {
			i = len(poly) - 1 - i
		}
		return poly[i].Sub(off)
	}
	p := at(0)
	z.MoveTo(float32(p.X), float32(p.Y))
	for i := 1; i < len(poly); i++ {
		p = at(i)
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

func polygonBounds(polys [][]Point) (image.Rectangle, bool) {
	var all []Point
	for _, p := range polys {
		all = append(all, p...)
	}
	b, ok := BoundsOf(all)
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(math.Floor(b.Min.X))-1, int(math.Floor(b.Min.Y))-1,
		int(math.Ceil(b.Max.X))+1, int(math.Ceil(b.Max.Y))+1,
	), true
}

func pixelRect(b Box) image.Rectangle {
	return image.Rect(
		int(math.Round(b.Min.X)), int(math.Round(b.Min.Y)),
		int(math.Round(b.Max.X)), int(math.Round(b.Max.Y)),
	)
}

// lineThickness is the width in device pixels of a one-pixel chrome line.
func lineThickness(dpr float64) int {
	if t := int(math.Round(dpr)); t > 1 {
		return t
	}
	return 1
}

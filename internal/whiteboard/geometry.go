package whiteboard

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate. Whether it lives in screen or world space is
// decided by the caller; Viewport converts between the two.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }
func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Box is an axis-aligned bounding box. A box with Min == Max is a valid
// zero-area box around a single point.
type Box struct {
	Min, Max Point
}

// BoxOf returns the normalized box spanning the two corners.
func BoxOf(a, b Point) Box {
	return Box{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// BoundsOf returns the bounding box of pts. ok is false when pts is empty.
func BoundsOf(pts []Point) (b Box, ok bool) {
	if len(pts) == 0 {
		return Box{}, false
	}
	b = Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.ExpandTo(p)
	}
	return b, true
}

func (b Box) Dx() float64 { return b.Max.X - b.Min.X }
func (b Box) Dy() float64 { return b.Max.Y - b.Min.Y }

func (b Box) Center() Point { return b.Min.Mid(b.Max) }

// ExpandTo grows b so that it contains p.
func (b Box) ExpandTo(p Point) Box {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

func (b Box) Union(c Box) Box {
	return b.ExpandTo(c.Min).ExpandTo(c.Max)
}

// Grow pushes every edge of b outwards by d. Negative d shrinks it.
func (b Box) Grow(d float64) Box {
	return Box{
		Min: Point{b.Min.X - d, b.Min.Y - d},
		Max: Point{b.Max.X + d, b.Max.Y + d},
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether the interiors of b and c overlap.
func (b Box) Intersects(c Box) bool {
	return b.Min.X < c.Max.X && b.Max.X > c.Min.X && b.Min.Y < c.Max.Y && b.Max.Y > c.Min.Y
}

func (b Box) String() string { return fmt.Sprintf("%v-%v", b.Min, b.Max) }

// Handle names one of the eight resize grips on a selection box.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// Handles lists the grips in hit-test order.
var Handles = [...]Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

var handleNames = map[Handle]string{
	HandleNone:        "none",
	HandleTopLeft:     "topLeft",
	HandleTop:         "top",
	HandleTopRight:    "topRight",
	HandleRight:       "right",
	HandleBottomRight: "bottomRight",
	HandleBottom:      "bottom",
	HandleBottomLeft:  "bottomLeft",
	HandleLeft:        "left",
}

func (h Handle) String() string {
	if s, ok := handleNames[h]; ok {
		return s
	}
	return fmt.Sprintf("Handle(%d)", int(h))
}

// Anchor returns the position of the handle on b.
func (h Handle) Anchor(b Box) Point {
	c := b.Center()
	switch h {
	case HandleTopLeft:
		return b.Min
	case HandleTop:
		return Point{c.X, b.Min.Y}
	case HandleTopRight:
		return Point{b.Max.X, b.Min.Y}
	case HandleRight:
		return Point{b.Max.X, c.Y}
	case HandleBottomRight:
		return b.Max
	case HandleBottom:
		return Point{c.X, b.Max.Y}
	case HandleBottomLeft:
		return Point{b.Min.X, b.Max.Y}
	case HandleLeft:
		return Point{b.Min.X, c.Y}
	}
	return c
}

// Rect returns the square grip of side size centred on the handle anchor.
func (h Handle) Rect(b Box, size float64) Box {
	a := h.Anchor(b)
	hs := size / 2
	return Box{Min: Point{a.X - hs, a.Y - hs}, Max: Point{a.X + hs, a.Y + hs}}
}

// Drag moves the edges controlled by h to p. The opposite edges stay put.
// Dragging past the opposite edge yields a box with Min > Max on that axis,
// which mirrors the content when used with Rescale.
func (h Handle) Drag(orig Box, p Point) Box {
	out := orig
	switch h {
	case HandleTopLeft, HandleLeft, HandleBottomLeft:
		out.Min.X = p.X
	case HandleTopRight, HandleRight, HandleBottomRight:
		out.Max.X = p.X
	}
	switch h {
	case HandleTopLeft, HandleTop, HandleTopRight:
		out.Min.Y = p.Y
	case HandleBottomLeft, HandleBottom, HandleBottomRight:
		out.Max.Y = p.Y
	}
	return out
}

// Rescale maps pts proportionally from box from to box to, per axis. An axis
// on which from has zero extent is left untouched.
func Rescale(pts []Point, from, to Box) []Point {
	out := make([]Point, len(pts))
	sx, sy := from.Dx(), from.Dy()
	for i, p := range pts {
		if sx != 0 {
			p.X = to.Min.X + (p.X-from.Min.X)*(to.Dx()/sx)
		}
		if sy != 0 {
			p.Y = to.Min.Y + (p.Y-from.Min.Y)*(to.Dy()/sy)
		}
		out[i] = p
	}
	return out
}

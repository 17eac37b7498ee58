package whiteboard

import "math"

const (
	MinScale = 0.1
	MaxScale = 10.0

	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.2
)

// Viewport maps screen coordinates onto the unbounded world plane:
//
//	world = (screen - Offset) / Scale
//
// The zero value behaves as the identity transform.
type Viewport struct {
	Offset Point
	Scale  float64
}

// Identity returns the untransformed viewport.
func Identity() Viewport { return Viewport{Scale: 1} }

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if math.IsNaN(s) || s <= 0 {
		return MinScale
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}

func (v Viewport) ScreenToWorld(p Point) Point {
	return p.Sub(v.Offset).Div(v.scale())
}

func (v Viewport) WorldToScreen(p Point) Point {
	return p.Mul(v.scale()).Add(v.Offset)
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(d Point) {
	v.Offset = v.Offset.Add(d)
}

// ZoomAt changes the scale to s (clamped) while keeping the world point under
// the screen anchor a fixed on screen.
func (v *Viewport) ZoomAt(a Point, s float64) {
	w := v.ScreenToWorld(a)
	v.Scale = ClampScale(s)
	v.Offset = a.Sub(w.Mul(v.Scale))
}

// Reset returns the viewport to the identity transform.
func (v *Viewport) Reset() { *v = Identity() }

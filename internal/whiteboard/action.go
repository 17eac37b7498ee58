package whiteboard

import "image/color"

// Action is one stroke or shape. ID, Tool, Color and LineWidth never change
// after creation; Points may be rewritten by move and resize.
//
// Pen and eraser actions hold the sampled polyline. Rect and circle actions
// hold exactly two opposite corners of their box once extended.
type Action struct {
	ID        int64
	Tool      Tool
	Color     color.RGBA
	LineWidth float64
	Points    []Point
}

// Bounds returns the bounding box of the action's points.
func (a *Action) Bounds() (Box, bool) {
	return BoundsOf(a.Points)
}

// Clone returns a deep copy of a.
func (a *Action) Clone() *Action {
	c := *a
	c.Points = append([]Point(nil), a.Points...)
	return &c
}

func (a *Action) translate(d Point) {
	for i := range a.Points {
		a.Points[i] = a.Points[i].Add(d)
	}
}

package whiteboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxIntersects(t *testing.T) {
	marquee := BoxOf(Pt(0, 0), Pt(100, 100))
	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"inside", BoxOf(Pt(10, 10), Pt(30, 30)), true},
		{"outside", BoxOf(Pt(200, 200), Pt(220, 220)), false},
		{"partial", BoxOf(Pt(90, 90), Pt(150, 150)), true},
		{"touching edge", BoxOf(Pt(100, 0), Pt(120, 10)), false},
		{"enclosing", BoxOf(Pt(-10, -10), Pt(110, 110)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.Intersects(marquee))
			assert.Equal(t, tt.want, marquee.Intersects(tt.box))
		})
	}
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	b, ok := BoundsOf([]Point{{5, 1}, {-2, 8}, {3, -4}})
	assert.True(t, ok)
	assert.Equal(t, Box{Min: Pt(-2, -4), Max: Pt(5, 8)}, b)
}

func TestHandleDragMovesOnlyDraggedEdges(t *testing.T) {
	orig := BoxOf(Pt(0, 0), Pt(100, 50))
	tests := []struct {
		h    Handle
		p    Point
		want Box
	}{
		{HandleBottomRight, Pt(200, 50), BoxOf(Pt(0, 0), Pt(200, 50))},
		{HandleTopLeft, Pt(-10, -20), BoxOf(Pt(-10, -20), Pt(100, 50))},
		{HandleTop, Pt(999, 10), Box{Min: Pt(0, 10), Max: Pt(100, 50)}},
		{HandleRight, Pt(40, 999), Box{Min: Pt(0, 0), Max: Pt(40, 50)}},
		{HandleBottomLeft, Pt(20, 60), Box{Min: Pt(20, 0), Max: Pt(100, 60)}},
		{HandleLeft, Pt(-5, -5), Box{Min: Pt(-5, 0), Max: Pt(100, 50)}},
		{HandleBottom, Pt(-5, 80), Box{Min: Pt(0, 0), Max: Pt(100, 80)}},
		{HandleTopRight, Pt(150, -50), Box{Min: Pt(0, -50), Max: Pt(150, 50)}},
	}
	for _, tt := range tests {
		t.Run(tt.h.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.h.Drag(orig, tt.p))
		})
	}
}

func TestRescaleProportional(t *testing.T) {
	from := BoxOf(Pt(0, 0), Pt(100, 50))
	to := BoxOf(Pt(0, 0), Pt(200, 50))
	got := Rescale([]Point{{0, 0}, {50, 25}, {100, 50}}, from, to)
	assert.Equal(t, []Point{{0, 0}, {100, 25}, {200, 50}}, got)
}

func TestRescaleSkipsDegenerateAxis(t *testing.T) {
	from := BoxOf(Pt(0, 10), Pt(100, 10))
	to := Box{Min: Pt(0, 40), Max: Pt(50, 10)}
	got := Rescale([]Point{{0, 10}, {100, 10}}, from, to)
	for _, p := range got {
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
		assert.Equal(t, 10.0, p.Y)
	}
	assert.Equal(t, 50.0, got[1].X)
}

func TestHandleAnchors(t *testing.T) {
	b := BoxOf(Pt(0, 0), Pt(100, 50))
	assert.Equal(t, Pt(0, 0), HandleTopLeft.Anchor(b))
	assert.Equal(t, Pt(50, 0), HandleTop.Anchor(b))
	assert.Equal(t, Pt(100, 25), HandleRight.Anchor(b))
	assert.Equal(t, Pt(100, 50), HandleBottomRight.Anchor(b))
	assert.Equal(t, Pt(0, 25), HandleLeft.Anchor(b))
	assert.Len(t, Handles, 8)
}

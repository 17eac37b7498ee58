package whiteboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestViewportRoundTrip(t *testing.T) {
	views := []Viewport{
		Identity(),
		{},
		{Offset: Pt(13, -7), Scale: 1.5},
		{Offset: Pt(-400, 250), Scale: MinScale},
		{Offset: Pt(0.25, 0.75), Scale: MaxScale},
	}
	points := []Point{{0, 0}, {10, 10}, {-33.3, 1024}, {1e5, -1e5}}
	for _, v := range views {
		for _, p := range points {
			t.Run(fmt.Sprintf("%v@%g/%v", v.Offset, v.Scale, p), func(t *testing.T) {
				got := v.WorldToScreen(v.ScreenToWorld(p))
				assert.InDelta(t, p.X, got.X, 1e-6)
				assert.InDelta(t, p.Y, got.Y, 1e-6)
			})
		}
	}
}

func TestViewportZoomKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		view   Viewport
		anchor Point
		scale  float64
	}{
		{"identity in", Identity(), Pt(100, 50), 2},
		{"offset out", Viewport{Offset: Pt(13, -7), Scale: 1.5}, Pt(320, 240), 0.5},
		{"to max", Viewport{Offset: Pt(-50, 80), Scale: 4}, Pt(0, 0), MaxScale},
		{"to min", Viewport{Offset: Pt(5, 5), Scale: 0.3}, Pt(999, 1), MinScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.view
			before := v.ScreenToWorld(tt.anchor)
			v.ZoomAt(tt.anchor, tt.scale)
			after := v.ScreenToWorld(tt.anchor)
			assert.InDelta(t, tt.scale, v.Scale, eps)
			assert.InDelta(t, before.X, after.X, 1e-6)
			assert.InDelta(t, before.Y, after.Y, 1e-6)
		})
	}
}

func TestViewportScaleClamped(t *testing.T) {
	v := Identity()
	v.ZoomAt(Pt(10, 10), 100)
	assert.Equal(t, MaxScale, v.Scale)
	v.ZoomAt(Pt(10, 10), 0.001)
	assert.Equal(t, MinScale, v.Scale)
	v.ZoomAt(Pt(10, 10), -3)
	assert.Equal(t, MinScale, v.Scale)
}

func TestViewportPanAndReset(t *testing.T) {
	v := Identity()
	v.Pan(Pt(10, -5))
	v.Pan(Pt(1, 1))
	assert.Equal(t, Pt(11, -4), v.Offset)
	assert.Equal(t, Pt(-11, 4), v.ScreenToWorld(Pt(0, 0)))
	v.Reset()
	assert.Equal(t, Identity(), v)
}

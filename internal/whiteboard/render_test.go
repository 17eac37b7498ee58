package whiteboard

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var red = color.RGBA{0xEF, 0x44, 0x44, 0xFF}

func testStyle() Style {
	st := DefaultStyle
	st.Background = color.RGBA{0, 0, 0, 0xFF}
	return st
}

func renderScene(w, h int, sc Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	NewRenderer(testStyle()).Render(img, sc)
	return img
}

func action(tool Tool, width float64, pts ...Point) *Action {
	return &Action{ID: int64(len(pts)), Tool: tool, Color: red, LineWidth: width, Points: pts}
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.Color) {
	t.Helper()
	assert.Equal(t, color.RGBAModel.Convert(want), img.RGBAAt(x, y), "pixel (%d,%d)", x, y)
}

func TestRenderClearsToBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, red)
	NewRenderer(testStyle()).Render(img, Scene{})
	assertPixel(t, img, 1, 1, testStyle().Background)
}

func TestRenderPenPolyline(t *testing.T) {
	a := action(ToolPen, 4, Pt(10, 10), Pt(30, 10), Pt(30, 30))
	img := renderScene(40, 40, Scene{Actions: []*Action{a}})
	assertPixel(t, img, 20, 10, red)
	assertPixel(t, img, 30, 20, red)
	assertPixel(t, img, 30, 10, red)
	assertPixel(t, img, 20, 20, testStyle().Background)
	assertPixel(t, img, 20, 4, testStyle().Background)
}

func TestRenderSinglePointDot(t *testing.T) {
	a := action(ToolPen, 10, Pt(20, 20))
	img := renderScene(40, 40, Scene{Actions: []*Action{a}})
	assertPixel(t, img, 20, 20, red)
	assertPixel(t, img, 23, 20, red)
	assertPixel(t, img, 28, 20, testStyle().Background)
}

func TestRenderEraserUsesBackground(t *testing.T) {
	stroke := action(ToolPen, 6, Pt(0, 10), Pt(40, 10))
	eraser := action(ToolEraser, 6, Pt(20, 0), Pt(20, 20))
	img := renderScene(40, 20, Scene{Actions: []*Action{stroke, eraser}})
	assertPixel(t, img, 10, 10, red)
	assertPixel(t, img, 20, 10, testStyle().Background)
}

func TestRenderRectOutline(t *testing.T) {
	a := action(ToolRect, 2, Pt(10, 10), Pt(50, 30))
	img := renderScene(60, 40, Scene{Actions: []*Action{a}})
	assertPixel(t, img, 30, 10, red)
	assertPixel(t, img, 10, 20, red)
	assertPixel(t, img, 30, 20, testStyle().Background)
	assertPixel(t, img, 55, 35, testStyle().Background)
}

func TestRenderCircleIsInscribedEllipse(t *testing.T) {
	a := action(ToolCircle, 2, Pt(2, 10), Pt(62, 30))
	img := renderScene(70, 40, Scene{Actions: []*Action{a}})
	assertPixel(t, img, 32, 10, red)
	assertPixel(t, img, 32, 29, red)
	assertPixel(t, img, 2, 20, red)
	assertPixel(t, img, 32, 20, testStyle().Background)
	// box corners lie outside the ellipse
	assertPixel(t, img, 3, 12, testStyle().Background)
}

func TestRenderInactiveActionsIgnored(t *testing.T) {
	a := action(ToolPen, 4, Pt(10, 10), Pt(30, 10))
	img := renderScene(40, 20, Scene{})
	assertPixel(t, img, 20, 10, testStyle().Background)
	img = renderScene(40, 20, Scene{Actions: []*Action{a}})
	assertPixel(t, img, 20, 10, red)
}

func TestRenderAppliesViewportAndDPR(t *testing.T) {
	a := action(ToolPen, 2, Pt(0, 0), Pt(10, 0))
	view := Viewport{Offset: Pt(5, 5), Scale: 2}
	img := renderScene(80, 40, Scene{Actions: []*Action{a}, View: view, DPR: 2})
	// world (5,0) -> screen (15,5) -> device (30,10)
	assertPixel(t, img, 30, 10, red)
	assertPixel(t, img, 15, 5, testStyle().Background)
}

func TestRenderEmptyActionSkipped(t *testing.T) {
	assert.NotPanics(t, func() {
		renderScene(10, 10, Scene{Actions: []*Action{{Tool: ToolPen}, {Tool: ToolRect}}})
	})
}

func TestRenderSelectionHandles(t *testing.T) {
	a := action(ToolRect, 2, Pt(10, 10), Pt(50, 30))
	a.ID = 42
	st := testStyle()
	img := renderScene(60, 40, Scene{Actions: []*Action{a}, Selected: []int64{42}})
	for _, h := range Handles {
		p := h.Anchor(BoxOf(Pt(10, 10), Pt(50, 30)))
		assertPixel(t, img, int(p.X), int(p.Y), st.HandleFill)
	}
	assertPixel(t, img, 10-HandleSize/2, 10-HandleSize/2, st.HandleBorder)
}

func TestRenderMarqueeInScreenSpace(t *testing.T) {
	m := BoxOf(Pt(10, 10), Pt(30, 30))
	view := Viewport{Offset: Pt(100, 100), Scale: 3}
	img := renderScene(40, 40, Scene{View: view, Marquee: &m})
	st := testStyle()
	assertPixel(t, img, 10, 10, st.MarqueeBorder)
	inside := img.RGBAAt(20, 20)
	assert.NotEqual(t, color.RGBAModel.Convert(st.Background), inside)
	assert.NotEqual(t, color.RGBAModel.Convert(st.MarqueeBorder), inside)
	assertPixel(t, img, 35, 35, st.Background)
}

func TestDashedRectAlternates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	c1 := color.RGBA{255, 0, 0, 255}
	c2 := color.RGBA{0, 0, 255, 255}
	dashedRect(img, image.Rect(0, 0, 20, 20), 4, 1, c1, c2)
	assert.Equal(t, c1, img.RGBAAt(0, 0))
	assert.Equal(t, c1, img.RGBAAt(3, 0))
	assert.Equal(t, c2, img.RGBAAt(4, 0))
	assert.Equal(t, c1, img.RGBAAt(8, 0))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(10, 10))
}

func TestSceneBoardDropsChrome(t *testing.T) {
	a := action(ToolRect, 2, Pt(10, 10), Pt(50, 30))
	a.ID = 7
	m := BoxOf(Pt(0, 0), Pt(5, 5))
	sc := Scene{Actions: []*Action{a}, Selected: []int64{7}, Marquee: &m}
	board := sc.Board()
	assert.Nil(t, board.Selected)
	assert.Nil(t, board.Marquee)
	assert.Len(t, board.Actions, 1)

	img := NewRenderer(testStyle()).Image(image.Pt(60, 40), board)
	assert.Equal(t, image.Rect(0, 0, 60, 40), img.Bounds())
	assertPixel(t, img, 10-HandleSize/2, 10-HandleSize/2, testStyle().Background)
	assertPixel(t, img, 30, 10, red)
}

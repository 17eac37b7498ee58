package appstate

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

type recorded struct {
	tool   whiteboard.Tool
	color  color.RGBA
	width  float64
	called []string
}

func testToolbar(rec *recorded) *toolbar {
	note := func(name string) func() { return func() { rec.called = append(rec.called, name) } }
	return newToolbar(theme.Default(), toolbarActions{
		setTool:  func(t whiteboard.Tool) { rec.tool = t; rec.called = append(rec.called, "tool") },
		setColor: func(c color.RGBA) { rec.color = c; rec.called = append(rec.called, "color") },
		setWidth: func(w float64) { rec.width = w; rec.called = append(rec.called, "width") },
		undo:     note("undo"),
		redo:     note("redo"),
		zoomIn:   note("zoomin"),
		zoomOut:  note("zoomout"),
		clear:    note("clear"),
	})
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestToolbarLayoutCentered(t *testing.T) {
	tb := testToolbar(&recorded{})
	tb.layout(1024)

	assert.Equal(t, toolbarTop, tb.rect.Min.Y)
	assert.InDelta(t, 1024, tb.rect.Min.X+tb.rect.Max.X, 1)
	want := len(whiteboard.Tools) + 5 + len(whiteboard.PaletteColors()) + len(whiteboard.WidthOptions())
	require.Len(t, tb.items, want)

	for i, it := range tb.items {
		r := it.Rect()
		assert.True(t, r.In(tb.rect), "item %d outside panel", i)
		assert.Equal(t, buttonHeight, r.Dy())
		for j := i + 1; j < len(tb.items); j++ {
			assert.False(t, r.Overlaps(tb.items[j].Rect()), "items %d and %d overlap", i, j)
		}
		assert.Equal(t, i, tb.itemAt(center(r)))
	}
	assert.Equal(t, -1, tb.itemAt(image.Pt(0, 0)))
	assert.False(t, tb.contains(image.Pt(tb.rect.Min.X-1, tb.rect.Min.Y)))
	assert.Len(t, tb.seps, 3)
}

func TestToolbarRelayoutMovesButtons(t *testing.T) {
	tb := testToolbar(&recorded{})
	tb.layout(1024)
	before := tb.items[0].Rect()
	tb.layout(1600)
	assert.Equal(t, before.Add(image.Pt(288, 0)), tb.items[0].Rect())
}

func TestToolbarActivate(t *testing.T) {
	rec := &recorded{}
	tb := testToolbar(rec)
	tb.layout(1024)
	nTools := len(whiteboard.Tools)

	assert.True(t, tb.activate(1, uiState{}))
	assert.Equal(t, whiteboard.Tools[1], rec.tool)

	undo := nTools
	assert.False(t, tb.activate(undo, uiState{}), "undo disabled with empty history")
	assert.True(t, tb.activate(undo, uiState{canUndo: true}))
	assert.True(t, tb.activate(nTools+4, uiState{}))
	assert.Equal(t, []string{"tool", "undo", "clear"}, rec.called)

	swatch := nTools + 5 + 1
	assert.True(t, tb.activate(swatch, uiState{}))
	assert.Equal(t, whiteboard.PaletteColors()[1].Color, rec.color)

	chip := nTools + 5 + len(whiteboard.PaletteColors())
	assert.True(t, tb.activate(chip, uiState{}))
	assert.Equal(t, float64(whiteboard.WidthOptions()[0]), rec.width)

	assert.False(t, tb.activate(-1, uiState{}))
	assert.False(t, tb.activate(len(tb.items), uiState{}))
}

func TestToolbarDrawStates(t *testing.T) {
	th := theme.Default()
	tb := testToolbar(&recorded{})
	tb.layout(800)
	dst := image.NewRGBA(image.Rect(0, 0, 800, 120))
	tb.draw(dst, uiState{tool: whiteboard.Tools[0]}, 1)

	pen := tb.items[0].Rect().Min.Add(image.Pt(2, 2))
	assert.Equal(t, th.ButtonBackgroundPress, dst.RGBAAt(pen.X, pen.Y))
	hovered := tb.items[1].Rect().Min.Add(image.Pt(2, 2))
	assert.Equal(t, th.ButtonBackgroundHover, dst.RGBAAt(hovered.X, hovered.Y))
	assert.Equal(t, th.ToolbarBorder, dst.RGBAAt(tb.rect.Min.X, tb.rect.Min.Y+10))
}

func TestItemState(t *testing.T) {
	it := &toolItem{
		selected: func(ui uiState) bool { return ui.tool == whiteboard.ToolRect },
		enabled:  func(ui uiState) bool { return ui.canRedo },
	}
	assert.Equal(t, StateDisabled, it.state(uiState{tool: whiteboard.ToolRect}, true))
	assert.Equal(t, StatePressed, it.state(uiState{tool: whiteboard.ToolRect, canRedo: true}, true))
	assert.Equal(t, StateHover, it.state(uiState{canRedo: true}, true))
	assert.Equal(t, StateDefault, it.state(uiState{canRedo: true}, false))
}

func TestKeymapLookup(t *testing.T) {
	m := defaultKeymap()
	tests := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"pen", key.Event{Rune: 'p'}, "pen"},
		{"upper case", key.Event{Rune: 'X', Modifiers: key.ModShift}, ""},
		{"rect", key.Event{Rune: 'x'}, "rect"},
		{"undo", key.Event{Rune: 'z', Modifiers: key.ModControl}, "undo"},
		{"undo control char", key.Event{Rune: 0x1a, Modifiers: key.ModControl}, "undo"},
		{"redo y", key.Event{Rune: 'y', Modifiers: key.ModControl}, "redo"},
		{"redo shift z", key.Event{Rune: 'Z', Modifiers: key.ModControl | key.ModShift}, "redo"},
		{"zoom in shifted", key.Event{Rune: '+', Modifiers: key.ModShift}, "zoomin"},
		{"zoom in equals", key.Event{Rune: '='}, "zoomin"},
		{"zoom out", key.Event{Rune: '-'}, "zoomout"},
		{"reset", key.Event{Rune: '0'}, "resetview"},
		{"save", key.Event{Rune: 's', Modifiers: key.ModControl}, "save"},
		{"plain s", key.Event{Rune: 's'}, ""},
		{"copy", key.Event{Rune: 'c', Modifiers: key.ModControl}, "copy"},
		{"delete", key.Event{Rune: -1, Code: key.CodeDeleteForward}, "clear"},
		{"backspace", key.Event{Rune: -1, Code: key.CodeDeleteBackspace}, "clear"},
		{"escape", key.Event{Rune: -1, Code: key.CodeEscape}, "cancel"},
		{"quit", key.Event{Rune: 'q'}, "quit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.lookup(tt.ev)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func hidpi() size.Event {
	return size.Event{WidthPx: 400, HeightPx: 300, PixelsPerPt: 192.0 / 72}
}

func TestInputResizeUsesPixelsPerPt(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	assert.True(t, in.resize(hidpi()))
	assert.Equal(t, 2.0, in.dpr)
	assert.Equal(t, whiteboard.Surface{Width: 200, Height: 150, DPR: 2}, ed.Surface())
	assert.Equal(t, image.Pt(400, 300), ed.Surface().DeviceSize())
}

func TestInputMouseDrawsInLogicalPixels(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	in.resize(hidpi())

	assert.True(t, in.mouse(mouse.Event{X: 20, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress}))
	assert.Equal(t, whiteboard.ModeDrawing, ed.Mode())
	in.mouse(mouse.Event{X: 40, Y: 20})
	assert.True(t, in.mouse(mouse.Event{X: 40, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))

	active := ed.History().Active()
	require.Len(t, active, 1)
	assert.Equal(t, []whiteboard.Point{{X: 10, Y: 10}, {X: 20, Y: 10}}, active[0].Points)
	assert.Equal(t, whiteboard.ModeNone, ed.Mode())
}

func TestInputIgnoresOtherButtons(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	assert.False(t, in.mouse(mouse.Event{X: 5, Y: 5, Button: mouse.ButtonRight, Direction: mouse.DirPress}))
	assert.False(t, in.mouse(mouse.Event{X: 5, Y: 5, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
	assert.Equal(t, 0, ed.History().Len())
}

func TestInputWheelZoomsAtPointer(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	in.resize(hidpi())
	anchor := whiteboard.Pt(50, 40)
	before := ed.Viewport().ScreenToWorld(anchor)

	assert.True(t, in.mouse(mouse.Event{X: 100, Y: 80, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}))
	v := ed.Viewport()
	assert.InDelta(t, whiteboard.ZoomStep, v.Scale, 1e-9)
	after := v.ScreenToWorld(anchor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	in.mouse(mouse.Event{X: 100, Y: 80, Button: mouse.ButtonWheelDown, Direction: mouse.DirStep})
	assert.InDelta(t, 1, ed.Viewport().Scale, 1e-9)
	assert.False(t, in.mouse(mouse.Event{X: 100, Y: 80, Button: mouse.ButtonWheelDown, Direction: mouse.DirRelease}))
}

func TestInputTouchGesture(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	in.touch(touch.Event{X: 10, Y: 10, Sequence: 0, Type: touch.TypeBegin})
	assert.Equal(t, whiteboard.ModeDrawing, ed.Mode())
	in.touch(touch.Event{X: 60, Y: 10, Sequence: 1, Type: touch.TypeBegin})
	assert.Equal(t, whiteboard.ModeGesturing, ed.Mode())
	in.touch(touch.Event{X: 110, Y: 10, Sequence: 1, Type: touch.TypeMove})
	assert.InDelta(t, 2, ed.Viewport().Scale, 1e-9)
	in.touch(touch.Event{X: 110, Y: 10, Sequence: 1, Type: touch.TypeEnd})
	in.touch(touch.Event{X: 10, Y: 10, Sequence: 0, Type: touch.TypeEnd})
	assert.Empty(t, in.touches)
	assert.Equal(t, whiteboard.ModeNone, ed.Mode())
	assert.Zero(t, ed.History().Len(), "pinch leaves no ink")
}

func TestInputLeaveAndCancel(t *testing.T) {
	ed := whiteboard.New()
	in := newInput(ed)
	in.mouse(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	in.mouse(mouse.Event{X: 30, Y: 10})
	assert.True(t, in.leave())
	assert.Equal(t, whiteboard.ModeNone, ed.Mode())
	assert.False(t, in.pressed)
	assert.Equal(t, 1, ed.History().Len(), "stroke kept after leaving")
	assert.False(t, in.leave())

	in.touch(touch.Event{X: 10, Y: 10, Sequence: 4, Type: touch.TypeBegin})
	assert.True(t, in.cancel())
	assert.Empty(t, in.touches)
	assert.False(t, in.cancel())
}

func TestSnapshotIsIndependent(t *testing.T) {
	ed := whiteboard.New()
	ed.Dispatch(whiteboard.PointerDown{Pointer: whiteboard.Pointer{X: 1, Y: 1, Buttons: 1}})
	sc := snapshot(ed.Scene())
	ed.Dispatch(whiteboard.PointerMove{Pointer: whiteboard.Pointer{X: 9, Y: 9, Buttons: 1}})
	require.Len(t, sc.Actions, 1)
	assert.Len(t, sc.Actions[0].Points, 1)
	assert.Len(t, ed.Scene().Actions[0].Points, 2)
}

func TestEditorState(t *testing.T) {
	ed := whiteboard.New(whiteboard.WithTool(whiteboard.ToolRect))
	ui := editorState(ed)
	assert.Equal(t, whiteboard.ToolRect, ui.tool)
	assert.False(t, ui.canUndo)
	assert.False(t, ui.canRedo)

	ed.Dispatch(whiteboard.PointerDown{Pointer: whiteboard.Pointer{X: 1, Y: 1, Buttons: 1}})
	ed.Dispatch(whiteboard.PointerMove{Pointer: whiteboard.Pointer{X: 9, Y: 9, Buttons: 1}})
	ed.Dispatch(whiteboard.PointerUp{Pointer: whiteboard.Pointer{X: 9, Y: 9}})
	ed.Undo()
	ui = editorState(ed)
	assert.False(t, ui.canUndo)
	assert.True(t, ui.canRedo)
}

func TestSavePath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "inkboard-20240305-140709.png", New().savePath(now))
	assert.Equal(t, filepath.Join("shots", "inkboard-20240305-140709.png"), New(WithSaveDir("shots")).savePath(now))
	assert.Equal(t, "out.png", New(WithSaveDir("shots"), WithOutput("out.png")).savePath(now))
}

func TestBoardImageAndSavePNG(t *testing.T) {
	ed := whiteboard.New()
	ed.Dispatch(whiteboard.Resize{Width: 100, Height: 50, DPR: 2})
	img := BoardImage(ed, theme.Default().CanvasStyle())
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	path := filepath.Join(t.TempDir(), "nested", "board.png")
	require.NoError(t, SavePNG(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestDoBeforeAndAfterWindow(t *testing.T) {
	closes := 0
	a := New(WithOnClose(func() { closes++ }))
	ran := false
	require.NoError(t, a.Do(func(ed *whiteboard.Editor) {
		ran = true
		ed.SetTool(whiteboard.ToolHand)
	}))
	assert.True(t, ran)
	assert.Equal(t, whiteboard.ToolHand, a.Editor.Tool())

	a.notifyClose()
	a.notifyClose()
	assert.Equal(t, 1, closes)
	assert.ErrorIs(t, a.Do(func(*whiteboard.Editor) {}), ErrClosed)
	select {
	case <-a.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestSettingsListener(t *testing.T) {
	var got []float64
	a := New(WithSettingsListener(func(_ whiteboard.Tool, _ color.RGBA, w float64) { got = append(got, w) }))
	a.Editor.SetLineWidth(8)
	a.notifySettings()
	assert.Equal(t, []float64{8}, got)
}

func TestStatusVisible(t *testing.T) {
	var s status
	now := time.Now()
	assert.False(t, s.visible(now))
	s.set("saved board.png")
	assert.True(t, s.visible(now))
	assert.False(t, s.visible(now.Add(messageDuration+time.Second)))
}

func TestCloseBeforeRun(t *testing.T) {
	a := New()
	a.Close()
	select {
	case <-a.Done():
	default:
		t.Fatal("Done not closed")
	}
	assert.ErrorIs(t, a.Do(func(*whiteboard.Editor) {}), ErrClosed)
}

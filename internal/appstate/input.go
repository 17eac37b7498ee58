package appstate

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/inkboard/internal/display"
	"github.com/example/inkboard/internal/whiteboard"
)

// mousePointer is the pointer id used for the mouse. Touch sequences are
// offset so they never collide with it.
const mousePointer = 0

// input translates window events into editor events. Window coordinates are
// device pixels; the editor works in logical pixels.
type input struct {
	ed      *whiteboard.Editor
	dpr     float64
	pressed bool
	touches map[touch.Sequence]struct{}
}

func newInput(ed *whiteboard.Editor) *input {
	return &input{ed: ed, dpr: 1, touches: map[touch.Sequence]struct{}{}}
}

func (in *input) logical(x, y float32) (float64, float64) {
	return float64(x) / in.dpr, float64(y) / in.dpr
}

// ratioFor returns the device pixel ratio of a size event. X11 reports
// PixelsPerPt from the screen's physical size, which is missing on some
// drivers, in which case the display package is asked instead.
func ratioFor(e size.Event) float64 {
	if e.PixelsPerPt > 0 {
		return display.RatioForDPI(float64(e.PixelsPerPt) * 72)
	}
	return display.DevicePixelRatio()
}

func (in *input) resize(e size.Event) bool {
	in.dpr = ratioFor(e)
	return in.ed.Dispatch(whiteboard.Resize{
		Width:  int(float64(e.WidthPx) / in.dpr),
		Height: int(float64(e.HeightPx) / in.dpr),
		DPR:    in.dpr,
	})
}

// mouse forwards a mouse event and reports whether a redraw is needed.
func (in *input) mouse(e mouse.Event) bool {
	x, y := in.logical(e.X, e.Y)
	p := whiteboard.Pointer{
		ID:    mousePointer,
		X:     x,
		Y:     y,
		Shift: e.Modifiers&key.ModShift != 0,
		Type:  whiteboard.PointerMouse,
	}
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirRelease {
			return false
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			in.ed.ZoomAt(p.Pos(), whiteboard.ZoomStep)
		case mouse.ButtonWheelDown:
			in.ed.ZoomAt(p.Pos(), 1/whiteboard.ZoomStep)
		default:
			return false
		}
		return true
	}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		in.pressed = true
		p.Buttons = 1
		return in.ed.Dispatch(whiteboard.PointerDown{Pointer: p})
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !in.pressed {
			return false
		}
		in.pressed = false
		return in.ed.Dispatch(whiteboard.PointerUp{Pointer: p})
	case mouse.DirNone:
		if in.pressed {
			p.Buttons = 1
		}
		return in.ed.Dispatch(whiteboard.PointerMove{Pointer: p})
	}
	return false
}

// touch forwards one finger of a touch sequence.
func (in *input) touch(e touch.Event) bool {
	x, y := in.logical(e.X, e.Y)
	p := whiteboard.Pointer{
		ID:      int(e.Sequence) + 1,
		X:       x,
		Y:       y,
		Buttons: 1,
		Type:    whiteboard.PointerTouch,
	}
	switch e.Type {
	case touch.TypeBegin:
		in.touches[e.Sequence] = struct{}{}
		return in.ed.Dispatch(whiteboard.PointerDown{Pointer: p})
	case touch.TypeMove:
		return in.ed.Dispatch(whiteboard.PointerMove{Pointer: p})
	case touch.TypeEnd:
		delete(in.touches, e.Sequence)
		return in.ed.Dispatch(whiteboard.PointerUp{Pointer: p})
	}
	return false
}

// leave ends every pointer interaction, used when the window loses focus.
func (in *input) leave() bool {
	changed := false
	if in.pressed {
		in.pressed = false
		changed = in.ed.Dispatch(whiteboard.PointerLeave{Pointer: whiteboard.Pointer{ID: mousePointer}})
	}
	for seq := range in.touches {
		if in.ed.Dispatch(whiteboard.LostCapture{ID: int(seq) + 1}) {
			changed = true
		}
		delete(in.touches, seq)
	}
	return changed
}

// cancel aborts every interaction in progress.
func (in *input) cancel() bool {
	changed := false
	if in.pressed {
		in.pressed = false
		changed = in.ed.Dispatch(whiteboard.PointerCancel{Pointer: whiteboard.Pointer{ID: mousePointer}})
	}
	for seq := range in.touches {
		if in.ed.Dispatch(whiteboard.PointerCancel{Pointer: whiteboard.Pointer{ID: int(seq) + 1}}) {
			changed = true
		}
		delete(in.touches, seq)
	}
	return changed
}

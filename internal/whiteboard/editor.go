package whiteboard

import (
	"image"
	"image/color"
	"math"
)

const (
	MinLineWidth = 1.0
	MaxLineWidth = 50.0

	DefaultLineWidth = 3.0

	// HandleSize is the side of a resize grip in screen pixels.
	HandleSize = 8.0
	// HitTolerance is the extra grab distance, in screen pixels, added
	// around every action when hit-testing.
	HitTolerance = 4.0
)

// DefaultColor is the initial stroke color.
var DefaultColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

// Surface describes the host's drawing area.
type Surface struct {
	// Width and Height are logical pixels.
	Width, Height int
	DPR           float64
}

func (s Surface) ratio() float64 {
	if s.DPR <= 0 {
		return 1
	}
	return s.DPR
}

// DeviceSize is the size of the backing pixel buffer.
func (s Surface) DeviceSize() image.Point {
	r := s.ratio()
	return image.Pt(int(math.Round(float64(s.Width)*r)), int(math.Round(float64(s.Height)*r)))
}

// Contains reports whether the logical point p is on the surface. An
// unmeasured surface contains everything.
func (s Surface) Contains(p Point) bool {
	if s.Width <= 0 || s.Height <= 0 {
		return true
	}
	return p.X >= 0 && p.Y >= 0 && p.X < float64(s.Width) && p.Y < float64(s.Height)
}

// Center is the middle of the surface in logical pixels.
func (s Surface) Center() Point {
	return Point{float64(s.Width) / 2, float64(s.Height) / 2}
}

// Editor owns the whole drawing state: history, viewport, selection and the
// interaction in progress. Input arrives through Dispatch; it is not safe for
// concurrent use.
type Editor struct {
	history *History
	view    Viewport
	sel     Selection
	gesture GestureTracker
	surface Surface

	tool  Tool
	color color.RGBA
	width float64

	mode     Mode
	active   int
	captured map[int]struct{}

	// transient interaction state, cleared when the mode ends
	last         Point
	handle       Handle
	resizeFrom   Box
	originals    map[int64][]Point
	marqueeStart Point
	marqueeEnd   Point
	marqueeShift bool

	handleSize float64
	tolerance  float64
}

// Option configures an Editor.
type Option func(*Editor)

// WithTool sets the initial tool.
func WithTool(t Tool) Option { return func(e *Editor) { e.tool = t } }

// WithColor sets the initial stroke color.
func WithColor(c color.RGBA) Option { return func(e *Editor) { e.color = c } }

// WithLineWidth sets the initial stroke width, clamped to the allowed range.
func WithLineWidth(w float64) Option { return func(e *Editor) { e.width = ClampLineWidth(w) } }

// WithHistoryLimit caps the number of actions kept for undo.
func WithHistoryLimit(n int) Option { return func(e *Editor) { e.history = NewHistory(n) } }

// WithSurface sets the initial surface size and pixel ratio.
func WithSurface(s Surface) Option { return func(e *Editor) { e.surface = s } }

// WithHitTolerance sets the extra screen-space slop used when hit testing.
func WithHitTolerance(px float64) Option { return func(e *Editor) { e.tolerance = px } }

// New returns an editor with an empty history and identity viewport.
func New(opts ...Option) *Editor {
	e := &Editor{
		history:    NewHistory(DefaultHistoryLimit),
		view:       Identity(),
		tool:       ToolPen,
		color:      DefaultColor,
		width:      DefaultLineWidth,
		handleSize: HandleSize,
		tolerance:  HitTolerance,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ClampLineWidth limits w to [MinLineWidth, MaxLineWidth].
func ClampLineWidth(w float64) float64 {
	if math.IsNaN(w) {
		return DefaultLineWidth
	}
	return math.Max(MinLineWidth, math.Min(MaxLineWidth, w))
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Color returns the color used for new actions.
func (e *Editor) Color() color.RGBA { return e.color }

// LineWidth returns the width used for new actions.
func (e *Editor) LineWidth() float64 { return e.width }

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode { return e.mode }

// Viewport returns the current pan and zoom.
func (e *Editor) Viewport() Viewport { return e.view }

// Surface returns the host surface size and pixel ratio.
func (e *Editor) Surface() Surface { return e.surface }

// History returns the action log.
func (e *Editor) History() *History { return e.history }

// Selected returns the ids of the selected actions.
func (e *Editor) Selected() []int64 { return e.sel.IDs() }

// IsSelected reports whether action id is selected.
func (e *Editor) IsSelected(id int64) bool { return e.sel.Has(id) }

// Captured reports whether pointer id is captured by the current interaction.
func (e *Editor) Captured(id int) bool {
	_, ok := e.captured[id]
	return ok
}

// Marquee returns the in-progress marquee in screen space.
func (e *Editor) Marquee() (Box, bool) {
	if e.mode != ModeSelecting {
		return Box{}, false
	}
	return BoxOf(e.marqueeStart, e.marqueeEnd), true
}

// SelectionBounds returns the combined world box of the selected actions.
func (e *Editor) SelectionBounds() (Box, bool) {
	return e.sel.Bounds(e.history.Active())
}

// Dispatch applies ev and reports whether the rendered output may have
// changed.
func (e *Editor) Dispatch(ev Event) bool {
	switch ev := ev.(type) {
	case PointerDown:
		return e.pointerDown(ev.Pointer)
	case PointerMove:
		return e.pointerMove(ev.Pointer)
	case PointerUp:
		return e.pointerEnd(ev.ID, ev.Shift)
	case PointerCancel:
		return e.pointerEnd(ev.ID, false)
	case PointerLeave:
		return e.pointerEnd(ev.ID, false)
	case LostCapture:
		return e.pointerEnd(ev.ID, false)
	case Resize:
		e.surface = Surface{Width: ev.Width, Height: ev.Height, DPR: ev.DPR}
		return true
	}
	return false
}

func (e *Editor) capture(id int) {
	if e.captured == nil {
		e.captured = make(map[int]struct{})
	}
	e.captured[id] = struct{}{}
}

func (e *Editor) pointerDown(p Pointer) bool {
	pos := p.Pos()
	e.capture(p.ID)
	if e.gesture.Down(p.ID, pos) == GestureMulti {
		if e.mode == ModeGesturing {
			return false
		}
		// a tap that turns into a pinch leaves no dot behind
		if d := e.history.Drawing(); e.mode == ModeDrawing && d != nil && len(d.Points) == 1 {
			e.history.Discard()
		}
		e.endMode(false)
		e.mode = ModeGesturing
		return true
	}
	if e.mode != ModeNone {
		e.endMode(false)
	}

	world := e.view.ScreenToWorld(pos)
	e.active = p.ID
	switch {
	case e.tool.Draws():
		e.sel.Clear()
		e.history.Begin(e.tool, e.color, e.width, world)
		e.mode = ModeDrawing
	case e.tool == ToolHand:
		e.last = pos
		e.mode = ModePanning
	case e.tool == ToolSelect:
		e.beginSelect(world, pos, p.Shift)
	}
	return true
}

func (e *Editor) beginSelect(world, screen Point, shift bool) {
	if box, ok := e.SelectionBounds(); ok {
		if h := e.handleAt(box, world); h != HandleNone {
			e.handle = h
			e.resizeFrom = box
			e.originals = make(map[int64][]Point, e.sel.Len())
			for _, a := range e.history.Active() {
				if e.sel.Has(a.ID) {
					e.originals[a.ID] = append([]Point(nil), a.Points...)
				}
			}
			e.last = world
			e.mode = ModeResizing
			return
		}
	}
	if a := e.actionAt(world); a != nil {
		if !e.sel.Has(a.ID) {
			if !shift {
				e.sel.Clear()
			}
			e.sel.Add(a.ID)
		}
		e.last = world
		e.mode = ModeMoving
		return
	}
	if !shift {
		e.sel.Clear()
	}
	e.marqueeStart, e.marqueeEnd = screen, screen
	e.marqueeShift = shift
	e.mode = ModeSelecting
}

func (e *Editor) pointerMove(p Pointer) bool {
	pos := p.Pos()
	if !e.Captured(p.ID) && !e.surface.Contains(pos) {
		return false
	}
	step, stepped := e.gesture.Move(p.ID, pos)
	if e.mode == ModeGesturing {
		if !stepped {
			return false
		}
		e.view.ZoomAt(step.Mid, e.view.scale()*step.Factor)
		e.view.Pan(step.Pan)
		return true
	}
	if e.mode == ModeNone || p.ID != e.active {
		return false
	}

	world := e.view.ScreenToWorld(pos)
	switch e.mode {
	case ModeDrawing:
		return e.history.Extend(world)
	case ModePanning:
		e.view.Pan(pos.Sub(e.last))
		e.last = pos
	case ModeMoving:
		d := world.Sub(e.last)
		for _, a := range e.history.Active() {
			if e.sel.Has(a.ID) {
				a.translate(d)
			}
		}
		e.last = world
	case ModeResizing:
		target := e.handle.Drag(e.resizeFrom, world)
		for _, a := range e.history.Active() {
			if orig, ok := e.originals[a.ID]; ok {
				a.Points = Rescale(orig, e.resizeFrom, target)
			}
		}
		e.last = world
	case ModeSelecting:
		e.marqueeEnd = pos
	}
	return true
}

func (e *Editor) pointerEnd(id int, shift bool) bool {
	delete(e.captured, id)
	e.gesture.Up(id)
	switch {
	case e.mode == ModeNone:
		return false
	case e.mode == ModeGesturing:
		if e.gesture.Count() >= 2 {
			return false
		}
	case id != e.active:
		return false
	}
	e.endMode(shift)
	return true
}

// endMode finishes the current interaction as a pointer-up would.
func (e *Editor) endMode(shift bool) {
	switch e.mode {
	case ModeDrawing:
		e.history.Commit()
	case ModeSelecting:
		e.finishMarquee(shift || e.marqueeShift)
	}
	e.mode = ModeNone
	e.last = Point{}
	e.handle = HandleNone
	e.resizeFrom = Box{}
	e.originals = nil
	e.marqueeStart, e.marqueeEnd = Point{}, Point{}
	e.marqueeShift = false
}

func (e *Editor) finishMarquee(union bool) {
	area := BoxOf(e.view.ScreenToWorld(e.marqueeStart), e.view.ScreenToWorld(e.marqueeEnd))
	if !union {
		e.sel.Clear()
	}
	for _, a := range e.history.Active() {
		if b, ok := a.Bounds(); ok && b.Intersects(area) {
			e.sel.Add(a.ID)
		}
	}
}

// SetTool switches tools, ending any interaction in progress. Leaving the
// select tool clears the selection.
func (e *Editor) SetTool(t Tool) {
	if e.mode != ModeNone && e.mode != ModeGesturing {
		e.endMode(false)
	}
	e.tool = t
	if t != ToolSelect {
		e.sel.Clear()
	}
}

// SetColor sets the color used by actions drawn from now on.
func (e *Editor) SetColor(c color.RGBA) { e.color = c }

// SetLineWidth sets the width used by actions drawn from now on.
func (e *Editor) SetLineWidth(w float64) { e.width = ClampLineWidth(w) }

// Undo hides the most recent visible action. With a selection present the
// first undo only dismisses the selection.
func (e *Editor) Undo() bool {
	e.interrupt()
	if e.sel.Len() > 0 {
		e.sel.Clear()
		return true
	}
	return e.history.Undo()
}

// Redo restores the next undone action.
func (e *Editor) Redo() bool {
	e.interrupt()
	if !e.history.Redo() {
		return false
	}
	e.sel.Clear()
	return true
}

// Clear empties the history and resets selection and viewport.
func (e *Editor) Clear() {
	e.interrupt()
	e.history.Clear()
	e.sel.Clear()
	e.view.Reset()
}

// interrupt ends a single-pointer interaction before a history change.
func (e *Editor) interrupt() {
	if e.mode != ModeNone && e.mode != ModeGesturing {
		e.endMode(false)
	}
}

// Select replaces the selection with the given ids, ignoring any that are
// not visible.
func (e *Editor) Select(ids ...int64) {
	e.sel.Clear()
	e.sel.Add(ids...)
	e.sel.prune(e.history.Active())
}

// ZoomAt zooms by factor keeping the screen point a fixed.
func (e *Editor) ZoomAt(a Point, factor float64) {
	e.view.ZoomAt(a, e.view.scale()*factor)
}

// SetScale sets an absolute scale anchored at a.
func (e *Editor) SetScale(a Point, s float64) { e.view.ZoomAt(a, s) }

func (e *Editor) ZoomIn() { e.ZoomAt(e.surface.Center(), ZoomStep) }
func (e *Editor) ZoomOut() { e.ZoomAt(e.surface.Center(), 1/ZoomStep) }

// Pan shifts the view by a screen-space delta.
func (e *Editor) Pan(d Point) { e.view.Pan(d) }

// ResetView restores the identity viewport.
func (e *Editor) ResetView() { e.view.Reset() }

// Scene captures what the renderer needs to draw the current state.
func (e *Editor) Scene() Scene {
	sc := Scene{
		Actions:  e.history.Active(),
		View:     e.view,
		Selected: e.sel.IDs(),
		DPR:      e.surface.ratio(),
	}
	if m, ok := e.Marquee(); ok {
		sc.Marquee = &m
	}
	return sc
}

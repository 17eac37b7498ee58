package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkboard/internal/render"
	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

const (
	toolbarTop   = 12
	toolbarPad   = 6
	buttonHeight = 24
	buttonGap    = 4
	groupGap     = 12
	swatchWidth  = 22
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// sizer is implemented by buttons that know their preferred width.
type sizer interface {
	PreferredWidth() int
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Over)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

func (cb *CacheButton) PreferredWidth() int {
	if s, ok := cb.Button.(sizer); ok {
		return s.PreferredWidth()
	}
	return buttonHeight
}

// LabelButton is a text button. Tool, action and width buttons are all
// label buttons with different callbacks.
type LabelButton struct {
	label      string
	rect       image.Rectangle
	theme      *theme.Theme
	onActivate func()
}

func (lb *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	th := lb.theme
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg, fg = th.ButtonBackgroundPress, th.ButtonTextPress
	case StateDisabled:
		fg = th.ButtonTextDisabled
	}
	fillRect(dst, lb.rect, theme.Straight(bg))
	if state == StateHover || state == StatePressed {
		drawRect(dst, lb.rect, theme.Straight(th.ButtonBorder), 1)
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(theme.Straight(fg)), Face: basicfont.Face7x13}
	w := d.MeasureString(lb.label).Ceil()
	d.Dot = fixed.P(lb.rect.Min.X+(lb.rect.Dx()-w)/2, lb.rect.Min.Y+16)
	d.DrawString(lb.label)
}

func (lb *LabelButton) PreferredWidth() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return max(d.MeasureString(lb.label).Ceil()+12, buttonHeight)
}

func (lb *LabelButton) Rect() image.Rectangle { return lb.rect }

func (lb *LabelButton) SetRect(r image.Rectangle) {
	if r != lb.rect {
		lb.rect = r
	}
}

func (lb *LabelButton) Activate() {
	if lb.onActivate != nil {
		lb.onActivate()
	}
}

// SwatchButton selects a palette color.
type SwatchButton struct {
	color      color.RGBA
	rect       image.Rectangle
	theme      *theme.Theme
	onActivate func()
}

func (sb *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	th := sb.theme
	fillRect(dst, sb.rect, theme.Straight(th.ButtonBackground))
	inner := sb.rect.Inset(4)
	switch state {
	case StateHover:
		inner = sb.rect.Inset(3)
	case StatePressed:
		drawRect(dst, sb.rect, theme.Straight(th.ButtonBackgroundPress), 2)
	}
	fillRect(dst, inner, sb.color)
	drawRect(dst, inner, theme.Straight(th.ButtonBorder), 1)
}

func (sb *SwatchButton) PreferredWidth() int { return swatchWidth }

func (sb *SwatchButton) Rect() image.Rectangle { return sb.rect }

func (sb *SwatchButton) SetRect(r image.Rectangle) {
	if r != sb.rect {
		sb.rect = r
	}
}

func (sb *SwatchButton) Activate() {
	if sb.onActivate != nil {
		sb.onActivate()
	}
}

// uiState is the editor state the toolbar reflects.
type uiState struct {
	tool    whiteboard.Tool
	color   color.RGBA
	width   float64
	canUndo bool
	canRedo bool
}

func editorState(ed *whiteboard.Editor) uiState {
	h := ed.History()
	return uiState{
		tool:    ed.Tool(),
		color:   ed.Color(),
		width:   ed.LineWidth(),
		canUndo: h.CanUndo() || len(ed.Selected()) > 0,
		canRedo: h.CanRedo(),
	}
}

type toolItem struct {
	*CacheButton
	selected func(uiState) bool
	enabled  func(uiState) bool
}

func (it *toolItem) state(ui uiState, hover bool) ButtonState {
	switch {
	case it.enabled != nil && !it.enabled(ui):
		return StateDisabled
	case it.selected != nil && it.selected(ui):
		return StatePressed
	case hover:
		return StateHover
	}
	return StateDefault
}

// toolbar is the floating panel at the top center of the window. Layout and
// hit testing run on the event loop while drawing runs on the paint
// goroutine, so both go through mu.
type toolbar struct {
	mu    sync.Mutex
	theme *theme.Theme
	rows  [][][]*toolItem
	items []*toolItem
	seps  []image.Rectangle
	rect  image.Rectangle
}

// toolbarActions receives the toolbar's commands.
type toolbarActions struct {
	setTool  func(whiteboard.Tool)
	setColor func(color.RGBA)
	setWidth func(float64)
	undo     func()
	redo     func()
	zoomIn   func()
	zoomOut  func()
	clear    func()
}

var toolLabels = map[whiteboard.Tool]string{
	whiteboard.ToolPen:    "Pen",
	whiteboard.ToolRect:   "Rect",
	whiteboard.ToolCircle: "Circle",
	whiteboard.ToolEraser: "Eraser",
	whiteboard.ToolHand:   "Hand",
	whiteboard.ToolSelect: "Select",
}

func newToolbar(th *theme.Theme, acts toolbarActions) *toolbar {
	tb := &toolbar{theme: th}
	label := func(text string, fn func()) *CacheButton {
		return &CacheButton{Button: &LabelButton{label: text, theme: th, onActivate: fn}}
	}

	var tools []*toolItem
	for _, t := range whiteboard.Tools {
		t := t
		tools = append(tools, &toolItem{
			CacheButton: label(toolLabels[t], func() { acts.setTool(t) }),
			selected:    func(ui uiState) bool { return ui.tool == t },
		})
	}
	history := []*toolItem{
		{CacheButton: label("Undo", acts.undo), enabled: func(ui uiState) bool { return ui.canUndo }},
		{CacheButton: label("Redo", acts.redo), enabled: func(ui uiState) bool { return ui.canRedo }},
	}
	view := []*toolItem{
		{CacheButton: label("Zoom+", acts.zoomIn)},
		{CacheButton: label("Zoom-", acts.zoomOut)},
		{CacheButton: label("Clear", acts.clear)},
	}

	var swatches []*toolItem
	for _, pc := range whiteboard.PaletteColors() {
		c := pc.Color
		swatches = append(swatches, &toolItem{
			CacheButton: &CacheButton{Button: &SwatchButton{color: c, theme: th, onActivate: func() { acts.setColor(c) }}},
			selected:    func(ui uiState) bool { return ui.color == c },
		})
	}
	var chips []*toolItem
	for _, w := range whiteboard.WidthOptions() {
		w := float64(w)
		chips = append(chips, &toolItem{
			CacheButton: label(strconv.Itoa(int(w)), func() { acts.setWidth(w) }),
			selected:    func(ui uiState) bool { return ui.width == w },
		})
	}

	tb.rows = [][][]*toolItem{
		{tools, history, view},
		{swatches, chips},
	}
	for _, row := range tb.rows {
		for _, group := range row {
			tb.items = append(tb.items, group...)
		}
	}
	return tb
}

func rowWidth(row [][]*toolItem) int {
	w := 0
	for gi, group := range row {
		if gi > 0 {
			w += groupGap
		}
		for i, it := range group {
			if i > 0 {
				w += buttonGap
			}
			w += it.PreferredWidth()
		}
	}
	return w
}

// layout positions the panel centered horizontally in a window winWidth
// pixels wide.
func (tb *toolbar) layout(winWidth int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	inner := 0
	for _, row := range tb.rows {
		inner = max(inner, rowWidth(row))
	}
	width := inner + 2*toolbarPad
	height := len(tb.rows)*buttonHeight + (len(tb.rows)-1)*buttonGap + 2*toolbarPad
	x0 := (winWidth - width) / 2
	tb.rect = image.Rect(x0, toolbarTop, x0+width, toolbarTop+height)
	tb.seps = tb.seps[:0]

	y := toolbarTop + toolbarPad
	for _, row := range tb.rows {
		x := x0 + toolbarPad + (inner-rowWidth(row))/2
		for gi, group := range row {
			if gi > 0 {
				sx := x - groupGap/2
				tb.seps = append(tb.seps, image.Rect(sx, y+3, sx+1, y+buttonHeight-3))
			}
			for _, it := range group {
				w := it.PreferredWidth()
				it.SetRect(image.Rect(x, y, x+w, y+buttonHeight))
				x += w + buttonGap
			}
			x += groupGap - buttonGap
		}
		y += buttonHeight + buttonGap
	}
}

// contains reports whether p lies on the panel.
func (tb *toolbar) contains(p image.Point) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return p.In(tb.rect)
}

// itemAt returns the index of the item under p, or -1.
func (tb *toolbar) itemAt(p image.Point) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if !p.In(tb.rect) {
		return -1
	}
	for i, it := range tb.items {
		if p.In(it.Rect()) {
			return i
		}
	}
	return -1
}

// activate runs the item at idx unless it is disabled.
func (tb *toolbar) activate(idx int, ui uiState) bool {
	if idx < 0 || idx >= len(tb.items) {
		return false
	}
	it := tb.items[idx]
	if it.enabled != nil && !it.enabled(ui) {
		return false
	}
	it.Activate()
	return true
}

func (tb *toolbar) draw(dst *image.RGBA, ui uiState, hover int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	th := tb.theme
	render.DrawShadow(dst, tb.rect, render.PanelShadowOptions(th.ToolbarShadow))
	fillRect(dst, tb.rect, theme.Straight(th.ToolbarBackground))
	drawRect(dst, tb.rect, theme.Straight(th.ToolbarBorder), 1)
	for _, r := range tb.seps {
		fillRect(dst, r, theme.Straight(th.Separator))
	}
	for i, it := range tb.items {
		it.Draw(dst, it.state(ui, i == hover))
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color, thick int) {
	src := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick),
		image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick),
	} {
		draw.Draw(dst, edge.Intersect(r), src, image.Point{}, draw.Over)
	}
}

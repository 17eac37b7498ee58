package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/inkboard/internal/clipboard"
	"github.com/example/inkboard/internal/notify"
	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

const (
	messageDuration = 2 * time.Second
	confirmDuration = 3 * time.Second
)

// ErrClosed is returned by Do once the window has been closed.
var ErrClosed = errors.New("board window closed")

// AppState holds the configuration for an interactive board window.
type AppState struct {
	Editor   *whiteboard.Editor
	Theme    *theme.Theme
	Output   string
	SaveDir  string
	Size     image.Point
	Notifier *notify.Notifier

	mu         sync.Mutex
	send       func(any)
	closed     chan struct{}
	closeOnce  sync.Once
	settingsFn func(whiteboard.Tool, color.RGBA, float64)
	onClose    func()
}

// Option configures an AppState.
type Option func(*AppState)

// WithEditor sets the editor driven by the window.
func WithEditor(ed *whiteboard.Editor) Option { return func(a *AppState) { a.Editor = ed } }

// WithTheme sets the colors of the board and its toolbar.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file written by the save shortcut.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets the directory for generated file names when no output is set.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithSize sets the initial window size in logical pixels.
func WithSize(w, h int) Option { return func(a *AppState) { a.Size = image.Pt(w, h) } }

// WithNotifier sets the notifier used after saving and copying.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithSettingsListener registers a callback invoked when the tool, color or
// width is changed from the window.
func WithSettingsListener(fn func(tool whiteboard.Tool, col color.RGBA, width float64)) Option {
	return func(a *AppState) { a.settingsFn = fn }
}

// WithOnClose registers a callback invoked after the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the supplied options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Size:   image.Pt(1024, 768),
		closed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Editor == nil {
		a.Editor = whiteboard.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// closeEvent asks the event loop to return.
type closeEvent struct{}

// controlEvent runs fn on the window's event loop.
type controlEvent struct {
	fn   func(*whiteboard.Editor)
	done chan struct{}
}

// Do runs fn against the editor on the window's event loop and repaints.
// Before the window opens fn runs directly.
func (a *AppState) Do(fn func(ed *whiteboard.Editor)) error {
	a.mu.Lock()
	select {
	case <-a.closed:
		a.mu.Unlock()
		return ErrClosed
	default:
	}
	send := a.send
	if send == nil {
		defer a.mu.Unlock()
		fn(a.Editor)
		return nil
	}
	a.mu.Unlock()

	ev := controlEvent{fn: fn, done: make(chan struct{})}
	send(ev)
	select {
	case <-ev.done:
		return nil
	case <-a.closed:
		return ErrClosed
	}
}

// Close closes the window, or prevents it from opening if Run has not
// started yet.
func (a *AppState) Close() {
	a.mu.Lock()
	send := a.send
	a.mu.Unlock()
	if send == nil {
		a.notifyClose()
		return
	}
	send(closeEvent{})
}

func (a *AppState) setControlSender(fn func(any)) {
	a.mu.Lock()
	a.send = fn
	a.mu.Unlock()
}

func (a *AppState) notifySettings() {
	if a.settingsFn == nil {
		return
	}
	ed := a.Editor
	a.settingsFn(ed.Tool(), ed.Color(), ed.LineWidth())
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.send = nil
		close(a.closed)
		a.mu.Unlock()
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Done is closed when the window has closed.
func (a *AppState) Done() <-chan struct{} { return a.closed }

// Run opens the window and blocks until it is closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// savePath returns where the save shortcut writes.
func (a *AppState) savePath(now time.Time) string {
	if a.Output != "" {
		return a.Output
	}
	name := SaveName(now)
	if a.SaveDir != "" {
		return filepath.Join(a.SaveDir, name)
	}
	return name
}

// status is a transient on-screen message.
type status struct {
	text  string
	until time.Time
}

func (s *status) set(msg string) {
	s.text = msg
	s.until = time.Now().Add(messageDuration)
	log.Print(msg)
}

func (s status) visible(now time.Time) bool { return s.text != "" && now.Before(s.until) }

type paintState struct {
	size    image.Point
	dpr     float64
	scene   whiteboard.Scene
	ui      uiState
	hover   int
	message status
}

func (a *AppState) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, r *whiteboard.Renderer, tb *toolbar, st paintState) {
	if st.size.X <= 0 || st.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	r.Render(b.RGBA(), st.scene)
	if ctx.Err() != nil {
		return
	}
	tb.draw(b.RGBA(), st.ui, st.hover)
	if st.message.visible(time.Now()) {
		drawMessage(b.RGBA(), st.message.text, st.dpr,
			theme.Straight(a.Theme.MessageBackground), theme.Straight(a.Theme.MessageText))
	}
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// Main runs the window's event loop on the provided screen.
func (a *AppState) Main(s screen.Screen) {
	ed := a.Editor
	th := a.Theme
	select {
	case <-a.closed:
		return
	default:
	}
	defer a.notifyClose()

	dpr := ratioFor(size.Event{})
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  int(float64(a.Size.X) * dpr),
		Height: int(float64(a.Size.Y) * dpr),
		Title:  "Inkboard",
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	a.setControlSender(func(ev any) { w.Send(ev) })

	in := newInput(ed)
	var winSize image.Point
	var message status
	var confirmClear time.Time
	hover := -1
	toolbarPress := -1

	setTool := func(t whiteboard.Tool) {
		ed.SetTool(t)
		a.notifySettings()
	}
	tb := newToolbar(th, toolbarActions{
		setTool: setTool,
		setColor: func(c color.RGBA) {
			ed.SetColor(c)
			a.notifySettings()
		},
		setWidth: func(px float64) {
			ed.SetLineWidth(px)
			a.notifySettings()
		},
		undo:    func() { ed.Undo() },
		redo:    func() { ed.Redo() },
		zoomIn:  ed.ZoomIn,
		zoomOut: ed.ZoomOut,
		clear: func() {
			ed.Clear()
			message.set("board cleared")
		},
	})

	save := func() {
		path := a.savePath(time.Now())
		if err := SavePNG(path, BoardImage(ed, th.CanvasStyle())); err != nil {
			log.Printf("save: %v", err)
			message.set(fmt.Sprintf("save failed: %v", err))
			return
		}
		message.set(fmt.Sprintf("saved %s", path))
		a.Notifier.Save(path)
	}
	copyBoard := func() {
		img := BoardImage(ed, th.CanvasStyle())
		lost, err := clipboard.WriteImage(img)
		if err != nil {
			log.Printf("copy: %v", err)
			message.set(fmt.Sprintf("copy failed: %v", err))
			return
		}
		go func() {
			<-lost
			log.Print("clipboard: board no longer owned")
		}()
		message.set("board copied to clipboard")
		a.Notifier.Copy("board", img)
	}

	keys := defaultKeymap()
	actions := map[string]func() bool{
		"pen":       func() bool { setTool(whiteboard.ToolPen); return true },
		"rect":      func() bool { setTool(whiteboard.ToolRect); return true },
		"circle":    func() bool { setTool(whiteboard.ToolCircle); return true },
		"eraser":    func() bool { setTool(whiteboard.ToolEraser); return true },
		"hand":      func() bool { setTool(whiteboard.ToolHand); return true },
		"select":    func() bool { setTool(whiteboard.ToolSelect); return true },
		"undo":      ed.Undo,
		"redo":      ed.Redo,
		"zoomin":    func() bool { ed.ZoomIn(); return true },
		"zoomout":   func() bool { ed.ZoomOut(); return true },
		"resetview": func() bool { ed.ResetView(); return true },
		"save":      func() bool { save(); return true },
		"copy":      func() bool { copyBoard(); return true },
		"cancel":    in.cancel,
		"clear": func() bool {
			now := time.Now()
			if now.Before(confirmClear) {
				confirmClear = time.Time{}
				ed.Clear()
				message.set("board cleared")
				return true
			}
			confirmClear = now.Add(confirmDuration)
			message.set("press Delete again to clear the board")
			return true
		},
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	paintDone := make(chan struct{})
	defer func() {
		close(paintCh)
		<-paintDone
	}()
	go func() {
		defer close(paintDone)
		renderer := whiteboard.NewRenderer(th.CanvasStyle())
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			a.drawFrame(ctx, s, w, renderer, tb, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	repaint := func() { w.Send(paint.Event{}) }

	for {
		switch e := w.NextEvent().(type) {
		case controlEvent:
			e.fn(ed)
			close(e.done)
			repaint()

		case closeEvent:
			return

		case lifecycle.Event:
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && in.leave() {
				repaint()
			}
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}

		case size.Event:
			winSize = image.Pt(e.WidthPx, e.HeightPx)
			in.resize(e)
			tb.layout(e.WidthPx)
			repaint()

		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				size:    winSize,
				dpr:     in.dpr,
				scene:   snapshot(ed.Scene()),
				ui:      editorState(ed),
				hover:   hover,
				message: message,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}

		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			captured := ed.Captured(mousePointer) && in.pressed
			if !captured && !e.Button.IsWheel() && (tb.contains(p) || toolbarPress >= 0) {
				idx := tb.itemAt(p)
				switch e.Direction {
				case mouse.DirPress:
					if e.Button == mouse.ButtonLeft {
						toolbarPress = idx
					}
				case mouse.DirRelease:
					if e.Button == mouse.ButtonLeft && idx >= 0 && idx == toolbarPress {
						tb.activate(idx, editorState(ed))
					}
					toolbarPress = -1
				}
				hover = idx
				repaint()
				continue
			}
			if hover != -1 {
				hover = -1
				repaint()
			}
			if in.mouse(e) {
				repaint()
			}

		case touch.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if e.Type == touch.TypeBegin && tb.contains(p) {
				if idx := tb.itemAt(p); idx >= 0 {
					tb.activate(idx, editorState(ed))
					repaint()
				}
				continue
			}
			if in.touch(e) {
				repaint()
			}

		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			name, ok := keys.lookup(e)
			if !ok {
				continue
			}
			if name == "quit" {
				return
			}
			if name != "clear" {
				confirmClear = time.Time{}
			}
			actions[name]()
			repaint()

		case error:
			log.Print(e)
		}
	}
}

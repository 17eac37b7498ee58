package whiteboard

// actionAt returns the top-most visible action whose bounding box, widened by
// half its line width and the screen tolerance, contains the world point p.
func (e *Editor) actionAt(p Point) *Action {
	tol := e.tolerance / e.view.scale()
	active := e.history.Active()
	for i := len(active) - 1; i >= 0; i-- {
		a := active[i]
		b, ok := a.Bounds()
		if !ok {
			continue
		}
		if b.Grow(a.LineWidth/2 + tol).Contains(p) {
			return a
		}
	}
	return nil
}

// handleAt returns the grip of box under the world point p. Grips keep a
// constant size on screen, so their world size shrinks as the view zooms in.
func (e *Editor) handleAt(box Box, p Point) Handle {
	size := e.handleSize / e.view.scale()
	for _, h := range Handles {
		if h.Rect(box, size).Contains(p) {
			return h
		}
	}
	return HandleNone
}

// ActionAt hit-tests the screen point p against the visible actions.
func (e *Editor) ActionAt(p Point) *Action {
	return e.actionAt(e.view.ScreenToWorld(p))
}

// HandleAt returns the selection grip under the screen point p.
func (e *Editor) HandleAt(p Point) Handle {
	box, ok := e.SelectionBounds()
	if !ok {
		return HandleNone
	}
	return e.handleAt(box, e.view.ScreenToWorld(p))
}

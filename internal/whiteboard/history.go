package whiteboard

import (
	"image/color"
	"time"
)

// DefaultHistoryLimit caps the number of actions kept for undo.
const DefaultHistoryLimit = 100

// History is the linear undo log. The visible actions are always the prefix
// actions[0..index]; index is -1 when nothing is visible.
type History struct {
	actions []*Action
	index   int
	limit   int

	// drawing is the action being extended by the current gesture.
	drawing *Action
	lastID  int64
	now     func() time.Time
}

// NewHistory returns an empty history holding at most limit actions. A limit
// of zero or less keeps everything.
func NewHistory(limit int) *History {
	return &History{index: -1, limit: limit, now: time.Now}
}

func (h *History) Len() int { return len(h.actions) }
func (h *History) Index() int { return h.index }

func (h *History) CanUndo() bool { return h.index >= 0 }
func (h *History) CanRedo() bool { return h.index < len(h.actions)-1 }

// Active returns the visible actions. The slice aliases the history and must
// not be retained across mutations.
func (h *History) Active() []*Action {
	return h.actions[:h.index+1]
}

// All returns every stored action, including undone ones.
func (h *History) All() []*Action { return h.actions }

// Find returns the visible action with the given id.
func (h *History) Find(id int64) *Action {
	for _, a := range h.Active() {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// nextID hands out creation timestamps, bumped when two actions share a
// millisecond.
func (h *History) nextID() int64 {
	id := h.now().UnixMilli()
	if id <= h.lastID {
		id = h.lastID + 1
	}
	h.lastID = id
	return id
}

// Begin discards any undone actions and appends a new action starting at p.
// It returns nil when tool does not draw.
func (h *History) Begin(tool Tool, col color.RGBA, width float64, p Point) *Action {
	if !tool.Draws() {
		return nil
	}
	a := &Action{
		ID:        h.nextID(),
		Tool:      tool,
		Color:     col,
		LineWidth: width,
		Points:    []Point{p},
	}
	h.actions = append(h.actions[:h.index+1], a)
	if h.limit > 0 && len(h.actions) > h.limit {
		drop := len(h.actions) - h.limit
		h.actions = append(h.actions[:0], h.actions[drop:]...)
	}
	h.index = len(h.actions) - 1
	h.drawing = a
	return a
}

// Extend adds p to the action being drawn. Freehand tools accumulate points;
// shape tools keep only the start point and p.
func (h *History) Extend(p Point) bool {
	a := h.drawing
	if a == nil {
		return false
	}
	if a.Tool.Freehand() {
		a.Points = append(a.Points, p)
	} else {
		a.Points = append(a.Points[:1], p)
	}
	return true
}

// Commit ends the current action. The action is already part of the history.
func (h *History) Commit() {
	h.drawing = nil
}

// Discard removes the action being drawn from the history.
func (h *History) Discard() bool {
	a := h.drawing
	h.drawing = nil
	if a == nil || h.index < 0 || h.actions[h.index] != a {
		return false
	}
	h.actions = h.actions[:h.index]
	h.index--
	return true
}

// Drawing returns the action being extended, if any.
func (h *History) Drawing() *Action { return h.drawing }

func (h *History) Undo() bool {
	if h.index < 0 {
		return false
	}
	h.drawing = nil
	h.index--
	return true
}

func (h *History) Redo() bool {
	if h.index >= len(h.actions)-1 {
		return false
	}
	h.drawing = nil
	h.index++
	return true
}

// Clear drops every action.
func (h *History) Clear() {
	h.actions = nil
	h.index = -1
	h.drawing = nil
}

package whiteboard

import (
	"fmt"
	"strings"
)

// Tool is the active toolbar tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolRect
	ToolCircle
	ToolHand
	ToolSelect
)

// Tools lists every tool in toolbar order.
var Tools = [...]Tool{ToolPen, ToolRect, ToolCircle, ToolEraser, ToolHand, ToolSelect}

var toolNames = [...]string{
	ToolPen:    "pen",
	ToolEraser: "eraser",
	ToolRect:   "rect",
	ToolCircle: "circle",
	ToolHand:   "hand",
	ToolSelect: "select",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Draws reports whether the tool produces an Action.
func (t Tool) Draws() bool {
	switch t {
	case ToolPen, ToolEraser, ToolRect, ToolCircle:
		return true
	}
	return false
}

// Freehand reports whether the tool records every sampled point rather than
// the two corners of a drag box.
func (t Tool) Freehand() bool { return t == ToolPen || t == ToolEraser }

// ParseTool converts a tool name into a Tool. "ellipse" and "square" are
// accepted as aliases for circle and rect.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "ellipse":
		return ToolCircle, nil
	case "square", "rectangle":
		return ToolRect, nil
	case "move", "pan":
		return ToolHand, nil
	}
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return ToolPen, fmt.Errorf("unknown tool %q", s)
}

// Mode is the interaction currently in progress.
type Mode int

const (
	ModeNone Mode = iota
	ModeDrawing
	ModePanning
	ModeSelecting
	ModeMoving
	ModeResizing
	ModeGesturing
)

var modeNames = [...]string{
	ModeNone:      "none",
	ModeDrawing:   "drawing",
	ModePanning:   "panning",
	ModeSelecting: "selecting",
	ModeMoving:    "moving",
	ModeResizing:  "resizing",
	ModeGesturing: "gesturing",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

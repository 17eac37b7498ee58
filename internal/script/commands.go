package script

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

type command struct {
	usage string
	help  string
	run   func(rn *Runner, args []string) error
}

// Usage describes one command for help output.
type Usage struct {
	Name  string
	Usage string
	Help  string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"tool":   {"tool pen|eraser|rect|circle|hand|select", "switch tools", cmdTool},
		"color":  {"color <name|#hex>", "set the stroke color", cmdColor},
		"width":  {"width <n>", "set the line width (1-50)", cmdWidth},
		"down":   {"down <x> <y> [id=<n>] [shift] [type=mouse|touch|pen]", "press a pointer", cmdDown},
		"move":   {"move <x> <y> [id=<n>] [shift]", "move a pointer", cmdMove},
		"up":     {"up [<x> <y>] [id=<n>] [shift]", "release a pointer", pointerEnd(endUp)},
		"cancel": {"cancel [id=<n>]", "cancel a pointer", pointerEnd(endCancel)},
		"leave":  {"leave [id=<n>]", "move a pointer off the surface", pointerEnd(endLeave)},
		"lost":   {"lost [id=<n>]", "drop pointer capture", pointerEnd(endLost)},
		"undo":   {"undo", "undo the last action", simple((*whiteboard.Editor).Undo)},
		"redo":   {"redo", "redo the next action", simple((*whiteboard.Editor).Redo)},
		"clear":  {"clear", "erase the board and reset the view", simple(func(ed *whiteboard.Editor) bool { ed.Clear(); return true })},
		"select": {"select all|none", "select every visible action or none", cmdSelect},
		"zoom":   {"zoom in|out | zoom <scale> [<ax> <ay>]", "zoom the view", cmdZoom},
		"pan":    {"pan <dx> <dy>", "pan the view in screen pixels", cmdPan},
		"reset":  {"reset", "reset zoom and pan", simple(func(ed *whiteboard.Editor) bool { ed.ResetView(); return true })},
		"resize": {"resize <w> <h> [<dpr>]", "resize the surface", cmdResize},
		"render": {"render <file.png>", "write the board as PNG", cmdRender},
		"expect": {"expect history|index|active|selected|mode|tool|width|scale|color <value>", "fail unless the state matches", cmdExpect},
		"status": {"status", "print the editor state", cmdStatus},
	}
}

// Commands lists the command set sorted by name.
func Commands() []Usage {
	out := make([]Usage, 0, len(commands))
	for name, c := range commands {
		out = append(out, Usage{Name: name, Usage: c.usage, Help: c.help})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// simple adapts an argument-less editor operation.
func simple(op func(*whiteboard.Editor) bool) func(rn *Runner, args []string) error {
	return func(rn *Runner, args []string) error {
		if err := noArgs(args); err != nil {
			return err
		}
		op(rn.ed)
		return nil
	}
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments %q", args)
	}
	return nil
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected %s", what)
	}
	return args[0], nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = f
	}
	return out, nil
}

// ParseColor accepts a palette name, an SVG color name or a hex value.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := whiteboard.LookupColor(s); ok {
		return c, nil
	}
	return theme.ParseColor(s)
}

func cmdTool(rn *Runner, args []string) error {
	name, err := oneArg(args, "a tool name")
	if err != nil {
		return err
	}
	t, err := whiteboard.ParseTool(name)
	if err != nil {
		return err
	}
	rn.ed.SetTool(t)
	return nil
}

func cmdColor(rn *Runner, args []string) error {
	spec, err := oneArg(args, "a color")
	if err != nil {
		return err
	}
	c, err := ParseColor(spec)
	if err != nil {
		return err
	}
	rn.ed.SetColor(c)
	return nil
}

func cmdWidth(rn *Runner, args []string) error {
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	if len(vals) != 1 {
		return errors.New("expected a width")
	}
	rn.ed.SetLineWidth(vals[0])
	return nil
}

func parsePointerType(s string) (whiteboard.PointerType, error) {
	switch strings.ToLower(s) {
	case "mouse":
		return whiteboard.PointerMouse, nil
	case "touch":
		return whiteboard.PointerTouch, nil
	case "pen", "stylus":
		return whiteboard.PointerPen, nil
	}
	return whiteboard.PointerMouse, fmt.Errorf("unknown pointer type %q", s)
}

// parsePointer reads "[x y] [id=n] [shift] [type=t]". hasPos reports whether
// coordinates were given.
func parsePointer(args []string) (p whiteboard.Pointer, hasPos bool, typed bool, err error) {
	var coords []string
	for _, a := range args {
		key, val, isOpt := strings.Cut(a, "=")
		switch {
		case !isOpt && strings.EqualFold(a, "shift"):
			p.Shift = true
		case !isOpt:
			coords = append(coords, a)
		case key == "id":
			if p.ID, err = strconv.Atoi(val); err != nil {
				return p, false, false, fmt.Errorf("invalid pointer id %q", val)
			}
		case key == "type":
			if p.Type, err = parsePointerType(val); err != nil {
				return p, false, false, err
			}
			typed = true
		default:
			return p, false, false, fmt.Errorf("unknown option %q", a)
		}
	}
	switch len(coords) {
	case 0:
		return p, false, typed, nil
	case 2:
		xy, err := parseFloats(coords)
		if err != nil {
			return p, false, false, err
		}
		p.X, p.Y = xy[0], xy[1]
		return p, true, typed, nil
	}
	return p, false, false, fmt.Errorf("expected <x> <y>, got %q", coords)
}

func cmdDown(rn *Runner, args []string) error {
	p, hasPos, _, err := parsePointer(args)
	if err != nil {
		return err
	}
	if !hasPos {
		return errors.New("expected <x> <y>")
	}
	p.Buttons = 1
	rn.pointers[p.ID] = p
	rn.ed.Dispatch(whiteboard.PointerDown{Pointer: p})
	return nil
}

func cmdMove(rn *Runner, args []string) error {
	p, hasPos, typed, err := parsePointer(args)
	if err != nil {
		return err
	}
	if !hasPos {
		return errors.New("expected <x> <y>")
	}
	if prev, down := rn.pointers[p.ID]; down {
		p.Buttons = prev.Buttons
		if !typed {
			p.Type = prev.Type
		}
		rn.pointers[p.ID] = p
	}
	rn.ed.Dispatch(whiteboard.PointerMove{Pointer: p})
	return nil
}

type endKind int

const (
	endUp endKind = iota
	endCancel
	endLeave
	endLost
)

func pointerEnd(kind endKind) func(rn *Runner, args []string) error {
	return func(rn *Runner, args []string) error {
		p, hasPos, typed, err := parsePointer(args)
		if err != nil {
			return err
		}
		prev, down := rn.pointers[p.ID]
		if !hasPos {
			if !down && kind == endUp {
				return fmt.Errorf("pointer %d is not down; give <x> <y>", p.ID)
			}
			p.X, p.Y = prev.X, prev.Y
		}
		if !typed {
			p.Type = prev.Type
		}
		delete(rn.pointers, p.ID)
		if kind == endUp && hasPos && down && p.Pos() != prev.Pos() {
			// A release away from the last sample moves there first.
			mv := p
			mv.Buttons = prev.Buttons
			rn.ed.Dispatch(whiteboard.PointerMove{Pointer: mv})
		}

		var ev whiteboard.Event
		switch kind {
		case endUp:
			ev = whiteboard.PointerUp{Pointer: p}
		case endCancel:
			ev = whiteboard.PointerCancel{Pointer: p}
		case endLeave:
			ev = whiteboard.PointerLeave{Pointer: p}
		default:
			ev = whiteboard.LostCapture{ID: p.ID}
		}
		rn.ed.Dispatch(ev)
		return nil
	}
}

func cmdSelect(rn *Runner, args []string) error {
	which, err := oneArg(args, "all or none")
	if err != nil {
		return err
	}
	switch strings.ToLower(which) {
	case "all":
		active := rn.ed.History().Active()
		ids := make([]int64, len(active))
		for i, a := range active {
			ids[i] = a.ID
		}
		rn.ed.Select(ids...)
	case "none":
		rn.ed.Select()
	default:
		return fmt.Errorf("expected all or none, got %q", which)
	}
	return nil
}

func cmdZoom(rn *Runner, args []string) error {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "in":
			rn.ed.ZoomIn()
			return nil
		case "out":
			rn.ed.ZoomOut()
			return nil
		}
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	anchor := rn.ed.Surface().Center()
	switch len(vals) {
	case 1:
	case 3:
		anchor = whiteboard.Pt(vals[1], vals[2])
	default:
		return errors.New("expected in, out or <scale> [<ax> <ay>]")
	}
	rn.ed.SetScale(anchor, vals[0])
	return nil
}

func cmdPan(rn *Runner, args []string) error {
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	if len(vals) != 2 {
		return errors.New("expected <dx> <dy>")
	}
	rn.ed.Pan(whiteboard.Pt(vals[0], vals[1]))
	return nil
}

func cmdResize(rn *Runner, args []string) error {
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	if len(vals) != 2 && len(vals) != 3 {
		return errors.New("expected <w> <h> [<dpr>]")
	}
	ev := whiteboard.Resize{Width: int(vals[0]), Height: int(vals[1]), DPR: 1}
	if len(vals) == 3 {
		ev.DPR = vals[2]
	}
	if ev.Width <= 0 || ev.Height <= 0 || ev.DPR <= 0 {
		return fmt.Errorf("invalid surface %dx%d@%g", ev.Width, ev.Height, ev.DPR)
	}
	rn.ed.Dispatch(ev)
	return nil
}

func cmdRender(rn *Runner, args []string) error {
	path, err := oneArg(args, "an output file")
	if err != nil {
		return err
	}
	return rn.writePNG(path)
}

func cmdStatus(rn *Runner, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	fmt.Fprintln(rn.opts.Out, Status(rn.ed))
	return nil
}

// Status summarizes the editor on one line.
func Status(ed *whiteboard.Editor) string {
	h := ed.History()
	v := ed.Viewport()
	return fmt.Sprintf("tool=%s color=%s width=%g mode=%s history=%d/%d selected=%d scale=%g offset=%s",
		ed.Tool(), theme.Hex(ed.Color()), ed.LineWidth(), ed.Mode(), h.Index()+1, h.Len(),
		len(ed.Selected()), v.Scale, v.Offset)
}

func cmdExpect(rn *Runner, args []string) error {
	if len(args) != 2 {
		return errors.New("expected <what> <value>")
	}
	what, want := strings.ToLower(args[0]), args[1]
	ed := rn.ed
	switch what {
	case "history":
		return expectInt(what, ed.History().Len(), want)
	case "index":
		return expectInt(what, ed.History().Index(), want)
	case "active":
		return expectInt(what, len(ed.History().Active()), want)
	case "selected":
		return expectInt(what, len(ed.Selected()), want)
	case "mode":
		m, err := whiteboard.ParseMode(want)
		if err != nil {
			return err
		}
		if ed.Mode() != m {
			return fmt.Errorf("mode is %s, want %s", ed.Mode(), m)
		}
	case "tool":
		t, err := whiteboard.ParseTool(want)
		if err != nil {
			return err
		}
		if ed.Tool() != t {
			return fmt.Errorf("tool is %s, want %s", ed.Tool(), t)
		}
	case "width":
		return expectFloat(what, ed.LineWidth(), want)
	case "scale":
		return expectFloat(what, ed.Viewport().Scale, want)
	case "color":
		c, err := ParseColor(want)
		if err != nil {
			return err
		}
		if ed.Color() != c {
			return fmt.Errorf("color is %s, want %s", theme.Hex(ed.Color()), theme.Hex(c))
		}
	default:
		return fmt.Errorf("cannot expect %q", what)
	}
	return nil
}

func expectInt(what string, got int, want string) error {
	n, err := strconv.Atoi(want)
	if err != nil {
		return fmt.Errorf("invalid %s %q", what, want)
	}
	if got != n {
		return fmt.Errorf("%s is %d, want %d", what, got, n)
	}
	return nil
}

func expectFloat(what string, got float64, want string) error {
	vals, err := parseFloats([]string{want})
	if err != nil {
		return err
	}
	if math.Abs(got-vals[0]) > 1e-6 {
		return fmt.Errorf("%s is %g, want %g", what, got, vals[0])
	}
	return nil
}

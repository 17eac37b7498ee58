package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/inkboard/internal/appstate"
	"github.com/example/inkboard/internal/script"
	"github.com/example/inkboard/internal/whiteboard"
)

// canvasFlags are the editor settings shared by board, replay and interactive.
type canvasFlags struct {
	tool  string
	color string
	width float64
	size  string
}

func (c *canvasFlags) register(s *subcommand) {
	cv := s.config.Canvas
	s.fs.StringVar(&c.tool, "tool", cv.Tool.String(), "initial tool (pen, eraser, rect, circle, hand, select)")
	s.fs.StringVar(&c.color, "color", fmt.Sprintf("#%02X%02X%02X", cv.Color.R, cv.Color.G, cv.Color.B), "initial color name or #hex")
	s.fs.Float64Var(&c.width, "width", cv.LineWidth, "initial line width")
	s.fs.StringVar(&c.size, "size", fmt.Sprintf("%dx%d", cv.Width, cv.Height), "surface size WxH in logical pixels")
}

// editor builds an editor from the configuration overridden by the flags.
func (c *canvasFlags) editor(s *subcommand) (*whiteboard.Editor, image.Point, error) {
	tool, err := whiteboard.ParseTool(c.tool)
	if err != nil {
		return nil, image.Point{}, err
	}
	col, err := script.ParseColor(c.color)
	if err != nil {
		return nil, image.Point{}, err
	}
	size, err := parseSize(c.size)
	if err != nil {
		return nil, image.Point{}, err
	}
	opts := append(s.config.EditorOptions(),
		whiteboard.WithTool(tool),
		whiteboard.WithColor(col),
		whiteboard.WithLineWidth(c.width),
	)
	return whiteboard.New(opts...), size, nil
}

// parseSize parses "WxH".
func parseSize(s string) (image.Point, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q: must be positive", s)
	}
	return image.Pt(w, h), nil
}

type boardCmd struct {
	subcommand
	canvas canvasFlags
	output string
}

func parseBoardCmd(args []string, r *root) (*boardCmd, error) {
	c := &boardCmd{subcommand: newSubcommand(r, "board")}
	c.canvas.register(&c.subcommand)
	c.fs.StringVar(&c.output, "output", "", "file written by ctrl+s (default: a timestamped file in save_dir)")
	if err := c.parse(args, c); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *boardCmd) Run() error {
	ed, size, err := c.canvas.editor(&c.subcommand)
	if err != nil {
		return err
	}
	st := appstate.New(
		appstate.WithEditor(ed),
		appstate.WithTheme(c.activeTheme),
		appstate.WithOutput(c.output),
		appstate.WithSaveDir(c.config.SaveDir),
		appstate.WithSize(size.X, size.Y),
		appstate.WithNotifier(c.notifier),
	)
	st.Run()
	return nil
}

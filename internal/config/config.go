package config

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Canvas holds the initial editor settings.
type Canvas struct {
	Color        color.RGBA
	LineWidth    float64
	Tool         whiteboard.Tool
	HistoryLimit int
	Width        int
	Height       int
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Canvas  Canvas
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Canvas: Canvas{
			Color:        whiteboard.DefaultColor,
			LineWidth:    whiteboard.DefaultLineWidth,
			Tool:         whiteboard.ToolPen,
			HistoryLimit: whiteboard.DefaultHistoryLimit,
			Width:        1024,
			Height:       768,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// EditorOptions converts the canvas section into editor options.
func (c *Config) EditorOptions() []whiteboard.Option {
	return []whiteboard.Option{
		whiteboard.WithTool(c.Canvas.Tool),
		whiteboard.WithColor(c.Canvas.Color),
		whiteboard.WithLineWidth(c.Canvas.LineWidth),
		whiteboard.WithHistoryLimit(c.Canvas.HistoryLimit),
	}
}

func (c *Canvas) validate() error {
	if c.LineWidth < whiteboard.MinLineWidth || c.LineWidth > whiteboard.MaxLineWidth {
		return fmt.Errorf("line_width %g outside %g..%g", c.LineWidth, whiteboard.MinLineWidth, whiteboard.MaxLineWidth)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Canvas.Color))
	fmt.Fprintf(&sb, "line_width = %g\n", c.Canvas.LineWidth)
	fmt.Fprintf(&sb, "tool = %s\n", c.Canvas.Tool)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.Canvas.HistoryLimit)
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	for _, name := range c.themeNames() {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		for _, kv := range themeColors(c.Themes[name]) {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (c *Config) themeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// themeColors lists the Name and color fields of t in declaration order.
func themeColors(t *theme.Theme) [][2]string {
	out := [][2]string{{"Name", t.Name}}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if col, ok := val.Field(i).Interface().(color.RGBA); ok {
			out = append(out, [2]string{typ.Field(i).Name, theme.Hex(col)})
		}
	}
	return out
}

package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/inkboard/internal/whiteboard"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/boards

[canvas]
color = #EF4444
line_width = 12
tool = rect
history_limit = 20
width = 800
height = 600

[notify]
save = false
copy = true

[theme.my_custom_theme]
CanvasBackground = #111111
handlefill: white
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/boards" {
		t.Errorf("Expected save_dir '/tmp/boards', got '%s'", cfg.SaveDir)
	}

	want := Canvas{
		Color:        color.RGBA{0xEF, 0x44, 0x44, 0xFF},
		LineWidth:    12,
		Tool:         whiteboard.ToolRect,
		HistoryLimit: 20,
		Width:        800,
		Height:       600,
	}
	if cfg.Canvas != want {
		t.Errorf("Unexpected canvas %+v, want %+v", cfg.Canvas, want)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.CanvasBackground != (color.RGBA{0x11, 0x11, 0x11, 0xFF}) {
		t.Errorf("Unexpected CanvasBackground color: %+v", th.CanvasBackground)
	}
	if th.HandleFill != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("Unexpected HandleFill color: %+v", th.HandleFill)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# empty\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Canvas != New().Canvas {
		t.Errorf("Expected default canvas, got %+v", cfg.Canvas)
	}
	if cfg.Canvas.Tool != whiteboard.ToolPen || cfg.Canvas.LineWidth != 3 {
		t.Errorf("Unexpected defaults %+v", cfg.Canvas)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad bool":     "[notify]\nsave = maybe\n",
		"bad color":    "[canvas]\ncolor = #12\n",
		"bad tool":     "[canvas]\ntool = lasso\n",
		"wide line":    "[canvas]\nline_width = 51\n",
		"thin line":    "[canvas]\nline_width = 0.5\n",
		"bad size":     "[canvas]\nwidth = 0\n",
		"theme colour": "[theme.x]\nHandleFill = nope\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/boards

[canvas]
color = #22C55E
line_width = 7.5
tool = select

[notify]
save = true
copy = false

[theme.custom]
Name = custom
CanvasBackground = #000000
MarqueeFill = #3B82F633
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestTOMLCircular(t *testing.T) {
	cfg := New()
	cfg.Theme = "light"
	cfg.Canvas.Tool = whiteboard.ToolCircle
	cfg.Canvas.LineWidth = 9
	cfg.Notify.Copy = true

	out, err := cfg.TOML()
	if err != nil {
		t.Fatalf("TOML failed: %v", err)
	}
	if !strings.Contains(out, "line_width = 9") {
		t.Errorf("expected line_width in output:\n%s", out)
	}

	cfg2, err := ParseTOML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseTOML failed: %v\n%s", err, out)
	}
	if cfg.Canvas != cfg2.Canvas || cfg.Notify != cfg2.Notify || cfg.Theme != cfg2.Theme {
		t.Errorf("TOML round trip mismatch: %+v vs %+v", cfg, cfg2)
	}
}

func TestParseTOMLPartial(t *testing.T) {
	input := `
theme = "chalk"

[canvas]
tool = "eraser"

[themes.night]
CanvasBackground = "#000000"
`
	cfg, err := ParseTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTOML failed: %v", err)
	}
	if cfg.Theme != "chalk" {
		t.Errorf("Expected theme chalk, got %q", cfg.Theme)
	}
	if cfg.Canvas.Tool != whiteboard.ToolEraser {
		t.Errorf("Expected eraser, got %v", cfg.Canvas.Tool)
	}
	if cfg.Canvas.LineWidth != whiteboard.DefaultLineWidth || cfg.Canvas.Width != 1024 {
		t.Errorf("Missing keys should keep defaults: %+v", cfg.Canvas)
	}
	night := cfg.Themes["night"]
	if night == nil || night.CanvasBackground != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Errorf("Unexpected night theme %+v", night)
	}

	if _, err := ParseTOML(strings.NewReader("[canvas]\nline_width = 100\n")); err == nil {
		t.Error("expected range error")
	}
}

func TestLoadFilePicksFormat(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "config.rc")
	tm := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(rc, []byte("[canvas]\ntool = hand\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tm, []byte("[canvas]\ntool = \"hand\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{rc, tm} {
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", path, err)
		}
		if cfg.Canvas.Tool != whiteboard.ToolHand {
			t.Errorf("%s: expected hand, got %v", path, cfg.Canvas.Tool)
		}
	}

	l := NewLoader("1.0", rc)
	if got := l.GetConfigPath(); got != rc {
		t.Errorf("override ignored: %q", got)
	}
}

func TestEditorOptions(t *testing.T) {
	cfg := New()
	cfg.Canvas.Tool = whiteboard.ToolSelect
	cfg.Canvas.LineWidth = 20
	ed := whiteboard.New(cfg.EditorOptions()...)
	if ed.Tool() != whiteboard.ToolSelect || ed.LineWidth() != 20 {
		t.Errorf("options not applied: %v %v", ed.Tool(), ed.LineWidth())
	}
}

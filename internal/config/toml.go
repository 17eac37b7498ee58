package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

// tomlFile mirrors Config in TOML form. Themes live under [themes.<name>]
// because TOML does not allow the root "theme" key to also be a table.
type tomlFile struct {
	Theme   string                       `toml:"theme,omitempty"`
	SaveDir string                       `toml:"save_dir,omitempty"`
	Canvas  tomlCanvas                   `toml:"canvas"`
	Notify  tomlNotify                   `toml:"notify"`
	Themes  map[string]map[string]string `toml:"themes,omitempty"`
}

type tomlCanvas struct {
	Color        string  `toml:"color"`
	LineWidth    float64 `toml:"line_width"`
	Tool         string  `toml:"tool"`
	HistoryLimit int     `toml:"history_limit"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
}

type tomlNotify struct {
	Save bool `toml:"save"`
	Copy bool `toml:"copy"`
}

func toTOML(c *Config) tomlFile {
	f := tomlFile{
		Theme:   c.Theme,
		SaveDir: c.SaveDir,
		Canvas: tomlCanvas{
			Color:        theme.Hex(c.Canvas.Color),
			LineWidth:    c.Canvas.LineWidth,
			Tool:         c.Canvas.Tool.String(),
			HistoryLimit: c.Canvas.HistoryLimit,
			Width:        c.Canvas.Width,
			Height:       c.Canvas.Height,
		},
		Notify: tomlNotify{Save: c.Notify.Save, Copy: c.Notify.Copy},
	}
	if len(c.Themes) > 0 {
		f.Themes = make(map[string]map[string]string, len(c.Themes))
		for _, name := range c.themeNames() {
			fields := make(map[string]string)
			for _, kv := range themeColors(c.Themes[name]) {
				fields[kv[0]] = kv[1]
			}
			f.Themes[name] = fields
		}
	}
	return f
}

// ParseTOML reads TOML configuration from an io.Reader. Keys missing from the
// document keep their defaults.
func ParseTOML(r io.Reader) (*Config, error) {
	f := toTOML(New())
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	cfg := New()
	cfg.Theme = f.Theme
	cfg.SaveDir = f.SaveDir
	cfg.Notify = Notify{Save: f.Notify.Save, Copy: f.Notify.Copy}

	col, err := theme.ParseColor(f.Canvas.Color)
	if err != nil {
		return nil, fmt.Errorf("error in section [canvas]: invalid value for key color: %w", err)
	}
	tool, err := whiteboard.ParseTool(f.Canvas.Tool)
	if err != nil {
		return nil, fmt.Errorf("error in section [canvas]: invalid value for key tool: %w", err)
	}
	cfg.Canvas = Canvas{
		Color:        col,
		LineWidth:    f.Canvas.LineWidth,
		Tool:         tool,
		HistoryLimit: f.Canvas.HistoryLimit,
		Width:        f.Canvas.Width,
		Height:       f.Canvas.Height,
	}
	if err := cfg.Canvas.validate(); err != nil {
		return nil, fmt.Errorf("error in section [canvas]: %w", err)
	}

	for name, fields := range f.Themes {
		t := theme.Default()
		t.Name = name
		for key, value := range fields {
			if err := setThemeField(t, key, value); err != nil {
				return nil, fmt.Errorf("error in section [themes.%s]: %w", name, err)
			}
		}
		cfg.Themes[name] = t
	}
	return cfg, nil
}

// TOML returns the configuration encoded as TOML.
func (c *Config) TOML() (string, error) {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	if err := enc.Encode(toTOML(c)); err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return sb.String(), nil
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/inkboard/internal/display"
	"github.com/example/inkboard/internal/theme"
	"github.com/example/inkboard/internal/whiteboard"
)

func clampIndex(idx, n int) int {
	if n == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

type colorsCmd struct {
	subcommand
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	cmd := &colorsCmd{subcommand: newSubcommand(r, "colors")}
	if err := cmd.parse(args, cmd); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := whiteboard.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	defaultIdx := clampIndex(whiteboard.DefaultColorIndex(), len(palette))
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		hex := theme.Hex(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, name, hex, block)
	}
	return nil
}

type widthsCmd struct {
	subcommand
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	cmd := &widthsCmd{subcommand: newSubcommand(r, "widths")}
	if err := cmd.parse(args, cmd); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	widths := whiteboard.WidthOptions()
	if len(widths) == 0 {
		fmt.Fprintln(c.stdout, "no widths available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available stroke widths (* marks the default width):")
	defaultIdx := clampIndex(whiteboard.DefaultWidthIndex(), len(widths))
	for idx, width := range widths {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %3dpx\n", marker, width)
	}
	return nil
}

type themesCmd struct {
	subcommand
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	cmd := &themesCmd{subcommand: newSubcommand(r, "themes")}
	if err := cmd.parse(args, cmd); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *themesCmd) Run() error {
	line := func(name, origin string) {
		marker := " "
		if strings.EqualFold(name, c.activeName) {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-16s %s\n", marker, name, origin)
	}
	fmt.Fprintln(c.stdout, "available themes (* marks the active theme):")
	line("default", "built-in")
	for _, name := range theme.Builtin() {
		line(name, "built-in")
	}
	var configured []string
	for name := range c.config.Themes {
		configured = append(configured, name)
	}
	sort.Strings(configured)
	for _, name := range configured {
		line(name, "config")
	}
	return nil
}

type displaysCmd struct {
	subcommand
}

func parseDisplaysCmd(args []string, r *root) (*displaysCmd, error) {
	cmd := &displaysCmd{subcommand: newSubcommand(r, "displays")}
	if err := cmd.parse(args, cmd); err != nil {
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *displaysCmd) Run() error {
	mons, err := display.Monitors()
	if err != nil {
		fmt.Fprintf(c.stdout, "no monitors available: %v\n", err)
	} else {
		fmt.Fprintln(c.stdout, "monitors (* marks the primary monitor):")
		for _, m := range mons {
			marker := " "
			if m.Primary {
				marker = "*"
			}
			dpi := "unknown dpi"
			if d := m.DPI(); d > 0 {
				dpi = fmt.Sprintf("%.0f dpi", d)
			}
			fmt.Fprintf(c.stdout, "%s %d: %-12s %dx%d+%d+%d %s ratio %g\n", marker, m.Index, m.Name,
				m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, dpi, m.DPR())
		}
	}
	fmt.Fprintf(c.stdout, "board pixel ratio: %g\n", display.DevicePixelRatio())
	return nil
}

package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/example/inkboard/internal/appstate"
	"github.com/example/inkboard/internal/clipboard"
	"github.com/example/inkboard/internal/render"
	"github.com/example/inkboard/internal/script"
	"github.com/example/inkboard/internal/whiteboard"
)

type replayCmd struct {
	subcommand
	canvas      canvasFlags
	script      string
	output      string
	dpr         float64
	toClipboard bool
	shadow      bool
	commands    bool
	stdin       io.Reader
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	c := &replayCmd{subcommand: newSubcommand(r, "replay"), stdin: os.Stdin}
	c.canvas.register(&c.subcommand)
	c.fs.StringVar(&c.script, "script", "", "script file to run, '-' for standard input")
	c.fs.StringVar(&c.output, "output", "", "write the final board to this PNG file")
	c.fs.Float64Var(&c.dpr, "dpr", 1, "device pixel ratio of the rendered output")
	c.fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the final board to the clipboard")
	c.fs.BoolVar(&c.shadow, "shadow", false, "place the exported board on a drop shadow")
	c.fs.BoolVar(&c.commands, "commands", false, "list script commands and exit")
	if err := c.parse(args, c); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 || (c.script == "" && !c.commands) {
		return nil, &UsageError{of: c}
	}
	if c.dpr <= 0 {
		return nil, &UsageError{of: c, msg: fmt.Sprintf("invalid -dpr %g", c.dpr)}
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	if c.commands {
		printCommands(c.stdout)
		return nil
	}
	ed, size, err := c.canvas.editor(&c.subcommand)
	if err != nil {
		return err
	}
	ed.Dispatch(whiteboard.Resize{Width: size.X, Height: size.Y, DPR: c.dpr})

	in := c.stdin
	dir := ""
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
		dir = filepath.Dir(c.script)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	style := c.activeTheme.CanvasStyle()
	opts := script.Options{
		Style:    style,
		Dir:      dir,
		Out:      c.stdout,
		OnRender: func(path string, _ *image.RGBA) { c.notifySave(path) },
	}
	if err := script.Run(ctx, in, ed, opts); err != nil {
		return err
	}

	if c.output == "" && !c.toClipboard {
		return nil
	}
	img := c.export(ed, style)
	if c.output != "" {
		if err := appstate.SavePNG(c.output, img); err != nil {
			return fmt.Errorf("save %s: %w", c.output, err)
		}
		fmt.Fprintf(c.stderr, "saved %s\n", c.output)
		c.notifySave(c.output)
	}
	if c.toClipboard {
		lost, err := clipboard.WriteImage(img)
		if err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(c.stderr, "board copied to clipboard; press Ctrl+C once it has been pasted")
		c.notifyCopy("board", img)
		select {
		case <-lost:
		case <-ctx.Done():
		}
	}
	return nil
}

// export renders the final board, optionally on a drop shadow.
func (c *replayCmd) export(ed *whiteboard.Editor, style whiteboard.Style) *image.RGBA {
	img := appstate.BoardImage(ed, style)
	if !c.shadow {
		return img
	}
	opts := render.DefaultShadowOptions()
	opts.Radius = int(float64(opts.Radius) * c.dpr)
	opts.Offset = opts.Offset.Mul(int(c.dpr + 0.5))
	return render.ApplyShadow(img, opts).Image
}

func printCommands(w io.Writer) {
	for _, u := range script.Commands() {
		fmt.Fprintf(w, "  %-60s %s\n", u.Usage, u.Help)
	}
}

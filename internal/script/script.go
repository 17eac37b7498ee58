// Package script drives a whiteboard.Editor from a line-oriented command
// language. It backs the replay and interactive commands and doubles as a
// harness for end-to-end tests.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkboard/internal/whiteboard"
)

// ErrUnknownCommand is returned for lines whose first word is not a command.
var ErrUnknownCommand = errors.New("unknown command")

// Error reports the script line a command failed on.
type Error struct {
	Line    int
	Command string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures a Runner.
type Options struct {
	// Style is used by the render command.
	Style whiteboard.Style
	// Dir resolves relative render paths; empty means the working directory.
	Dir string
	// Out receives the output of status and render; nil discards it.
	Out io.Writer
	// OnRender is called after a render command writes its file.
	OnRender func(path string, img *image.RGBA)
}

// Runner executes commands against one editor, remembering where each
// pointer was last seen so "up" may omit its coordinates.
type Runner struct {
	ed       *whiteboard.Editor
	opts     Options
	renderer *whiteboard.Renderer
	pointers map[int]whiteboard.Pointer
}

// NewRunner returns a Runner bound to ed.
func NewRunner(ed *whiteboard.Editor, opts Options) *Runner {
	if opts.Style == (whiteboard.Style{}) {
		opts.Style = whiteboard.DefaultStyle
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Runner{
		ed:       ed,
		opts:     opts,
		renderer: whiteboard.NewRenderer(opts.Style),
		pointers: make(map[int]whiteboard.Pointer),
	}
}

// Run executes every command read from r in order and stops at the first
// failure or when ctx is done.
func Run(ctx context.Context, r io.Reader, ed *whiteboard.Editor, opts Options) error {
	return NewRunner(ed, opts).Run(ctx, r)
}

// Run executes every command read from r.
func (rn *Runner) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if err := rn.Exec(line); err != nil {
			name, _, _ := strings.Cut(line, " ")
			return &Error{Line: lineNo, Command: name, Err: err}
		}
	}
	return scanner.Err()
}

// Exec runs a single command line. Blank lines and comments are ignored.
func (rn *Runner) Exec(line string) error {
	args := strings.Fields(stripComment(line))
	if len(args) == 0 {
		return nil
	}
	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}
	return cmd.run(rn, args[1:])
}

// stripComment removes a comment introduced by a '#' that starts the line or
// stands alone as a word. A '#' glued to hex digits is a color argument.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return ""
	}
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != '#' || !isSpace(trimmed[i-1]) {
			continue
		}
		if i+1 == len(trimmed) || isSpace(trimmed[i+1]) {
			return trimmed[:i]
		}
	}
	return trimmed
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// Render draws the board, without selection chrome, at the surface's
// device size.
func (rn *Runner) Render() (*image.RGBA, error) {
	size := rn.ed.Surface().DeviceSize()
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New("surface has no size; use resize first")
	}
	return rn.renderer.Image(size, rn.ed.Scene().Board()), nil
}

func (rn *Runner) writePNG(path string) error {
	img, err := rn.Render()
	if err != nil {
		return err
	}
	if rn.opts.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(rn.opts.Dir, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(rn.opts.Out, "wrote %s\n", path)
	if rn.opts.OnRender != nil {
		rn.opts.OnRender(path, img)
	}
	return nil
}

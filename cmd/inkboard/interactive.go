package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/example/inkboard/internal/appstate"
	"github.com/example/inkboard/internal/script"
	"github.com/example/inkboard/internal/whiteboard"
)

type interactiveCmd struct {
	subcommand
	canvas canvasFlags
	execs  stringList
	window bool
	stdin  io.Reader
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	c := &interactiveCmd{subcommand: newSubcommand(r, "interactive"), stdin: os.Stdin}
	c.canvas.register(&c.subcommand)
	c.fs.Var(&c.execs, "e", "execute a command and exit (may be specified multiple times)")
	c.fs.BoolVar(&c.window, "window", false, "open the board window and drive it from the prompt")
	if err := c.parse(args, c); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// session executes lines through exec, which runs them against the editor.
type session struct {
	exec   func(line string) error
	stdout io.Writer
	stderr io.Writer
}

// line handles one input line and reports whether the session should end.
func (s *session) line(line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help", "?":
		printCommands(s.stdout)
		return false, nil
	}
	return false, s.exec(line)
}

func (s *session) loop(in io.Reader) error {
	fmt.Fprintln(s.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := s.line(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

func (c *interactiveCmd) Run() error {
	ed, size, err := c.canvas.editor(&c.subcommand)
	if err != nil {
		return err
	}
	ed.Dispatch(whiteboard.Resize{Width: size.X, Height: size.Y, DPR: 1})
	runner := script.NewRunner(ed, script.Options{
		Style: c.activeTheme.CanvasStyle(),
		Out:   c.stdout,
	})
	s := &session{exec: runner.Exec, stdout: c.stdout, stderr: c.stderr}

	if !c.window {
		return c.run(s)
	}

	st := appstate.New(
		appstate.WithEditor(ed),
		appstate.WithTheme(c.activeTheme),
		appstate.WithSaveDir(c.config.SaveDir),
		appstate.WithSize(size.X, size.Y),
		appstate.WithNotifier(c.notifier),
		appstate.WithSettingsListener(func(tool whiteboard.Tool, col color.RGBA, width float64) {
			fmt.Fprintf(c.stdout, "\ntool=%s color=#%02X%02X%02X width=%g\n> ", tool, col.R, col.G, col.B, width)
		}),
	)
	s.exec = func(line string) error {
		var execErr error
		if err := st.Do(func(*whiteboard.Editor) { execErr = runner.Exec(line) }); err != nil {
			return err
		}
		return execErr
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.run(s)
		// -e commands set the board up; the window stays open afterwards
		if len(c.execs) == 0 {
			st.Close()
		}
	}()
	st.Run()
	select {
	case err := <-errCh:
		if errors.Is(err, appstate.ErrClosed) {
			return nil
		}
		return err
	default:
		return nil
	}
}

func (c *interactiveCmd) run(s *session) error {
	if len(c.execs) == 0 {
		return s.loop(c.stdin)
	}
	for i, line := range c.execs {
		done, err := s.line(line)
		if err != nil {
			return fmt.Errorf("-e %d: %w", i+1, err)
		}
		if done {
			break
		}
	}
	return nil
}

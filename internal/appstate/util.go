package appstate

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/example/inkboard/internal/whiteboard"
)

// BoardImage renders the drawing at the surface's device resolution without
// selection handles or the marquee.
func BoardImage(ed *whiteboard.Editor, style whiteboard.Style) *image.RGBA {
	size := ed.Surface().DeviceSize()
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(1, 1)
	}
	return whiteboard.NewRenderer(style).Image(size, ed.Scene().Board())
}

// SavePNG writes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			return fmt.Errorf("encode png: %v (closing file: %w)", err, cerr)
		}
		return fmt.Errorf("encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// SaveName returns the file name used when no output path is configured.
func SaveName(now time.Time) string {
	return "inkboard-" + now.Format("20060102-150405") + ".png"
}

// snapshot deep-copies the actions of sc so the paint goroutine can render
// it while the event loop keeps mutating the editor.
func snapshot(sc whiteboard.Scene) whiteboard.Scene {
	actions := make([]*whiteboard.Action, len(sc.Actions))
	for i, a := range sc.Actions {
		actions[i] = a.Clone()
	}
	sc.Actions = actions
	sc.Selected = append([]int64(nil), sc.Selected...)
	if sc.Marquee != nil {
		m := *sc.Marquee
		sc.Marquee = &m
	}
	return sc
}

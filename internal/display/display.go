// Package display inspects the attached monitors to pick a device pixel
// ratio for the board window.
package display

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"strconv"
	"strings"
)

type platformBackend interface {
	Monitors() ([]Monitor, error)
	// XftDPI returns the Xft.dpi resource, or 0 when unset.
	XftDPI() (float64, error)
}

var backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// baseDPI is the density treated as a device pixel ratio of 1.
const baseDPI = 96.0

// Monitor describes an individual monitor in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
	// WidthMM and HeightMM are the physical size reported by the output; zero
	// when unknown.
	WidthMM, HeightMM int
}

// DPI is the horizontal density of the monitor, or 0 if the physical size
// is unknown.
func (m Monitor) DPI() float64 {
	if m.WidthMM <= 0 || m.Rect.Dx() <= 0 {
		return 0
	}
	return float64(m.Rect.Dx()) / (float64(m.WidthMM) / 25.4)
}

// DPR is the ratio suggested by the monitor's density.
func (m Monitor) DPR() float64 {
	return RatioForDPI(m.DPI())
}

// Monitors lists the connected monitors.
func Monitors() ([]Monitor, error) {
	mons, err := backend.Monitors()
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, errNoMonitors
	}
	return mons, nil
}

// DevicePixelRatio picks the ratio for new windows. INKBOARD_DPR and
// GDK_SCALE override detection; then Xft.dpi; then the primary monitor's
// physical density. Anything that fails yields 1.
func DevicePixelRatio() float64 {
	for _, key := range []string{"INKBOARD_DPR", "GDK_SCALE"} {
		if v, ok := parseRatio(os.Getenv(key)); ok {
			return v
		}
	}
	if dpi, err := backend.XftDPI(); err == nil && dpi > 0 {
		return RatioForDPI(dpi)
	}
	mons, err := Monitors()
	if err != nil {
		return 1
	}
	mon, err := FindMonitor(mons, "primary")
	if err != nil {
		return 1
	}
	return mon.DPR()
}

// RatioForDPI converts a density into a ratio rounded to the nearest quarter.
// Unknown or implausible densities map to 1.
func RatioForDPI(dpi float64) float64 {
	if dpi <= 0 || math.IsNaN(dpi) || math.IsInf(dpi, 0) {
		return 1
	}
	r := math.Round(dpi/baseDPI*4) / 4
	if r < 1 {
		return 1
	}
	if r > 4 {
		return 4
	}
	return r
}

func parseRatio(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseXftDPI extracts Xft.dpi from the RESOURCE_MANAGER property text.
func ParseXftDPI(resources string) (float64, bool) {
	for _, line := range strings.Split(resources, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return dpi, true
	}
	return 0, false
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return monitors[0], nil
	}
	lower := strings.TrimPrefix(strings.ToLower(sel), "#")
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

import "fmt"

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Monitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

func (unsupportedBackend) XftDPI() (float64, error) {
	return 0, fmt.Errorf("Xft resources are not available on this platform")
}

//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"fmt"
	"image"
)

// WriteImage is unavailable on this platform.
func WriteImage(image.Image) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard image operations are not supported on this platform")
}

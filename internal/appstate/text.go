package appstate

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// messageSize is the point size of the status overlay at a ratio of 1.
const messageSize = 18

var (
	goregularOnce sync.Once
	goregularFont *opentype.Font
	goregularErr  error

	messageFaces sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = messageSize
	}
	size = math.Round(size*4) / 4
	if face, ok := messageFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	goregularOnce.Do(func() {
		goregularFont, goregularErr = opentype.Parse(goregular.TTF)
	})
	if goregularErr != nil {
		return nil, fmt.Errorf("parse font: %w", goregularErr)
	}
	face, err := opentype.NewFace(goregularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	messageFaces.Store(size, face)
	return face, nil
}

// MeasureText returns the dimensions of text rendered at the provided size.
// baseline is the offset from the top of the box to the text baseline.
func MeasureText(text string, size float64) (width, height, baseline int, err error) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), (m.Ascent + m.Descent).Ceil(), m.Ascent.Ceil(), nil
}

// drawMessage paints a status message on a filled box centered near the
// bottom edge of dst.
func drawMessage(dst *image.RGBA, msg string, ratio float64, bg, fg color.Color) {
	size := messageSize * ratio
	w, h, baseline, err := MeasureText(msg, size)
	if err != nil {
		return
	}
	face, _ := faceForSize(size)
	pad := int(math.Round(10 * ratio))
	b := dst.Bounds()
	x := b.Min.X + (b.Dx()-w)/2
	y := b.Max.Y - h - 3*pad
	box := image.Rect(x-pad, y-pad/2, x+w+pad, y+h+pad/2)
	fillRect(dst, box, bg)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face, Dot: fixed.P(x, y+baseline)}
	d.DrawString(msg)
}

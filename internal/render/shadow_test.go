package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := ApplyShadow(img, opts)
	require.NotNil(t, out.Image)
	assert.Equal(t, image.Rect(0, 0, 22, 20), out.Image.Bounds())
	assert.Equal(t, image.Point{}, out.Offset)

	shadowPt := subject.Add(opts.Offset)
	assert.NotZero(t, out.Image.RGBAAt(shadowPt.X, shadowPt.Y).A, "expected shadow alpha at %v", shadowPt)
}

func TestApplyShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{G: 255, A: 255}), image.Point{}, draw.Src)
	out := ApplyShadow(img, ShadowOptions{Radius: 1, Offset: image.Pt(-3, 0), Opacity: 1})
	assert.Equal(t, image.Pt(4, 1), out.Offset)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.Image.RGBAAt(out.Offset.X, out.Offset.Y))
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	out := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	require.NotNil(t, out.Image)
	assert.Equal(t, img.Bounds(), out.Image.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, fill, out.Image.RGBAAt(x, y))
		}
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out := ApplyShadow(img, opts)
	require.NotNil(t, out.Image)
	assert.Greater(t, out.Image.Bounds().Dx(), img.Bounds().Dx())

	base := img.Bounds().Min.Add(opts.Offset)
	baseAlpha := out.Image.RGBAAt(base.X, base.Y).A
	require.NotZero(t, baseAlpha, "expected alpha at base shadow location")
	assert.NotZero(t, out.Image.RGBAAt(base.X+1, base.Y).A, "blur should reach neighbor")
}

func TestDrawShadowUnderPanel(t *testing.T) {
	bg := color.RGBA{255, 255, 255, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 60, 40))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	panel := image.Rect(20, 10, 40, 20)
	DrawShadow(dst, panel, PanelShadowOptions(color.RGBA{A: 0x80}))

	below := dst.RGBAAt(30, 22)
	assert.Less(t, below.R, bg.R, "shadow should darken below the panel")
	assert.Equal(t, bg, dst.RGBAAt(2, 2), "far corner untouched")
	assert.Equal(t, bg, dst.RGBAAt(30, 2), "offset is downward only")
}

func TestDrawShadowTint(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawShadow(dst, image.Rect(2, 2, 8, 8), ShadowOptions{Opacity: 1, Color: color.RGBA{R: 255, A: 255}})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, dst.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 0))
}

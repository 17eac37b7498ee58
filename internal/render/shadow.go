package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures a drop shadow.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	// Color is the shadow tint; its alpha is multiplied by Opacity. The zero
	// value means black.
	Color color.RGBA
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports how far the original content was translated when
	// rebasing onto the expanded canvas.
	Offset image.Point
}

// DefaultShadowOptions is the shadow placed under an exported board card.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(0, 12),
		Opacity: 0.55,
	}
}

// PanelShadowOptions is the tighter shadow under floating toolbars.
func PanelShadowOptions(tint color.RGBA) ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(0, 3),
		Opacity: 1,
		Color:   tint,
	}
}

func (o ShadowOptions) normalized() (radius int, src *image.Uniform, ok bool) {
	if o.Opacity <= 0 {
		return 0, nil, false
	}
	opacity := o.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius = o.Radius
	if radius < 0 {
		radius = 0
	}
	tint := o.Color
	if tint == (color.RGBA{}) {
		tint = color.RGBA{A: 255}
	}
	a := uint8(float64(tint.A)*opacity + 0.5)
	if a == 0 {
		return 0, nil, false
	}
	return radius, image.NewUniform(color.NRGBA{tint.R, tint.G, tint.B, a}), true
}

// ApplyShadow composites img with a blurred drop shadow using opts. The result
// always has a zero origin; Offset says where the original top-left corner
// ended up inside the expanded canvas.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() {
		return ShadowResult{Image: img}
	}
	radius, tint, ok := opts.normalized()
	if !ok {
		return ShadowResult{Image: img}
	}

	srcBounds := img.Bounds()
	paddedBounds := srcBounds.Inset(-radius)
	shadowBounds := paddedBounds.Add(opts.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)
	dstRect := compositeBounds.Sub(compositeBounds.Min)

	shift := srcBounds.Min.Sub(compositeBounds.Min)
	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := image.NewGray(paddedBounds.Sub(paddedBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-paddedBounds.Min.X, y-paddedBounds.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := blurGray(mask, radius)

	dst := image.NewRGBA(dstRect)
	draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), tint, image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	draw.Draw(dst, srcBounds.Sub(compositeBounds.Min), img, srcBounds.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: shift}
}

// DrawShadow paints the shadow a solid panel covering r would cast onto dst.
// The panel itself is not drawn.
func DrawShadow(dst draw.Image, r image.Rectangle, opts ShadowOptions) {
	if r.Empty() {
		return
	}
	radius, tint, ok := opts.normalized()
	if !ok {
		return
	}
	padded := r.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(mask, r.Sub(padded.Min), image.White, image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)
	draw.DrawMask(dst, padded.Add(opts.Offset), tint, image.Point{}, blurred, image.Point{}, draw.Over)
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	// Two box-blur passes using running prefix sums.
	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}

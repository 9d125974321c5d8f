package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the canvas.
type ShadowOptions struct {
	Radius int
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow offset down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 12,
		Offset: image.Pt(6, 6),
	}
}

// shadowMask caches the blurred mask of a rectangle of a given size.
type shadowMask struct {
	size   image.Point
	radius int
	mask   *image.Gray
}

// get returns a blurred mask for a size.X×size.Y rectangle, padded by the
// radius on every side. The mask bounds start at the origin.
func (c *shadowMask) get(size image.Point, radius int) *image.Gray {
	if radius < 0 {
		radius = 0
	}
	if c.mask != nil && c.size == size && c.radius == radius {
		return c.mask
	}
	padded := image.Rect(0, 0, size.X+2*radius, size.Y+2*radius)
	mask := image.NewGray(padded)
	inner := image.Rect(radius, radius, radius+size.X, radius+size.Y)
	draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	c.size, c.radius = size, radius
	c.mask = blurGray(mask, radius)
	return c.mask
}

// DropShadow darkens dst around r as if r floated above it. col carries the
// shadow color and its maximum opacity; a zero alpha draws nothing.
func (c *shadowMask) DropShadow(dst *image.RGBA, r image.Rectangle, col color.RGBA, opts ShadowOptions) {
	if col.A == 0 || r.Empty() {
		return
	}
	mask := c.get(r.Size(), opts.Radius)
	origin := r.Min.Add(opts.Offset).Sub(image.Pt(c.radius, c.radius))
	draw.DrawMask(dst, mask.Bounds().Add(origin), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
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

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}

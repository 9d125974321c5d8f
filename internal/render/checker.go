package render

import (
	"image"
	"image/color"
)

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, dark)
			} else {
				dst.SetRGBA(x, y, light)
			}
		}
	}
}

// checker caches a one-cell-per-pixel checkerboard the size of the canvas.
// Scaling it with the canvas keeps each cell under exactly one canvas pixel.
type checker struct {
	light, dark color.RGBA
	img         *image.RGBA
}

func (c *checker) get(size image.Point, light, dark color.RGBA) *image.RGBA {
	if c.img != nil && c.img.Rect.Size() == size && c.light == light && c.dark == dark {
		return c.img
	}
	c.img = image.NewRGBA(image.Rectangle{Max: size})
	c.light, c.dark = light, dark
	drawCheckerboard(c.img, c.img.Rect, 1, light, dark)
	return c.img
}

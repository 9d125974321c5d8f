package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pixelfish/internal/palette"
	"github.com/example/pixelfish/internal/theme"
)

// Swatch layout in the status bar, right aligned.
const (
	swatchSize = 16
	swatchGap  = 4
)

// Frame is everything needed to draw one window frame.
type Frame struct {
	Canvas   *image.RGBA
	View     View
	Status   string
	Modified bool
	Palette  *palette.Palette
	Left     color.RGBA
	Right    color.RGBA
}

// Renderer draws frames and caches what does not change between them.
type Renderer struct {
	Theme  *theme.Theme
	Shadow ShadowOptions

	checker checker
	shadow  shadowMask
}

// New returns a renderer using th, or the default theme when th is nil.
func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{Theme: th, Shadow: DefaultShadowOptions()}
}

// CanvasArea is the part of a window of the given size available to the
// canvas.
func CanvasArea(size image.Point) image.Rectangle {
	return image.Rect(0, 0, size.X, max(size.Y-StatusHeight, 0))
}

// StatusBar is the rectangle of the status bar.
func StatusBar(size image.Point) image.Rectangle {
	return image.Rect(0, max(size.Y-StatusHeight, 0), size.X, size.Y)
}

// Swatches returns the rectangles of n palette swatches followed by the
// left and right color indicators, all inside the status bar.
func Swatches(size image.Point, n int) []image.Rectangle {
	bar := StatusBar(size)
	y := bar.Min.Y + (bar.Dy()-swatchSize)/2
	total := n + 2
	x := bar.Max.X - swatchGap - total*(swatchSize+swatchGap) - swatchGap
	out := make([]image.Rectangle, 0, total)
	for i := 0; i < total; i++ {
		if i == n {
			x += swatchGap * 2
		}
		out = append(out, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
	}
	return out
}

// SwatchAt returns the palette index under p, or -1.
func SwatchAt(size image.Point, n int, p image.Point) int {
	for i, r := range Swatches(size, n)[:n] {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// Draw composes f into dst.
func (r *Renderer) Draw(dst *image.RGBA, f Frame) {
	th := r.Theme
	size := dst.Rect.Size()
	area := CanvasArea(size)
	draw.Draw(dst, area, image.NewUniform(th.Background), image.Point{}, draw.Src)

	if f.Canvas != nil {
		cr := f.View.CanvasRect(f.Canvas.Rect.Size())
		clip := dst.SubImage(area).(*image.RGBA)
		r.shadow.DropShadow(clip, cr, th.Shadow, r.Shadow)
		board := r.checker.get(f.Canvas.Rect.Size(), th.CheckerLight, th.CheckerDark)
		xdraw.NearestNeighbor.Scale(clip, cr, board, board.Rect, draw.Src, nil)
		xdraw.NearestNeighbor.Scale(clip, cr, f.Canvas, f.Canvas.Rect, draw.Over, nil)
	}

	r.drawStatus(dst, size, f)
}

func (r *Renderer) drawStatus(dst *image.RGBA, size image.Point, f Frame) {
	th := r.Theme
	bar := StatusBar(size)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	text := bar
	text.Min.X += 4
	drawText(dst, text, f.Status, th.StatusText)
	if f.Modified {
		text.Min.X += MeasureText(f.Status) + 12
		drawText(dst, text, "*", th.StatusModified)
	}

	n := 0
	if f.Palette != nil {
		n = f.Palette.Len()
	}
	rects := Swatches(size, n)
	for i := 0; i < n; i++ {
		col := f.Palette.At(i)
		border := th.SwatchBorder
		if col == f.Left || col == f.Right {
			border = th.SwatchSelected
		}
		r.swatch(dst, rects[i], col, border)
	}
	r.swatch(dst, rects[n], f.Left, th.SwatchSelected)
	r.swatch(dst, rects[n+1], f.Right, th.SwatchSelected)
}

// swatch draws col inside a one pixel border, over a checkerboard so
// translucent colors are visible.
func (r *Renderer) swatch(dst *image.RGBA, rect image.Rectangle, col, border color.RGBA) {
	draw.Draw(dst, rect, image.NewUniform(border), image.Point{}, draw.Src)
	inner := rect.Inset(1)
	drawCheckerboard(dst, inner, 4, r.Theme.CheckerLight, r.Theme.CheckerDark)
	draw.Draw(dst, inner, image.NewUniform(col), image.Point{}, draw.Over)
}

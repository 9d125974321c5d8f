// Package render composes editor frames: the zoomed canvas over a
// checkerboard, a drop shadow, the palette strip and the status bar.
package render

import (
	"image"
	"math"
)

// Zoom limits.
const (
	MinZoom = 1.0
	MaxZoom = 64.0
)

// View maps canvas coordinates to window coordinates. Offset is the window
// position of the canvas origin.
type View struct {
	Zoom   float64
	Offset image.Point
}

// CanvasRect returns where a canvas of the given size lands in the window.
func (v View) CanvasRect(size image.Point) image.Rectangle {
	w := int(float64(size.X) * v.Zoom)
	h := int(float64(size.Y) * v.Zoom)
	return image.Rect(v.Offset.X, v.Offset.Y, v.Offset.X+w, v.Offset.Y+h)
}

// ToCanvas converts a window position to continuous canvas coordinates.
func (v View) ToCanvas(x, y float64) (float64, float64) {
	return (x - float64(v.Offset.X)) / v.Zoom, (y - float64(v.Offset.Y)) / v.Zoom
}

// Pan moves the canvas by d window pixels.
func (v *View) Pan(d image.Point) { v.Offset = v.Offset.Add(d) }

// ZoomBy scales the zoom by 15% per wheel step, never shrinking by more than
// half at once, and keeps the canvas point under (ax, ay) in place.
func (v *View) ZoomBy(steps float64, ax, ay float64) {
	factor := math.Max(0.5, 1+steps*0.15)
	z := clampZoom(v.Zoom * factor)
	cx, cy := v.ToCanvas(ax, ay)
	v.Zoom = z
	v.Offset = image.Pt(int(math.Round(ax-cx*z)), int(math.Round(ay-cy*z)))
}

// Center places a canvas of the given size in the middle of area.
func (v *View) Center(size image.Point, area image.Rectangle) {
	r := v.CanvasRect(size)
	v.Offset = image.Pt(
		area.Min.X+(area.Dx()-r.Dx())/2,
		area.Min.Y+(area.Dy()-r.Dy())/2,
	)
}

// Fit picks the largest whole zoom at which size fits in area, capped at
// limit, and centers the canvas.
func (v *View) Fit(size image.Point, area image.Rectangle, limit float64) {
	z := math.Min(float64(area.Dx())/float64(size.X), float64(area.Dy())/float64(size.Y))
	z = math.Floor(z)
	if limit > 0 && z > limit {
		z = limit
	}
	v.Zoom = clampZoom(z)
	v.Center(size, area)
}

func clampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

package canvas

import "image"

// Region accumulates the bounding rectangle of every area touched since it
// was last reset. The accumulated rectangle never leaves the bounds the
// region was created with.
type Region struct {
	bounds image.Rectangle
	rect   image.Rectangle
}

// NewRegion returns an empty region limited to bounds.
func NewRegion(bounds image.Rectangle) Region {
	return Region{bounds: bounds.Canon()}
}

// Add merges r into the region. Rectangles with a negative size are
// normalized before merging. It returns the part of r that lies inside the
// region's bounds, which is empty when r misses them entirely.
func (g *Region) Add(r image.Rectangle) image.Rectangle {
	r = r.Canon().Intersect(g.bounds)
	if r.Empty() {
		return image.Rectangle{}
	}
	if g.rect.Empty() {
		g.rect = r
	} else {
		g.rect = g.rect.Union(r)
	}
	return r
}

// Rect returns the accumulated rectangle.
func (g *Region) Rect() image.Rectangle { return g.rect }

// Empty reports whether nothing has been added since the last reset.
func (g *Region) Empty() bool { return g.rect.Empty() }

// Reset clears the accumulated rectangle.
func (g *Region) Reset() { g.rect = image.Rectangle{} }

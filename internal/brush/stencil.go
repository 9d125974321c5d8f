// Package brush shapes paint strokes with a square or round stencil.
package brush

import (
	"image"
	"image/color"
	"math"
)

// MinCapacity is the smallest number of mask cells a stencil allocates.
// Small size changes never reallocate below it.
const MinCapacity = 12 * 12

// Stencil is a size×size boolean mask. Cells that are set get painted.
//
// The backing storage keeps a capacity of at least max(size², MinCapacity)
// cells and grows or shrinks by powers of two as the size changes.
type Stencil struct {
	size  int
	round bool
	mask  []bool
}

// New returns a stencil of the given edge length. Sizes below one are
// raised to one.
func New(size int, round bool) *Stencil {
	if size < 1 {
		size = 1
	}
	n := size * size
	if n < MinCapacity {
		n = MinCapacity
	}
	s := &Stencil{size: size, round: round, mask: make([]bool, n)}
	s.fill()
	return s
}

// Size returns the edge length of the stencil.
func (s *Stencil) Size() int { return s.size }

// Round reports whether the stencil is a disc rather than a square.
func (s *Stencil) Round() bool { return s.round }

// Capacity returns the number of cells currently allocated.
func (s *Stencil) Capacity() int { return len(s.mask) }

// At reports whether cell (x, y) is painted. Both coordinates must be in
// [0, Size).
func (s *Stencil) At(x, y int) bool { return s.mask[y*s.size+x] }

// Mask returns a copy of the size*size cells in row-major order.
func (s *Stencil) Mask() []bool {
	return append([]bool(nil), s.mask[:s.size*s.size]...)
}

// SetSize changes the edge length, clamped to at least one.
func (s *Stencil) SetSize(size int) {
	if size == s.size {
		return
	}
	if size < 1 {
		size = 1
	}
	capacity := len(s.mask)
	need := size * size
	if need < MinCapacity {
		need = MinCapacity
	}
	if need*4 < capacity {
		capacity /= 2
	}
	for need > capacity {
		capacity *= 2
	}
	if capacity != len(s.mask) {
		s.mask = make([]bool, capacity)
	}
	s.size = size
	s.fill()
}

// Resize grows or shrinks the stencil by delta.
func (s *Stencil) Resize(delta int) { s.SetSize(s.size + delta) }

// SetRound switches between the round and square shape.
func (s *Stencil) SetRound(round bool) {
	if round == s.round {
		return
	}
	s.round = round
	s.fill()
}

// plus is the round stencil of size 3; the disc test would give a full
// square at that size.
var plus = [9]bool{
	false, true, false,
	true, true, true,
	false, true, false,
}

func (s *Stencil) fill() {
	n := s.size
	cells := s.mask[:n*n]
	if !s.round {
		for i := range cells {
			cells[i] = true
		}
		return
	}
	if n == 3 {
		copy(cells, plus[:])
		return
	}
	half := float64(n) / 2
	cx, cy := half-0.5, half-0.5
	i := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := cx-float64(x), cy-float64(y)
			cells[i] = dx*dx+dy*dy < half*half
			i++
		}
	}
}

// Surface is a pixel target a stencil can be stamped onto. Set is called
// only for points inside Bounds; MarkDirty receives the clipped rectangle
// that was painted.
type Surface interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.RGBA)
	MarkDirty(r image.Rectangle) image.Rectangle
}

// Anchor converts a continuous position to the integer point the stencil
// is centered on. Odd sizes truncate toward zero, even sizes round to the
// nearest integer, which keeps the brush centered under the cursor.
func (s *Stencil) Anchor(fx, fy float64) image.Point {
	if s.size%2 == 0 {
		return image.Pt(int(math.Round(fx)), int(math.Round(fy)))
	}
	return image.Pt(int(fx), int(fy))
}

// Rect returns the full, unclipped rectangle covered when the stencil is
// centered on anchor.
func (s *Stencil) Rect(anchor image.Point) image.Rectangle {
	half := s.size / 2
	min := anchor.Sub(image.Pt(half, half))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(s.size, s.size))}
}

// paint writes col through the stencil centered on anchor and returns the
// clipped rectangle without reporting it.
func (s *Stencil) paint(dst Surface, anchor image.Point, col color.RGBA) image.Rectangle {
	full := s.Rect(anchor)
	r := full.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := (y - full.Min.Y) * s.size
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.mask[row+x-full.Min.X] {
				dst.Set(x, y, col)
			}
		}
	}
	return r
}

// Stamp paints col through the stencil at (fx, fy) and reports the clipped
// rectangle to dst. The reported rectangle is returned; it is empty when
// the stencil lies entirely outside dst.
func (s *Stencil) Stamp(dst Surface, fx, fy float64, col color.RGBA) image.Rectangle {
	r := s.paint(dst, s.Anchor(fx, fy), col)
	if r.Empty() {
		return image.Rectangle{}
	}
	return dst.MarkDirty(r)
}

// Line stamps the stencil at every anchor between (x0, y0) and (x1, y1)
// so fast strokes leave no gaps. The union of the painted rectangles is
// reported to dst once and returned.
func (s *Stencil) Line(dst Surface, x0, y0, x1, y1 float64, col color.RGBA) image.Rectangle {
	a := s.Anchor(x0, y0)
	b := s.Anchor(x1, y1)
	var dirty image.Rectangle
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := -1, -1
	if a.X < b.X {
		sx = 1
	}
	if a.Y < b.Y {
		sy = 1
	}
	err := dx + dy
	for {
		dirty = dirty.Union(s.paint(dst, a, col))
		if a == b {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
	if dirty.Empty() {
		return image.Rectangle{}
	}
	return dst.MarkDirty(dirty)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

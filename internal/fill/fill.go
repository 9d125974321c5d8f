// Package fill implements span flood fill over an RGBA surface.
package fill

import (
	"image"
	"image/color"
)

// Surface is what Fill reads and writes. Set and At are only called for
// points inside Bounds.
type Surface interface {
	Bounds() image.Rectangle
	At(x, y int) color.RGBA
	Set(x, y int, c color.RGBA)
	MarkDirty(r image.Rectangle) image.Rectangle
}

type seed struct{ x, y int }

// Fill replaces the 4-connected area of same-colored pixels containing
// (x, y) with col. It returns the bounding rectangle of the changed pixels
// after reporting it to dst. Nothing happens when the start point is
// outside dst or already holds col.
func Fill(dst Surface, x, y int, col color.RGBA) image.Rectangle {
	b := dst.Bounds()
	if !image.Pt(x, y).In(b) {
		return image.Rectangle{}
	}
	target := dst.At(x, y)
	if target == col {
		return image.Rectangle{}
	}

	changed := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+1, y+1)}
	stack := []seed{{x, y}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if dst.At(s.x, s.y) != target {
			continue
		}

		l := s.x
		for l > b.Min.X && dst.At(l-1, s.y) == target {
			l--
		}
		r := s.x
		for r+1 < b.Max.X && dst.At(r+1, s.y) == target {
			r++
		}
		for i := l; i <= r; i++ {
			dst.Set(i, s.y, col)
		}
		changed = changed.Union(image.Rect(l, s.y, r+1, s.y+1))

		for _, ny := range [2]int{s.y - 1, s.y + 1} {
			if ny < b.Min.Y || ny >= b.Max.Y {
				continue
			}
			inRun := false
			for i := l; i <= r; i++ {
				match := dst.At(i, ny) == target
				if match && !inRun {
					stack = append(stack, seed{i, ny})
				}
				inRun = match
			}
		}
	}
	return dst.MarkDirty(changed)
}

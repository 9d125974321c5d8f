package canvas

import (
	"image"
	"testing"
)

// sized builds a rectangle from an origin and a possibly negative size.
func sized(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func TestRegionUnionAndClip(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 10, 10))
	if !g.Empty() {
		t.Fatal("new region not empty")
	}
	if got := g.Add(image.Rect(2, 2, 4, 4)); got != image.Rect(2, 2, 4, 4) {
		t.Fatalf("Add returned %v", got)
	}
	g.Add(image.Rect(8, 1, 12, 3))
	if got, want := g.Rect(), image.Rect(2, 1, 10, 4); got != want {
		t.Fatalf("Rect = %v, want %v", got, want)
	}
	if got := g.Add(image.Rect(20, 20, 30, 30)); !got.Empty() {
		t.Fatalf("Add outside bounds returned %v", got)
	}
	if got, want := g.Rect(), image.Rect(2, 1, 10, 4); got != want {
		t.Fatalf("outside rect changed region to %v", got)
	}
	g.Reset()
	if !g.Empty() {
		t.Fatal("Reset left region non-empty")
	}
}

func TestRegionNormalizesNegativeSize(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 10, 10))
	g.Add(sized(5, 5, -3, -2))
	if got, want := g.Rect(), image.Rect(2, 3, 5, 5); got != want {
		t.Fatalf("Rect = %v, want %v", got, want)
	}
	flipped := image.Rectangle{Min: image.Pt(6, 6), Max: image.Pt(4, 4)}
	g.Reset()
	g.Add(flipped)
	if got, want := g.Rect(), image.Rect(4, 4, 6, 6); got != want {
		t.Fatalf("Rect = %v, want %v", got, want)
	}
}

func TestRegionIgnoresEmpty(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 4, 4))
	g.Add(sized(1, 1, 0, 3))
	if !g.Empty() {
		t.Fatalf("zero-width rect made region %v", g.Rect())
	}
}

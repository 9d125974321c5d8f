package appstate

import (
	"image"
	"image/draw"
	"sync"
)

// frameSink is the display copy of the canvas. The canvas pushes changed
// rectangles into it from the event loop while the paint goroutine reads
// it, so both sides hold mu.
type frameSink struct {
	mu  sync.Mutex
	img *image.RGBA
}

// Refresh copies r from src. A size change reallocates the copy and takes
// the whole image.
func (s *frameSink) Refresh(src *image.RGBA, r image.Rectangle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil || s.img.Rect != src.Rect {
		s.img = image.NewRGBA(src.Rect)
		r = src.Rect
	}
	r = r.Intersect(src.Rect)
	draw.Draw(s.img, r, src, r.Min, draw.Src)
}

// with runs fn with the display copy locked. img is nil before the first
// refresh.
func (s *frameSink) with(fn func(img *image.RGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.img)
}

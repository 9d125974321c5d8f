package canvas

import (
	"image"
)

// DefaultHistorySize is the number of undo points kept by a canvas unless
// WithHistorySize says otherwise.
const DefaultHistorySize = 64

// undoPoint holds the pixels of rect as they were before the edit that
// created it. Undo and redo swap data with the live pixels, so after an
// undo it holds the values needed to redo and vice versa.
type undoPoint struct {
	rect image.Rectangle
	data []byte // rect.Dx()*rect.Dy() RGBA pixels, row-major
}

func newUndoPoint(rect image.Rectangle) *undoPoint {
	return &undoPoint{rect: rect, data: make([]byte, rect.Dx()*rect.Dy()*4)}
}

// row returns the bytes of row y (relative to rect.Min.Y).
func (p *undoPoint) row(y int) []byte {
	n := p.rect.Dx() * 4
	return p.data[y*n : (y+1)*n]
}

// History is a fixed capacity ring of undo points. Slots between the
// cursor and cursor+redo are reachable by redo; the undo slots sit behind
// the cursor. undo+redo never exceeds the capacity.
type History struct {
	points []*undoPoint
	next   int
	undo   int
	redo   int
}

// NewHistory returns an empty history holding at most size undo points.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{points: make([]*undoPoint, size)}
}

// Cap returns the capacity of the ring.
func (h *History) Cap() int { return len(h.points) }

// UndoCount returns how many steps can be undone.
func (h *History) UndoCount() int { return h.undo }

// RedoCount returns how many steps can be redone.
func (h *History) RedoCount() int { return h.redo }

// push stores p at the cursor. Every point reachable by redo is dropped and,
// once the ring is full, the oldest undo point is overwritten.
func (h *History) push(p *undoPoint) {
	n := len(h.points)
	for i := 0; i < h.redo; i++ {
		h.points[(h.next+i)%n] = nil
	}
	h.redo = 0
	h.points[h.next] = p
	h.next = (h.next + 1) % n
	if h.undo < n {
		h.undo++
	}
}

// back moves the cursor one step backwards and returns the point to undo,
// or nil when there is nothing to undo.
func (h *History) back() *undoPoint {
	if h.undo == 0 {
		return nil
	}
	h.undo--
	h.redo++
	h.next = (h.next - 1 + len(h.points)) % len(h.points)
	return h.points[h.next]
}

// forward returns the point to redo and advances the cursor past it, or
// returns nil when there is nothing to redo.
func (h *History) forward() *undoPoint {
	if h.redo == 0 {
		return nil
	}
	p := h.points[h.next]
	h.undo++
	h.redo--
	h.next = (h.next + 1) % len(h.points)
	return p
}

// Clear drops every stored point.
func (h *History) Clear() {
	for i := range h.points {
		h.points[i] = nil
	}
	h.next = 0
	h.undo = 0
	h.redo = 0
}

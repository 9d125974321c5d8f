// Package canvas owns the pixels of an image being edited together with the
// undo history for it.
//
// A Canvas keeps two copies of its pixels. The live copy is written by
// tools; the backup copy always holds the last committed state. Tools write
// pixels directly and report the touched rectangle with MarkDirty. Commit
// turns the accumulated dirty rectangle into an undo point, while Undo and
// Redo swap stored rectangles with the live pixels. Outside of an
// uncommitted edit both copies are identical.
//
// A Canvas is not safe for concurrent use.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
)

// ErrInvalidSize is returned when a canvas is requested with a
// non-positive width or height.
var ErrInvalidSize = errors.New("canvas dimensions must be positive")

// Sink receives pixel updates for display. Refresh is called with the live
// pixels and the rectangle that changed; it must copy what it needs before
// returning.
type Sink interface {
	Refresh(img *image.RGBA, r image.Rectangle)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(img *image.RGBA, r image.Rectangle)

// Refresh calls f(img, r).
func (f SinkFunc) Refresh(img *image.RGBA, r image.Rectangle) { f(img, r) }

// Canvas is a fixed size RGBA bitmap with dirty tracking and a bounded
// undo/redo history.
type Canvas struct {
	pixels   *image.RGBA
	backup   *image.RGBA
	dirty    Region
	history  *History
	sink     Sink
	modified bool
}

// Option modifies a Canvas during creation.
type Option func(*Canvas)

// WithSink sets the display sink notified of pixel changes.
func WithSink(s Sink) Option { return func(c *Canvas) { c.sink = s } }

// WithHistorySize sets how many undo points are kept. Values below one are
// raised to one.
func WithHistorySize(n int) Option {
	return func(c *Canvas) { c.history = NewHistory(n) }
}

// New creates a w×h canvas filled with bg.
func New(w, h int, bg color.RGBA, opts ...Option) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("new canvas %dx%d: %w", w, h, ErrInvalidSize)
	}
	pixels := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(pixels, pixels.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return newCanvas(pixels, opts), nil
}

// FromImage creates a canvas holding a copy of img. The copy is rebased so
// that its top-left corner is at the origin.
func FromImage(img image.Image, opts ...Option) (*Canvas, error) {
	if img == nil {
		return nil, fmt.Errorf("canvas from image: %w", ErrInvalidSize)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("canvas from image %dx%d: %w", b.Dx(), b.Dy(), ErrInvalidSize)
	}
	pixels := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pixels, pixels.Bounds(), img, b.Min, draw.Src)
	return newCanvas(pixels, opts), nil
}

func newCanvas(pixels *image.RGBA, opts []Option) *Canvas {
	backup := image.NewRGBA(pixels.Rect)
	copy(backup.Pix, pixels.Pix)
	c := &Canvas{
		pixels: pixels,
		backup: backup,
		dirty:  NewRegion(pixels.Rect),
	}
	for _, o := range opts {
		o(c)
	}
	if c.history == nil {
		c.history = NewHistory(DefaultHistorySize)
	}
	c.refresh(pixels.Rect)
	return c
}

// SetSink replaces the display sink and pushes the full image to it.
func (c *Canvas) SetSink(s Sink) {
	c.sink = s
	c.refresh(c.pixels.Rect)
}

func (c *Canvas) refresh(r image.Rectangle) {
	if c.sink != nil && !r.Empty() {
		c.sink.Refresh(c.pixels, r)
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.pixels.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.pixels.Rect.Dy() }

// Bounds returns the canvas rectangle, always anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle { return c.pixels.Rect }

// Image returns the live pixels. Writers must report what they touch with
// MarkDirty.
func (c *Canvas) Image() *image.RGBA { return c.pixels }

// Snapshot returns a copy of the live pixels, suitable for encoding.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.pixels.Rect)
	copy(out.Pix, c.pixels.Pix)
	return out
}

// At returns the live color at (x, y). The point must be inside Bounds.
func (c *Canvas) At(x, y int) color.RGBA {
	i := y*c.pixels.Stride + x*4
	p := c.pixels.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Set writes col at (x, y) without bounds checking against the canvas
// rectangle; callers clip first. The change is not reported to the dirty
// region.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	i := y*c.pixels.Stride + x*4
	p := c.pixels.Pix[i : i+4 : i+4]
	p[0] = col.R
	p[1] = col.G
	p[2] = col.B
	p[3] = col.A
}

// MarkDirty records that the pixels inside r were changed and refreshes the
// display for them. r is normalized and clipped to the canvas; the clipped
// rectangle is returned.
func (c *Canvas) MarkDirty(r image.Rectangle) image.Rectangle {
	r = c.dirty.Add(r)
	c.refresh(r)
	return r
}

// Dirty reports whether there are uncommitted changes.
func (c *Canvas) Dirty() bool { return !c.dirty.Empty() }

// DirtyRect returns the bounding rectangle of the uncommitted changes.
func (c *Canvas) DirtyRect() image.Rectangle { return c.dirty.Rect() }

// Commit records the uncommitted changes as one undo step. It reports
// whether an undo point was stored, which is false when nothing was dirty.
func (c *Canvas) Commit() bool {
	if c.dirty.Empty() {
		return false
	}
	r := c.dirty.Rect()
	p := newUndoPoint(r)
	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		off := (r.Min.Y+y)*c.pixels.Stride + r.Min.X*4
		backup := c.backup.Pix[off : off+n]
		copy(p.row(y), backup)
		copy(backup, c.pixels.Pix[off:off+n])
	}
	c.history.push(p)
	c.dirty.Reset()
	c.modified = true
	c.refresh(r)
	Logger().Debug("commit", slog.Any("rect", r), slog.Int("undo", c.history.undo), slog.Int("redo", c.history.redo))
	return true
}

// Revert throws away the uncommitted changes, restoring the committed
// pixels inside the dirty rectangle.
func (c *Canvas) Revert() {
	if c.dirty.Empty() {
		return
	}
	r := c.dirty.Rect()
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*c.pixels.Stride + r.Min.X*4
		copy(c.pixels.Pix[off:off+n], c.backup.Pix[off:off+n])
	}
	c.dirty.Reset()
	c.refresh(r)
}

// Undo reverts any uncommitted changes and then steps back one entry in
// the history. It returns false when there is nothing to undo.
func (c *Canvas) Undo() bool {
	c.Revert()
	p := c.history.back()
	if p == nil {
		return false
	}
	c.swap(p)
	Logger().Debug("undo", slog.Any("rect", p.rect), slog.Int("undo", c.history.undo), slog.Int("redo", c.history.redo))
	return true
}

// Redo reverts any uncommitted changes and then re-applies the most
// recently undone entry. It returns false when there is nothing to redo.
func (c *Canvas) Redo() bool {
	c.Revert()
	p := c.history.forward()
	if p == nil {
		return false
	}
	c.swap(p)
	Logger().Debug("redo", slog.Any("rect", p.rect), slog.Int("undo", c.history.undo), slog.Int("redo", c.history.redo))
	return true
}

// swap exchanges the live pixels inside p.rect with p.data and copies the
// new live values into the backup.
func (c *Canvas) swap(p *undoPoint) {
	r := p.rect
	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		off := (r.Min.Y+y)*c.pixels.Stride + r.Min.X*4
		live := c.pixels.Pix[off : off+n]
		saved := p.row(y)
		for i := range live {
			live[i], saved[i] = saved[i], live[i]
		}
		copy(c.backup.Pix[off:off+n], live)
	}
	c.modified = true
	c.refresh(r)
}

// UndoCount returns how many steps can be undone.
func (c *Canvas) UndoCount() int { return c.history.UndoCount() }

// RedoCount returns how many steps can be redone.
func (c *Canvas) RedoCount() int { return c.history.RedoCount() }

// HistorySize returns the capacity of the undo history.
func (c *Canvas) HistorySize() int { return c.history.Cap() }

// Modified reports whether the committed state changed since the canvas
// was created or last marked as saved.
func (c *Canvas) Modified() bool { return c.modified }

// MarkSaved clears the unsaved-changes flag.
func (c *Canvas) MarkSaved() { c.modified = false }

// Status summarizes the canvas for display.
type Status struct {
	UndoCount   int
	RedoCount   int
	HistorySize int
	Dirty       bool
	Modified    bool
}

// Status returns the current history depth and change flags.
func (c *Canvas) Status() Status {
	return Status{
		UndoCount:   c.history.UndoCount(),
		RedoCount:   c.history.RedoCount(),
		HistorySize: c.HistorySize(),
		Dirty:       c.Dirty(),
		Modified:    c.modified,
	}
}

// Close drops the undo history and detaches the display sink. The canvas
// stays readable but no longer reports changes.
func (c *Canvas) Close() {
	c.history.Clear()
	c.sink = nil
	Logger().Debug("close", slog.Int("history", c.history.Cap()))
}

// inSync reports whether the live pixels equal the committed backup.
func (c *Canvas) inSync() bool {
	for i, v := range c.pixels.Pix {
		if c.backup.Pix[i] != v {
			return false
		}
	}
	return true
}

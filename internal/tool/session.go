// Package tool applies editing tools to a canvas on behalf of the user.
package tool

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/example/pixelfish/internal/brush"
	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/fill"
	"github.com/example/pixelfish/internal/palette"
)

// Tool identifies what a mouse press does.
type Tool int

const (
	NoTool Tool = iota
	SquareBrush
	RoundBrush
	Eraser
	ColorPicker
	BucketFill
	toolCount
)

var toolNames = [toolCount]string{
	"Unknown",
	"Square brush",
	"Round brush",
	"Eraser",
	"Color picker",
	"Bucket fill",
}

func (t Tool) String() string {
	if t < 0 || t >= toolCount {
		return toolNames[NoTool]
	}
	return toolNames[t]
}

// Button is the mouse button that started an operation. Each button paints
// with its own color.
type Button int

const (
	Left Button = iota + 1
	Right
)

const (
	DefaultBrushSize = 5
	DefaultTool      = RoundBrush
)

// Session is the editing state shared by the tools: the canvas being
// edited, the selected tool, the two button colors and the brush stencil.
type Session struct {
	canvas  *canvas.Canvas
	palette *palette.Palette
	stencil *brush.Stencil

	tool     Tool
	prevTool Tool
	colors   [2]color.RGBA

	pressed Button
	last    [2]float64
}

// Option configures a Session.
type Option func(*Session)

// WithPalette sets the palette. Its first two colors become the left and
// right colors and its colorkey is used by the eraser.
func WithPalette(p *palette.Palette) Option {
	return func(s *Session) {
		s.palette = p
		if p.Len() > 0 {
			s.colors = [2]color.RGBA{p.At(0), p.At(1)}
		}
	}
}

// WithBrush sets the initial stencil size and shape.
func WithBrush(size int, round bool) Option {
	return func(s *Session) {
		s.stencil = brush.New(size, round)
		if round {
			s.tool = RoundBrush
		} else {
			s.tool = SquareBrush
		}
	}
}

// WithColors overrides the left and right colors.
func WithColors(left, right color.RGBA) Option {
	return func(s *Session) { s.colors = [2]color.RGBA{left, right} }
}

// NewSession starts editing c.
func NewSession(c *canvas.Canvas, opts ...Option) *Session {
	s := &Session{canvas: c, tool: DefaultTool}
	WithPalette(palette.Default())(s)
	for _, o := range opts {
		o(s)
	}
	if s.stencil == nil {
		s.stencil = brush.New(DefaultBrushSize, s.tool != SquareBrush)
	}
	return s
}

// Canvas returns the canvas being edited.
func (s *Session) Canvas() *canvas.Canvas { return s.canvas }

// SetCanvas replaces the canvas, dropping any stroke in progress.
func (s *Session) SetCanvas(c *canvas.Canvas) {
	s.pressed = 0
	s.canvas = c
}

// Palette returns the palette in use.
func (s *Session) Palette() *palette.Palette { return s.palette }

// Tool returns the selected tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool selects t. Choosing a brush also sets the stencil shape. Any
// stroke in progress is committed first.
func (s *Session) SetTool(t Tool) {
	s.finishStroke()
	s.tool = t
	s.prevTool = NoTool
	switch t {
	case SquareBrush:
		s.stencil.SetRound(false)
	case RoundBrush:
		s.stencil.SetRound(true)
	}
}

// HoldPicker switches to the color picker until ReleasePicker is called.
func (s *Session) HoldPicker() {
	if s.tool == ColorPicker {
		return
	}
	s.finishStroke()
	s.prevTool = s.tool
	s.tool = ColorPicker
}

// ReleasePicker returns to the tool that was active before HoldPicker.
func (s *Session) ReleasePicker() {
	if s.prevTool == NoTool {
		return
	}
	s.finishStroke()
	s.tool = s.prevTool
	s.prevTool = NoTool
}

// Color returns the color painted by b.
func (s *Session) Color(b Button) color.RGBA {
	if b == Right {
		return s.colors[1]
	}
	return s.colors[0]
}

// SetColor sets the color painted by b.
func (s *Session) SetColor(b Button, col color.RGBA) {
	if b == Right {
		s.colors[1] = col
		return
	}
	s.colors[0] = col
}

// SwapColors exchanges the left and right colors.
func (s *Session) SwapColors() { s.colors[0], s.colors[1] = s.colors[1], s.colors[0] }

// Stencil returns the brush stencil.
func (s *Session) Stencil() *brush.Stencil { return s.stencil }

// BrushSize returns the stencil edge length.
func (s *Session) BrushSize() int { return s.stencil.Size() }

// SetBrushSize sets the stencil edge length, clamped to at least one.
func (s *Session) SetBrushSize(n int) { s.stencil.SetSize(n) }

// ResizeBrush grows or shrinks the stencil by delta.
func (s *Session) ResizeBrush(delta int) { s.stencil.Resize(delta) }

// Stroking reports whether a mouse button is held down on the canvas.
func (s *Session) Stroking() bool { return s.pressed != 0 }

func (s *Session) paintColor(b Button) color.RGBA {
	if s.tool == Eraser {
		return s.palette.Colorkey
	}
	return s.Color(b)
}

func (s *Session) pick(x, y float64, b Button) {
	px, py := int(math.Floor(x)), int(math.Floor(y))
	if !image.Pt(px, py).In(s.canvas.Bounds()) {
		return
	}
	s.SetColor(b, s.canvas.At(px, py))
}

// MouseDown starts an operation at canvas position (x, y) and returns the
// rectangle it changed. Presses while another button is held are ignored.
func (s *Session) MouseDown(x, y float64, b Button) image.Rectangle {
	if s.pressed != 0 || s.canvas == nil {
		return image.Rectangle{}
	}
	switch s.tool {
	case SquareBrush, RoundBrush, Eraser:
		s.pressed = b
		s.last = [2]float64{x, y}
		return s.stencil.Stamp(s.canvas, x, y, s.paintColor(b))
	case ColorPicker:
		s.pressed = b
		s.pick(x, y, b)
	case BucketFill:
		r := fill.Fill(s.canvas, int(math.Floor(x)), int(math.Floor(y)), s.Color(b))
		s.canvas.Commit()
		return r
	}
	return image.Rectangle{}
}

// MouseMove continues the operation of the held button. Brush strokes are
// interpolated from the previous position so fast motion leaves no gaps.
func (s *Session) MouseMove(x, y float64) image.Rectangle {
	if s.pressed == 0 {
		return image.Rectangle{}
	}
	switch s.tool {
	case SquareBrush, RoundBrush, Eraser:
		r := s.stencil.Line(s.canvas, s.last[0], s.last[1], x, y, s.paintColor(s.pressed))
		s.last = [2]float64{x, y}
		return r
	case ColorPicker:
		s.pick(x, y, s.pressed)
	}
	return image.Rectangle{}
}

// MouseUp ends the operation started by b. A finished stroke is committed
// as one undo step; the return value reports whether one was stored.
func (s *Session) MouseUp(x, y float64, b Button) bool {
	if s.pressed == 0 || s.pressed != b {
		return false
	}
	s.MouseMove(x, y)
	return s.finishStroke()
}

func (s *Session) finishStroke() bool {
	if s.pressed == 0 {
		return false
	}
	s.pressed = 0
	return s.canvas.Commit()
}

// Undo drops a stroke in progress and steps back in the history.
func (s *Session) Undo() bool {
	s.pressed = 0
	return s.canvas.Undo()
}

// Redo drops a stroke in progress and re-applies the last undone step.
func (s *Session) Redo() bool {
	s.pressed = 0
	return s.canvas.Redo()
}

// Status describes the tool for the status bar, for example
// "Round brush (5)".
func (s *Session) Status() string {
	switch s.tool {
	case SquareBrush, RoundBrush, Eraser:
		return fmt.Sprintf("%s (%d)", s.tool, s.stencil.Size())
	}
	return s.tool.String()
}

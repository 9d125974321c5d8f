package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/clipboard"
	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/notify"
	"github.com/example/pixelfish/internal/render"
	"github.com/example/pixelfish/internal/tool"
)

const messageDuration = 2 * time.Second

// replaced in tests
var (
	readClipboard  = clipboard.ReadImage
	writeClipboard = clipboard.WriteImage
)

// editor is the window-independent part of the UI. It turns input events
// into session operations and file actions and describes the next frame.
// It is only used from the event loop goroutine.
type editor struct {
	session     *tool.Session
	sink        *frameSink
	dialogs     Dialogs
	notifier    *notify.Notifier
	historySize int
	zoom        float64

	path   string
	view   render.View
	size   image.Point
	fitted bool

	panning   bool
	panButton mouse.Button
	panLast   image.Point

	message      string
	messageUntil time.Time
	quit         bool
}

func newEditor(s *tool.Session, path string, d Dialogs, n *notify.Notifier, historySize int, zoom float64) *editor {
	if d == nil {
		d = NativeDialogs{}
	}
	e := &editor{
		session:     s,
		sink:        &frameSink{},
		dialogs:     d,
		notifier:    n,
		historySize: historySize,
		zoom:        zoom,
		path:        path,
		view:        render.View{Zoom: zoom},
	}
	s.Canvas().SetSink(e.sink)
	return e
}

func (e *editor) canvas() *canvas.Canvas { return e.session.Canvas() }

// setCanvas starts editing c, saved as path, and fits it to the window.
// The replaced canvas is closed.
func (e *editor) setCanvas(c *canvas.Canvas, path string) {
	e.canvas().Close()
	c.SetSink(e.sink)
	e.session.SetCanvas(c)
	e.path = path
	e.panning = false
	e.fitted = false
	e.fit()
}

// resize records the window size. The first size fits the canvas.
func (e *editor) resize(sz image.Point) {
	e.size = sz
	if !e.fitted {
		e.fit()
	}
}

func (e *editor) fit() {
	if e.size.X <= 0 || e.size.Y <= 0 {
		return
	}
	e.view.Fit(e.canvas().Bounds().Size(), render.CanvasArea(e.size), e.zoom)
	e.fitted = true
}

func (e *editor) flash(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
	e.messageUntil = time.Now().Add(messageDuration)
	log.Print(e.message)
}

func (e *editor) fail(what string, err error) {
	e.flash("%s failed: %v", what, err)
}

// name is how the edited file is shown to the user.
func (e *editor) name() string {
	if e.path == "" {
		return "untitled"
	}
	return filepath.Base(e.path)
}

// title is the window title for the edited file.
func (e *editor) title() string {
	return "Pixelfish - " + e.name()
}

// frame describes the next frame apart from the canvas pixels, which the
// paint goroutine takes from the sink.
func (e *editor) frame() render.Frame {
	s := e.session
	c := s.Canvas()
	status := render.StatusLine(s.Status(), c.Status(), e.view.Zoom)
	if e.message != "" && time.Now().Before(e.messageUntil) {
		status = e.message
	}
	return render.Frame{
		View:     e.view,
		Status:   status,
		Modified: c.Modified(),
		Palette:  s.Palette(),
		Left:     s.Color(tool.Left),
		Right:    s.Color(tool.Right),
	}
}

// handleKey applies a key event and reports whether a repaint is needed.
func (e *editor) handleKey(ev key.Event) bool {
	if isAlt(ev.Code) {
		switch ev.Direction {
		case key.DirPress:
			e.session.HoldPicker()
		case key.DirRelease:
			e.session.ReleasePicker()
		default:
			return false
		}
		return true
	}
	if ev.Direction == key.DirRelease {
		return false
	}
	a, ok := actionFor(ev)
	if !ok {
		return false
	}
	e.do(a)
	return true
}

// do runs a.
func (e *editor) do(a Action) {
	s := e.session
	switch a {
	case ActionSquareBrush:
		s.SetTool(tool.SquareBrush)
	case ActionRoundBrush:
		s.SetTool(tool.RoundBrush)
	case ActionEraser:
		s.SetTool(tool.Eraser)
	case ActionPicker:
		s.SetTool(tool.ColorPicker)
	case ActionFill:
		s.SetTool(tool.BucketFill)
	case ActionBrushGrow:
		s.ResizeBrush(1)
	case ActionBrushShrink:
		s.ResizeBrush(-1)
	case ActionSwapColors:
		s.SwapColors()
	case ActionZoomIn, ActionZoomOut:
		steps := 1.0
		if a == ActionZoomOut {
			steps = -1
		}
		c := render.CanvasArea(e.size).Size().Div(2)
		e.view.ZoomBy(steps, float64(c.X), float64(c.Y))
	case ActionZoomFit:
		e.fit()
	case ActionUndo:
		if !s.Undo() {
			e.flash("nothing to undo")
		}
	case ActionRedo:
		if !s.Redo() {
			e.flash("nothing to redo")
		}
	case ActionSave:
		_ = e.save(false)
	case ActionSaveAs:
		_ = e.save(true)
	case ActionOpen:
		e.open()
	case ActionCopy:
		e.copyImage()
	case ActionPaste:
		e.paste()
	case ActionQuit:
		e.quit = e.confirmDiscard()
	}
}

func toolButton(b mouse.Button) tool.Button {
	switch b {
	case mouse.ButtonLeft:
		return tool.Left
	case mouse.ButtonRight:
		return tool.Right
	}
	return 0
}

// handleMouse applies a mouse event and reports whether a repaint is
// needed.
func (e *editor) handleMouse(ev mouse.Event) bool {
	p := image.Pt(int(ev.X), int(ev.Y))
	if ev.Button.IsWheel() {
		if ev.Direction == mouse.DirRelease {
			return false
		}
		step := 0
		switch ev.Button {
		case mouse.ButtonWheelUp:
			step = 1
		case mouse.ButtonWheelDown:
			step = -1
		default:
			return false
		}
		if ev.Modifiers&key.ModControl != 0 {
			e.view.ZoomBy(float64(step), float64(ev.X), float64(ev.Y))
		} else {
			e.session.ResizeBrush(step)
		}
		return true
	}

	switch ev.Direction {
	case mouse.DirPress:
		if p.Y >= render.CanvasArea(e.size).Max.Y {
			return e.clickStatusBar(p, ev.Button)
		}
		if e.panning {
			return false
		}
		if ev.Button == mouse.ButtonMiddle || (ev.Button == mouse.ButtonLeft && ev.Modifiers&key.ModControl != 0) {
			if !e.session.Stroking() {
				e.panning = true
				e.panButton = ev.Button
				e.panLast = p
			}
			return false
		}
		b := toolButton(ev.Button)
		if b == 0 {
			return false
		}
		x, y := e.view.ToCanvas(float64(ev.X), float64(ev.Y))
		e.session.MouseDown(x, y, b)
		return true
	case mouse.DirRelease:
		// No stroke starts while panning, so other releases have nothing to end.
		if e.panning {
			if ev.Button == e.panButton {
				e.panning = false
			}
			return false
		}
		b := toolButton(ev.Button)
		if b == 0 {
			return false
		}
		x, y := e.view.ToCanvas(float64(ev.X), float64(ev.Y))
		e.session.MouseUp(x, y, b)
		return true
	case mouse.DirNone:
		if e.panning {
			e.view.Pan(p.Sub(e.panLast))
			e.panLast = p
			return true
		}
		if e.session.Stroking() {
			x, y := e.view.ToCanvas(float64(ev.X), float64(ev.Y))
			e.session.MouseMove(x, y)
			return true
		}
	}
	return false
}

// clickStatusBar picks a palette swatch for the clicked button. Clicking
// the color indicators swaps the two colors.
func (e *editor) clickStatusBar(p image.Point, b mouse.Button) bool {
	pal := e.session.Palette()
	n := pal.Len()
	if i := render.SwatchAt(e.size, n, p); i >= 0 {
		if tb := toolButton(b); tb != 0 {
			e.session.SetColor(tb, pal.At(i))
			return true
		}
		return false
	}
	rects := render.Swatches(e.size, n)
	if p.In(rects[n]) || p.In(rects[n+1]) {
		e.session.SwapColors()
		return true
	}
	return false
}

// confirmDiscard asks what to do with unsaved changes and reports whether
// the current canvas may be replaced.
func (e *editor) confirmDiscard() bool {
	if !e.canvas().Modified() {
		return true
	}
	if e.dialogs.Confirm("Unsaved changes", fmt.Sprintf("Save changes to %s first?", e.name())) {
		return e.save(false) == nil
	}
	return e.dialogs.Confirm("Unsaved changes", "Discard unsaved changes?")
}

// save writes the canvas to its file, asking for a name when there is none
// or when as is set.
func (e *editor) save(as bool) error {
	path := e.path
	if as || path == "" {
		p, err := e.dialogs.SaveFile(e.path)
		if err != nil {
			if !errors.Is(err, errCancelled) {
				e.fail("save", err)
			}
			return err
		}
		path = p
	}
	c := e.canvas()
	if err := imageio.Save(path, c.Image()); err != nil {
		e.fail("save", err)
		return err
	}
	e.path = path
	c.MarkSaved()
	e.flash("saved %s", filepath.Base(path))
	e.notifier.Save(path)
	return nil
}

func (e *editor) open() {
	if !e.confirmDiscard() {
		return
	}
	dir := ""
	if e.path != "" {
		dir = filepath.Dir(e.path)
	}
	path, err := e.dialogs.OpenFile(dir)
	if err != nil {
		if !errors.Is(err, errCancelled) {
			e.fail("open", err)
		}
		return
	}
	img, err := imageio.Load(path)
	if err != nil {
		e.fail("open", err)
		return
	}
	c, err := canvas.FromImage(img, canvas.WithHistorySize(e.historySize))
	if err != nil {
		e.fail("open", err)
		return
	}
	e.setCanvas(c, path)
	e.flash("opened %s", filepath.Base(path))
}

func (e *editor) copyImage() {
	img := e.canvas().Snapshot()
	if err := writeClipboard(img); err != nil {
		e.fail("copy", err)
		return
	}
	detail := fmt.Sprintf("%dx%d image", img.Rect.Dx(), img.Rect.Dy())
	e.flash("copied %s", detail)
	e.notifier.Copy(detail, img)
}

// paste replaces the canvas with the clipboard image. The new canvas has
// no file name so saving asks for one.
func (e *editor) paste() {
	img, err := readClipboard()
	if err != nil {
		e.fail("paste", err)
		return
	}
	if !e.confirmDiscard() {
		return
	}
	c, err := canvas.FromImage(img, canvas.WithHistorySize(e.historySize))
	if err != nil {
		e.fail("paste", err)
		return
	}
	e.setCanvas(c, "")
	e.flash("pasted %dx%d image", c.Width(), c.Height())
}

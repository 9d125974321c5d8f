// Package appstate runs the editor window: it feeds keyboard and mouse
// input to a tool session and paints the canvas with the render package.
package appstate

import (
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/config"
	"github.com/example/pixelfish/internal/notify"
	"github.com/example/pixelfish/internal/palette"
	"github.com/example/pixelfish/internal/render"
	"github.com/example/pixelfish/internal/theme"
	"github.com/example/pixelfish/internal/tool"
)

// Window size limits.
var (
	minWindow = image.Pt(320, 240)
	maxWindow = image.Pt(1600, 1000)
)

// AppState holds application configuration for the UI.
type AppState struct {
	Canvas      *canvas.Canvas
	Path        string
	Theme       *theme.Theme
	Palette     *palette.Palette
	Notifier    *notify.Notifier
	Dialogs     Dialogs
	Zoom        float64
	HistorySize int
	BrushSize   int
	BrushRound  bool
	Left        *color.RGBA
	Right       *color.RGBA

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCanvas sets the canvas to edit and the file it was loaded from. An
// empty path makes the first save ask for a name.
func WithCanvas(c *canvas.Canvas, path string) Option {
	return func(a *AppState) {
		a.Canvas = c
		a.Path = path
	}
}

// WithConfig applies the editor settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(a *AppState) {
		a.Zoom = cfg.Zoom
		a.HistorySize = cfg.HistorySize
		a.BrushSize = cfg.BrushSize
		a.BrushRound = cfg.BrushRound
		a.Left = cfg.Colors.Left
		a.Right = cfg.Colors.Right
	}
}

// WithTheme sets the UI colors.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithPalette sets the palette shown in the status bar.
func WithPalette(p *palette.Palette) Option { return func(a *AppState) { a.Palette = p } }

// WithNotifier sets where save and copy notifications go.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithDialogs replaces the native file and message dialogs.
func WithDialogs(d Dialogs) Option { return func(a *AppState) { a.Dialogs = d } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options. Without a canvas a
// blank one of the default size is created.
func New(opts ...Option) *AppState {
	a := &AppState{
		Zoom:        config.DefaultZoom,
		HistorySize: canvas.DefaultHistorySize,
		BrushSize:   tool.DefaultBrushSize,
		BrushRound:  true,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Palette == nil {
		a.Palette = palette.Default()
	}
	if a.Canvas == nil {
		c, err := canvas.New(config.DefaultWidth, config.DefaultHeight, a.Palette.Colorkey, canvas.WithHistorySize(a.HistorySize))
		if err != nil {
			panic(err)
		}
		a.Canvas = c
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) newEditor() *editor {
	opts := []tool.Option{tool.WithPalette(a.Palette), tool.WithBrush(a.BrushSize, a.BrushRound)}
	s := tool.NewSession(a.Canvas, opts...)
	if a.Left != nil {
		s.SetColor(tool.Left, *a.Left)
	}
	if a.Right != nil {
		s.SetColor(tool.Right, *a.Right)
	}
	return newEditor(s, a.Path, a.Dialogs, a.Notifier, a.HistorySize, a.Zoom)
}

// windowSize is the initial window size for a canvas: the zoomed canvas
// plus the status bar, within the window size limits.
func windowSize(canvasSize image.Point, zoom float64) image.Point {
	w := int(float64(canvasSize.X) * zoom)
	h := int(float64(canvasSize.Y)*zoom) + render.StatusHeight
	return image.Pt(
		min(max(w, minWindow.X), maxWindow.X),
		min(max(h, minWindow.Y), maxWindow.Y),
	)
}

type paintState struct {
	size  image.Point
	frame render.Frame
}

// Run opens the window and blocks until it is closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the event loop on s.
func (a *AppState) Main(s screen.Screen) {
	ed := a.newEditor()
	ws := windowSize(a.Canvas.Bounds().Size(), a.Zoom)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: ws.X, Height: ws.Y, Title: ed.title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	r := render.New(a.Theme)
	paintCh := make(chan paintState, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range paintCh {
			drawFrame(s, w, r, ed.sink, st)
		}
	}()
	defer func() {
		close(paintCh)
		<-done
	}()

	var expiry messageTimer
	defer expiry.stop()
	repaint := func() {
		expiry.schedule(ed.messageUntil, func() { w.Send(paint.Event{}) })
		w.Send(paint.Event{})
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			ed.resize(e.Size())
			w.Send(paint.Event{})
		case paint.Event:
			st := paintState{size: ed.size, frame: ed.frame()}
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		case key.Event:
			if ed.handleKey(e) {
				if ed.quit {
					return
				}
				repaint()
			}
		case mouse.Event:
			if ed.handleMouse(e) {
				repaint()
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// messageTimer repaints once the status message expires.
type messageTimer struct {
	until time.Time
	t     *time.Timer
}

// schedule arms fire for shortly after until, replacing the pending timer.
// An unchanged or zero until keeps the current one.
func (m *messageTimer) schedule(until time.Time, fire func()) {
	if until.IsZero() || until.Equal(m.until) {
		return
	}
	m.stop()
	m.until = until
	m.t = time.AfterFunc(time.Until(until)+50*time.Millisecond, fire)
}

func (m *messageTimer) stop() {
	if m.t != nil {
		m.t.Stop()
	}
}

func drawFrame(s screen.Screen, w screen.Window, r *render.Renderer, sink *frameSink, st paintState) {
	if st.size.X <= 0 || st.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	sink.with(func(img *image.RGBA) {
		st.frame.Canvas = img
		r.Draw(b.RGBA(), st.frame)
	})

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/palette"
	"github.com/example/pixelfish/internal/theme"
)

func TestViewMapping(t *testing.T) {
	v := View{Zoom: 10, Offset: image.Pt(20, 30)}
	if got := v.CanvasRect(image.Pt(4, 3)); got != image.Rect(20, 30, 60, 60) {
		t.Fatalf("CanvasRect = %v", got)
	}
	x, y := v.ToCanvas(45, 30)
	if x != 2.5 || y != 0 {
		t.Fatalf("ToCanvas = %v,%v", x, y)
	}
	v.Pan(image.Pt(-5, 5))
	if v.Offset != image.Pt(15, 35) {
		t.Fatalf("Offset after pan = %v", v.Offset)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	v := View{Zoom: 10, Offset: image.Pt(0, 0)}
	v.ZoomBy(2, 50, 50)
	if math.Abs(v.Zoom-13) > 1e-9 {
		t.Fatalf("Zoom = %v, want 13", v.Zoom)
	}
	x, y := v.ToCanvas(50, 50)
	if math.Abs(x-5) > 0.1 || math.Abs(y-5) > 0.1 {
		t.Fatalf("anchor moved to %v,%v", x, y)
	}
	v.ZoomBy(-20, 0, 0)
	if math.Abs(v.Zoom-6.5) > 1e-9 {
		t.Fatalf("Zoom = %v, want halving to 6.5", v.Zoom)
	}
	for i := 0; i < 20; i++ {
		v.ZoomBy(-10, 0, 0)
	}
	if v.Zoom != MinZoom {
		t.Fatalf("Zoom = %v, want clamp to %v", v.Zoom, MinZoom)
	}
}

func TestFit(t *testing.T) {
	var v View
	v.Fit(image.Pt(60, 50), image.Rect(0, 0, 640, 456), 15)
	if v.Zoom != 9 {
		t.Fatalf("Zoom = %v, want 9", v.Zoom)
	}
	if v.Offset != image.Pt(50, 3) {
		t.Fatalf("Offset = %v", v.Offset)
	}
	v.Fit(image.Pt(2, 2), image.Rect(0, 0, 640, 480), 15)
	if v.Zoom != 15 {
		t.Fatalf("Zoom = %v, want cap 15", v.Zoom)
	}
}

func TestCheckerPerCanvasPixel(t *testing.T) {
	var c checker
	light := color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	dark := color.RGBA{0x55, 0x55, 0x55, 0xff}
	img := c.get(image.Pt(3, 2), light, dark)
	if img.RGBAAt(0, 0) != dark || img.RGBAAt(1, 0) != light || img.RGBAAt(1, 1) != dark {
		t.Fatal("checker does not alternate per pixel")
	}
	if c.get(image.Pt(3, 2), light, dark) != img {
		t.Fatal("checker rebuilt for identical request")
	}
}

func TestDrawComposesCanvas(t *testing.T) {
	th := theme.Default()
	th.Shadow = color.RGBA{}
	r := New(th)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{255, 0, 0, 255}
	img.SetRGBA(0, 0, red)
	dst := image.NewRGBA(image.Rect(0, 0, 100, 80))
	r.Draw(dst, Frame{
		Canvas: img,
		View:   View{Zoom: 10, Offset: image.Pt(10, 10)},
		Status: "Round brush (5)",
	})
	if got := dst.RGBAAt(15, 15); got != red {
		t.Fatalf("canvas pixel = %v, want %v", got, red)
	}
	// (1,0) is transparent, so the checkerboard shows through.
	if got := dst.RGBAAt(25, 15); got != th.CheckerLight {
		t.Fatalf("transparent pixel = %v, want %v", got, th.CheckerLight)
	}
	if got := dst.RGBAAt(5, 5); got != th.Background {
		t.Fatalf("background = %v, want %v", got, th.Background)
	}
	if got := dst.RGBAAt(99, 79); got != th.StatusBackground {
		t.Fatalf("status bar corner = %v, want %v", got, th.StatusBackground)
	}
}

func TestDrawClipsCanvasToArea(t *testing.T) {
	r := New(nil)
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 50, 50))
	r.Draw(dst, Frame{Canvas: img, View: View{Zoom: 10}})
	if got := dst.RGBAAt(10, 49); got == (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("canvas drawn over the status bar")
	}
}

func TestSwatches(t *testing.T) {
	size := image.Pt(400, 300)
	pal := palette.Default()
	rects := Swatches(size, pal.Len())
	if len(rects) != pal.Len()+2 {
		t.Fatalf("got %d swatches", len(rects))
	}
	bar := StatusBar(size)
	for i, rc := range rects {
		if !rc.In(bar) {
			t.Fatalf("swatch %d %v outside status bar %v", i, rc, bar)
		}
	}
	if rects[len(rects)-1].Max.X != size.X-swatchGap {
		t.Fatalf("last swatch ends at %d", rects[len(rects)-1].Max.X)
	}
	mid := rects[3].Min.Add(image.Pt(2, 2))
	if got := SwatchAt(size, pal.Len(), mid); got != 3 {
		t.Fatalf("SwatchAt = %d, want 3", got)
	}
	if got := SwatchAt(size, pal.Len(), rects[pal.Len()].Min); got != -1 {
		t.Fatalf("color indicator hit as palette swatch: %d", got)
	}
}

func TestStatusLine(t *testing.T) {
	got := StatusLine("Round brush (5)", canvas.Status{UndoCount: 3, RedoCount: 1, HistorySize: 64}, 15)
	if !strings.HasPrefix(got, "Round brush (5)") || !strings.Contains(got, "undo 3/64") || !strings.Contains(got, "redo 1") || !strings.HasSuffix(got, "1500%") {
		t.Fatalf("StatusLine = %q", got)
	}
	if MeasureText("abc") <= 0 {
		t.Fatal("MeasureText returned no width")
	}
}

package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/palette"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func writeImage(t *testing.T, name string, w, h int, col color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	path := filepath.Join(t.TempDir(), name)
	if err := imageio.Save(path, img); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{black, white})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseDrawRequiresFile(t *testing.T) {
	_, err := parseDrawCmd([]string{"brush", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "input file is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsBadOperations(t *testing.T) {
	cases := map[string][]string{
		"unsupported operation": {"-file", "a.png", "spray", "1", "1"},
		"requires 4 integer":    {"-file", "a.png", "line", "1", "1", "2"},
		"invalid integer":       {"-file", "a.png", "fill", "x", "1"},
		"unsupported image":     {"-file", "a.png", "-output", "a.jpg", "fill", "1", "1"},
		"invalid color":         {"-file", "a.png", "-color", "nope", "fill", "1", "1"},
	}
	for want, args := range cases {
		if _, err := parseDrawCmd(args, nil); err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("parseDrawCmd(%q) error = %v, want %q", args, err, want)
		}
	}
}

func TestParseDrawFlagsAnywhere(t *testing.T) {
	d, err := parseDrawCmd([]string{"brush", "-1", "2", "--size", "3", "-file=x.png", "-square", "erase", "4", "5"}, nil)
	if err != nil {
		t.Fatalf("parseDrawCmd: %v", err)
	}
	if d.file != "x.png" || d.output != "x.png" || d.size != 3 || !d.square {
		t.Fatalf("file %q output %q size %d square %v", d.file, d.output, d.size, d.square)
	}
	if len(d.ops) != 2 || d.ops[0].name != "brush" || d.ops[0].args[0] != -1 || d.ops[1].name != "erase" {
		t.Fatalf("ops = %+v", d.ops)
	}
}

func TestDrawRun(t *testing.T) {
	in := writeImage(t, "in.png", 5, 5, black)
	out := filepath.Join(filepath.Dir(in), "out.bmp")
	d, err := parseDrawCmd([]string{"-file", in, "-output", out, "-color", "white", "-size", "1", "-square",
		"line", "0", "2", "4", "2", "fill", "0", "0"}, nil)
	if err != nil {
		t.Fatalf("parseDrawCmd: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for y := 0; y < 5; y++ {
		want := white
		if y > 2 {
			want = black
		}
		for x := 0; x < 5; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawEraseUsesColorkey(t *testing.T) {
	in := writeImage(t, "in.png", 3, 3, black)
	d, err := parseDrawCmd([]string{"-file", in, "-size", "1", "erase", "1", "1"}, nil)
	if err != nil {
		t.Fatalf("parseDrawCmd: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Load(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("erased pixel = %v, want transparent", got)
	}
	if img.RGBAAt(0, 0) != black {
		t.Fatal("erase touched a neighbor")
	}
}

func TestNewWritesBlankImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "blank.tiff")
	c, err := parseNewCmd([]string{"-output", out, "-width", "3", "-height", "2", "-background", "#ff0000"}, nil)
	if err != nil {
		t.Fatalf("parseNewCmd: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect != image.Rect(0, 0, 3, 2) || img.RGBAAt(2, 1) != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("image %v pixel %v", img.Rect, img.RGBAAt(2, 1))
	}
}

func TestNewRequiresOutput(t *testing.T) {
	_, err := parseNewCmd(nil, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	msg := uerr.Error()
	if !strings.HasPrefix(msg, "output file is required") || !strings.Contains(msg, "Usage: pixelfish new") {
		t.Fatalf("usage text = %q", msg)
	}
	if !strings.Contains(msg, "-background") {
		t.Fatalf("usage text does not list flags: %q", msg)
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	c, err := parseNewCmd([]string{"-output", filepath.Join(t.TempDir(), "x.png"), "-width", "0"}, nil)
	if err != nil {
		t.Fatalf("parseNewCmd: %v", err)
	}
	if err := c.Run(); err == nil || !strings.Contains(err.Error(), "positive") {
		t.Fatalf("Run error = %v, want size error", err)
	}
}

func TestPick(t *testing.T) {
	in := writeImage(t, "in.png", 2, 2, color.RGBA{0x84, 0xe0, 0xab, 0xff})
	c, err := parsePickCmd([]string{"-file", in, "1", "0"}, nil)
	if err != nil {
		t.Fatalf("parsePickCmd: %v", err)
	}
	var out bytes.Buffer
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "#84e0ab\n" {
		t.Fatalf("output = %q", got)
	}

	c, err = parsePickCmd([]string{"-file", in, "2", "0"}, nil)
	if err != nil {
		t.Fatalf("parsePickCmd: %v", err)
	}
	c.stdout = &out
	if err := c.Run(); err == nil || !strings.Contains(err.Error(), "outside") {
		t.Fatalf("Run error = %v, want outside error", err)
	}
}

func TestPickNamesPaletteColor(t *testing.T) {
	p, err := palette.ParseCSV(strings.NewReader("#84e0ab,Mint\n#000000\n"))
	if err != nil {
		t.Fatal(err)
	}
	r := &root{program: "pixelfish", palette: p}
	in := writeImage(t, "in.png", 1, 1, color.RGBA{0x84, 0xe0, 0xab, 0xff})
	c, err := parsePickCmd([]string{"-file", in, "0", "0"}, r)
	if err != nil {
		t.Fatalf("parsePickCmd: %v", err)
	}
	var out bytes.Buffer
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "#84e0ab Mint\n" {
		t.Fatalf("output = %q", got)
	}

	list, err := parsePaletteCmd(nil, r)
	if err != nil {
		t.Fatalf("parsePaletteCmd: %v", err)
	}
	out.Reset()
	list.stdout = &out
	if err := list.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Split(out.String(), "\n")
	if !strings.HasSuffix(lines[0], "Mint") || strings.Count(lines[1], "#000000") != 2 {
		t.Fatalf("palette listing = %q", out.String())
	}
}

func TestPaletteListsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.csv")
	if err := os.WriteFile(path, []byte("#102030,Ink\ncolorkey,#ff00ff\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := parsePaletteCmd([]string{"-file", path}, nil)
	if err != nil {
		t.Fatalf("parsePaletteCmd: %v", err)
	}
	var out bytes.Buffer
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "#102030") || !strings.Contains(got, "Ink") || !strings.Contains(got, "colorkey  #ff00ff") {
		t.Fatalf("output = %q", got)
	}
}

func TestEditLoad(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "new.png")
	c, err := parseEditCmd([]string{"-file", missing, "-width", "4", "-height", "3"}, nil)
	if err != nil {
		t.Fatalf("parseEditCmd: %v", err)
	}
	cv, path, err := c.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != missing || cv.Width() != 4 || cv.Height() != 3 {
		t.Fatalf("path %q size %dx%d", path, cv.Width(), cv.Height())
	}

	c.file = filepath.Join(dir, "new.jpg")
	if _, _, err := c.load(); !errors.Is(err, imageio.ErrUnsupportedFormat) {
		t.Fatalf("load of missing jpg error = %v", err)
	}

	gifPath := filepath.Join(dir, "in.gif")
	if err := os.WriteFile(gifPath, gifBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	c.file = gifPath
	cv, path, err = c.load()
	if err != nil {
		t.Fatalf("load gif: %v", err)
	}
	if path != "" || cv.Width() != 2 {
		t.Fatalf("gif path %q width %d, want unnamed 2 pixel canvas", path, cv.Width())
	}
}

func TestRootUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PIXELFISH_THEME", "")
	r := newRoot()
	err := r.Run([]string{"-theme", "light", "bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") {
		t.Fatalf("root usage = %q", uerr.Error())
	}
	if r.activeTheme == nil || r.activeTheme.Name != "Light" {
		t.Fatalf("theme = %+v, want Light", r.activeTheme)
	}
}

func TestRootConfigFlagsOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "test.rc")
	if err := os.WriteFile(path, []byte("brush_size = 9\n[notify]\nsave = true\ncopy = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newRoot()
	if err := r.Run([]string{"-config", path, "-notify-copy=false", "version"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.config.BrushSize != 9 {
		t.Fatalf("brush size = %d, want 9 from the config file", r.config.BrushSize)
	}
	if !r.saveAlerts || r.copyAlerts {
		t.Fatalf("save %v copy %v, want config save and flag copy", r.saveAlerts, r.copyAlerts)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/example/pixelfish/internal/appstate"
	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/palette"
)

// canvasFlags are the size and background of a blank canvas.
type canvasFlags struct {
	width      int
	height     int
	background string
}

func (c *canvasFlags) register(fs *flag.FlagSet, r *root) {
	cfg := r.settings()
	fs.IntVar(&c.width, "width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", cfg.Height, "canvas height in pixels")
	fs.StringVar(&c.background, "background", palette.Hex(cfg.Background), "background color name or hex value")
}

func (c *canvasFlags) newCanvas(r *root) (*canvas.Canvas, error) {
	bg, err := parseColorSpec(r.colors(), c.background)
	if err != nil {
		return nil, err
	}
	return canvas.New(c.width, c.height, bg, r.canvasOptions()...)
}

// parseColorSpec accepts a palette color name as well as anything
// palette.ParseColor understands.
func parseColorSpec(p *palette.Palette, s string) (color.RGBA, error) {
	if col, ok := p.Lookup(s); ok {
		return col, nil
	}
	return palette.ParseColor(s)
}

func expectInts(args []string, n int, op string) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("%s requires %d integer arguments", op, n)
	}
	vals := make([]int, n)
	for i, raw := range args[:n] {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", op, raw)
		}
		vals[i] = v
	}
	return vals, nil
}

// editCmd opens the editor window.
type editCmd struct {
	file string
	canvasFlags
	*root
	fs *flag.FlagSet
}

func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *editCmd) Program() string { return subProgram(c.root, "edit") }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to edit")
	c.canvasFlags.register(fs, r)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// load returns the canvas to edit and the file it is saved to. A missing
// file gives a blank canvas saved under that name. Files in formats that
// cannot be written are saved under a name chosen on first save.
func (c *editCmd) load() (*canvas.Canvas, string, error) {
	if c.file == "" {
		cv, err := c.newCanvas(c.root)
		return cv, "", err
	}
	_, formatErr := imageio.FormatFor(c.file)
	img, err := imageio.Load(c.file)
	switch {
	case err == nil:
		cv, err := canvas.FromImage(img, c.root.canvasOptions()...)
		if formatErr != nil {
			return cv, "", err
		}
		return cv, c.file, err
	case !errors.Is(err, os.ErrNotExist):
		return nil, "", err
	case formatErr != nil:
		return nil, "", formatErr
	}
	cv, err := c.newCanvas(c.root)
	return cv, c.file, err
}

func (c *editCmd) Run() error {
	cv, path, err := c.load()
	if err != nil {
		return err
	}
	opts := []appstate.Option{
		appstate.WithCanvas(cv, path),
		appstate.WithConfig(c.root.settings()),
		appstate.WithPalette(c.root.colors()),
	}
	if c.root != nil {
		opts = append(opts,
			appstate.WithTheme(c.root.activeTheme),
			appstate.WithNotifier(c.root.notifier),
		)
	}
	appstate.New(opts...).Run()
	return nil
}

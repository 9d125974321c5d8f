package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/example/pixelfish/internal/clipboard"
	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/palette"
)

// pickCmd prints the color of one pixel.
type pickCmd struct {
	file        string
	toClipboard bool
	x, y        int
	stdout      io.Writer
	*root
	fs *flag.FlagSet
}

func (c *pickCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *pickCmd) Program() string { return subProgram(c.root, "pick") }

func parsePickCmd(args []string, r *root) (*pickCmd, error) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	c := &pickCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to read")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the hex value to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, &UsageError{of: c, msg: "input file is required"}
	}
	xy, err := expectInts(fs.Args(), 2, "pick")
	if err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, &UsageError{of: c}
	}
	c.x, c.y = xy[0], xy[1]
	return c, nil
}

func (c *pickCmd) Run() error {
	img, err := imageio.Load(c.file)
	if err != nil {
		return err
	}
	if !image.Pt(c.x, c.y).In(img.Rect) {
		return fmt.Errorf("point %d,%d is outside the %dx%d image", c.x, c.y, img.Rect.Dx(), img.Rect.Dy())
	}
	col := img.RGBAAt(c.x, c.y)
	hex := palette.Hex(col)
	line := hex
	if i := c.root.colors().Index(col); i >= 0 {
		if label := c.root.colors().Entries[i].Label(); label != hex {
			line += " " + label
		}
	}
	fmt.Fprintln(c.stdout, line)
	if c.toClipboard {
		if err := clipboard.WriteText(hex); err != nil {
			return fmt.Errorf("copy color to clipboard: %w", err)
		}
		c.root.notifyCopy(hex, nil)
	}
	return nil
}

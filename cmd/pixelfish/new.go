package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pixelfish/internal/imageio"
)

// newCmd writes a blank image.
type newCmd struct {
	output string
	canvasFlags
	*root
	fs *flag.FlagSet
}

func (c *newCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *newCmd) Program() string { return subProgram(c.root, "new") }

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	c := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "output file path")
	c.canvasFlags.register(fs, r)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: c, msg: "output file is required"}
	}
	if _, err := imageio.FormatFor(c.output); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *newCmd) Run() error {
	cv, err := c.newCanvas(c.root)
	if err != nil {
		return err
	}
	if err := imageio.Save(c.output, cv.Image()); err != nil {
		return fmt.Errorf("save %s: %w", c.output, err)
	}
	fmt.Fprintf(os.Stderr, "saved %s (%dx%d)\n", c.output, cv.Width(), cv.Height())
	c.root.notifySave(c.output)
	return nil
}

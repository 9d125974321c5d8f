package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/pixelfish/internal/palette"
)

// paletteCmd lists palette colors.
type paletteCmd struct {
	file   string
	stdout io.Writer
	*root
	fs *flag.FlagSet
}

func (c *paletteCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *paletteCmd) Program() string { return subProgram(c.root, "palette") }

func parsePaletteCmd(args []string, r *root) (*paletteCmd, error) {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	c := &paletteCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "CSV palette to list instead of the configured one")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *paletteCmd) Run() error {
	p := c.root.colors()
	if c.file != "" {
		var err error
		if p, err = palette.Load(c.file); err != nil {
			return err
		}
	}
	for i, e := range p.Entries {
		fmt.Fprintf(c.stdout, "%2d  %-9s  %s\n", i, palette.Hex(e.Color), e.Label())
	}
	fmt.Fprintf(c.stdout, "colorkey  %s\n", palette.Hex(p.Colorkey))
	return nil
}

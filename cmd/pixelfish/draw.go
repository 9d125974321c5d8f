package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/clipboard"
	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/palette"
	"github.com/example/pixelfish/internal/tool"
)

// drawOp is one painting operation with its integer arguments.
type drawOp struct {
	name string
	args []int
}

// opArity is the number of integer arguments each operation takes.
var opArity = map[string]int{
	"brush": 2,
	"line":  4,
	"fill":  2,
	"erase": 2,
}

// drawCmd applies tool operations to an image file without a window.
type drawCmd struct {
	file        string
	output      string
	toClipboard bool
	colorSpec   string
	color       color.RGBA
	size        int
	square      bool
	ops         []drawOp
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Program() string { return subProgram(d.root, "draw") }

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	cfg := r.settings()
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	defColor := palette.Hex(r.colors().At(0))
	if cfg.Colors.Left != nil {
		defColor = palette.Hex(*cfg.Colors.Left)
	}
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", defColor, "paint color: palette name, color name or hex value")
	fs.IntVar(&d.size, "size", cfg.BrushSize, "brush size in pixels")
	fs.BoolVar(&d.square, "square", !cfg.BrushRound, "use a square brush instead of a round one")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.ops, err = parseOps(positionals)
	if err != nil {
		return nil, err
	}
	d.color, err = parseColorSpec(r.colors(), d.colorSpec)
	if err != nil {
		return nil, err
	}
	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.output == "" {
		d.output = d.file
	}
	if _, err := imageio.FormatFor(d.output); err != nil {
		return nil, err
	}
	if d.size < 1 {
		d.size = 1
	}
	return d, nil
}

func parseOps(positionals []string) ([]drawOp, error) {
	var ops []drawOp
	for len(positionals) > 0 {
		name := strings.ToLower(positionals[0])
		n, ok := opArity[name]
		if !ok {
			return nil, fmt.Errorf("unsupported operation %q", positionals[0])
		}
		vals, err := expectInts(positionals[1:], n, name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, drawOp{name: name, args: vals})
		positionals = positionals[1+n:]
	}
	return ops, nil
}

func (d *drawCmd) Run() error {
	img, err := imageio.Load(d.file)
	if err != nil {
		return err
	}
	cv, err := canvas.FromImage(img, d.root.canvasOptions()...)
	if err != nil {
		return err
	}
	s := tool.NewSession(cv,
		tool.WithPalette(d.root.colors()),
		tool.WithBrush(d.size, !d.square),
		tool.WithColors(d.color, d.color),
	)
	for _, op := range d.ops {
		d.apply(s, op)
	}
	if err := imageio.Save(d.output, cv.Image()); err != nil {
		return fmt.Errorf("save %s: %w", d.output, err)
	}
	cv.MarkSaved()
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "applied %d operations, saved %s\n", len(d.ops), saved)
	d.root.notifySave(saved)
	if d.toClipboard {
		snap := cv.Snapshot()
		if err := clipboard.WriteImage(snap); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail, snap)
	}
	return nil
}

// apply runs op through the session the way mouse input would, aiming at
// pixel centers.
func (d *drawCmd) apply(s *tool.Session, op drawOp) {
	at := func(i int) (float64, float64) {
		return float64(op.args[i]) + 0.5, float64(op.args[i+1]) + 0.5
	}
	brush := tool.RoundBrush
	if d.square {
		brush = tool.SquareBrush
	}
	switch op.name {
	case "brush", "erase":
		if op.name == "erase" {
			s.SetTool(tool.Eraser)
		} else {
			s.SetTool(brush)
		}
		x, y := at(0)
		s.MouseDown(x, y, tool.Left)
		s.MouseUp(x, y, tool.Left)
	case "line":
		s.SetTool(brush)
		x0, y0 := at(0)
		x1, y1 := at(2)
		s.MouseDown(x0, y0, tool.Left)
		s.MouseUp(x1, y1, tool.Left)
	case "fill":
		s.SetTool(tool.BucketFill)
		x, y := at(0)
		s.MouseDown(x, y, tool.Left)
		s.MouseUp(x, y, tool.Left)
	}
}

var drawFlagNames = map[string]struct{}{
	"file":         {},
	"output":       {},
	"to-clipboard": {},
	"to-clip":      {},
	"color":        {},
	"size":         {},
	"square":       {},
}

var drawBoolFlags = map[string]struct{}{
	"to-clipboard": {},
	"to-clip":      {},
	"square":       {},
}

// splitDrawArgs separates known flags from operation words so flags may
// follow the operations. Negative numbers stay positional.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

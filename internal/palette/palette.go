// Package palette holds the colors offered for painting.
package palette

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/pixelfish/internal/canvas"
)

// ErrEmpty is returned when a palette source holds no colors.
var ErrEmpty = errors.New("palette has no colors")

// Entry is a palette color with an optional display name.
type Entry struct {
	Name  string
	Color color.RGBA
}

// Label returns the entry name, or its hex value when it has none.
func (e Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return Hex(e.Color)
}

// Palette is an ordered list of colors plus the colorkey used by the
// eraser and by formats without transparency.
type Palette struct {
	Colorkey color.RGBA
	Entries  []Entry
}

var defaultColors = []uint32{
	0xf1fbfeff, 0xa8f7feff, 0x84e0abff,
	0x8fb569ff, 0xa7ab59ff, 0x99943cff,
	0x7a6f18ff, 0x7a6507ff,
}

// Default returns the built-in palette. The colorkey is fully transparent.
func Default() *Palette {
	p := &Palette{}
	for _, v := range defaultColors {
		p.Entries = append(p.Entries, Entry{Color: canvas.Hex(v)})
	}
	return p
}

// Len returns the number of colors.
func (p *Palette) Len() int { return len(p.Entries) }

// At returns the color at idx, wrapping around in both directions.
func (p *Palette) At(idx int) color.RGBA {
	n := len(p.Entries)
	if n == 0 {
		return p.Colorkey
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return p.Entries[idx].Color
}

// Index returns the position of col, or -1.
func (p *Palette) Index(col color.RGBA) int {
	for i, e := range p.Entries {
		if e.Color == col {
			return i
		}
	}
	return -1
}

// Lookup finds a color by entry name, ignoring case.
func (p *Palette) Lookup(name string) (color.RGBA, bool) {
	for _, e := range p.Entries {
		if e.Name != "" && strings.EqualFold(e.Name, name) {
			return e.Color, true
		}
	}
	return color.RGBA{}, false
}

// ParseCSV reads one color per record. The first field is the color and an
// optional second field its name. A record whose first field is "colorkey"
// sets the colorkey from its second field instead. Blank lines and lines
// starting with '#' followed by a space are skipped.
func ParseCSV(r io.Reader) (*Palette, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	p := &Palette{}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		first := strings.TrimSpace(rec[0])
		if first == "" || strings.HasPrefix(first, "# ") {
			continue
		}
		if strings.EqualFold(first, "colorkey") {
			if len(rec) < 2 {
				return nil, fmt.Errorf("palette record %d: colorkey needs a color", line)
			}
			col, err := ParseColor(rec[1])
			if err != nil {
				return nil, fmt.Errorf("palette record %d: %w", line, err)
			}
			p.Colorkey = col
			continue
		}
		col, err := ParseColor(first)
		if err != nil {
			return nil, fmt.Errorf("palette record %d: %w", line, err)
		}
		e := Entry{Color: col}
		if len(rec) > 1 {
			e.Name = strings.TrimSpace(rec[1])
		}
		p.Entries = append(p.Entries, e)
	}
	if len(p.Entries) == 0 {
		return nil, ErrEmpty
	}
	return p, nil
}

// Load reads a CSV palette from path.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()
	p, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA, 0xRRGGBBAA, "transparent" and the
// SVG color names.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if spec == "transparent" || spec == "none" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(spec, "#"):
		hex := spec[1:]
		switch len(hex) {
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			return canvas.Hex(uint32(v)<<8 | 0xff), nil
		case 8:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			return canvas.Hex(uint32(v)), nil
		}
	case strings.HasPrefix(spec, "0x") && len(spec) == 10:
		v, err := strconv.ParseUint(spec[2:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return canvas.Hex(uint32(v)), nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// Hex formats col as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(col color.RGBA) string {
	if col.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%08x", canvas.Pack(col))
}

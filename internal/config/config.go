package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/pixelfish/internal/canvas"
	"github.com/example/pixelfish/internal/palette"
	"github.com/example/pixelfish/internal/theme"
	"github.com/example/pixelfish/internal/tool"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Colors holds the initial button colors. A nil entry keeps the palette
// default.
type Colors struct {
	Left  *color.RGBA
	Right *color.RGBA
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	HistorySize int
	BrushSize   int
	BrushRound  bool
	Zoom        float64
	Palette     string // CSV palette path; empty for the built-in one
	Width       int    // Size of new canvases
	Height      int
	Background  color.RGBA
	Colors      Colors
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// Default sizes and zoom for new canvases.
const (
	DefaultWidth  = 60
	DefaultHeight = 50
	DefaultZoom   = 15.0
)

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:       "", // Default to empty to allow fallback to Env/Default
		HistorySize: canvas.DefaultHistorySize,
		BrushSize:   tool.DefaultBrushSize,
		BrushRound:  true,
		Zoom:        DefaultZoom,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Background:  color.RGBA{},
		Themes:      make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "history_size = %d\n", c.HistorySize)
	fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	fmt.Fprintf(&sb, "brush_round = %v\n", c.BrushRound)
	fmt.Fprintf(&sb, "zoom = %g\n", c.Zoom)
	if c.Palette != "" {
		fmt.Fprintf(&sb, "palette = %s\n", c.Palette)
	}
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	fmt.Fprintf(&sb, "background = %s\n", palette.Hex(c.Background))
	sb.WriteString("\n")

	if c.Colors.Left != nil || c.Colors.Right != nil {
		sb.WriteString("[colors]\n")
		if c.Colors.Left != nil {
			fmt.Fprintf(&sb, "left = %s\n", palette.Hex(*c.Colors.Left))
		}
		if c.Colors.Right != nil {
			fmt.Fprintf(&sb, "right = %s\n", palette.Hex(*c.Colors.Right))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Format(&sb, " = ")
		sb.WriteString("\n")
	}

	return sb.String()
}

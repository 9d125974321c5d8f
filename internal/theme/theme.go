package theme

import (
	"image/color"
)

// Theme defines the colors of the editor window around the canvas.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the canvas
	Foreground color.RGBA // Cursor outline and other overlays

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
	StatusModified   color.RGBA // Unsaved-changes marker

	// Palette strip
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA

	// Canvas
	CheckerLight color.RGBA // Shown through transparent pixels
	CheckerDark  color.RGBA
	Shadow       color.RGBA // Drop shadow under the canvas; zero alpha disables it
}

// Default returns the built-in dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Dark",
		Background:       color.RGBA{30, 30, 30, 255},
		Foreground:       color.RGBA{255, 255, 255, 255},
		StatusBackground: color.RGBA{30, 30, 30, 255},
		StatusText:       color.RGBA{255, 255, 255, 255},
		StatusModified:   color.RGBA{255, 170, 60, 255},
		SwatchBorder:     color.RGBA{90, 90, 90, 255},
		SwatchSelected:   color.RGBA{255, 255, 255, 255},
		CheckerLight:     color.RGBA{0xcc, 0xcc, 0xcc, 255},
		CheckerDark:      color.RGBA{0x55, 0x55, 0x55, 255},
		Shadow:           color.RGBA{0, 0, 0, 140},
	}
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelfish/internal/canvas"
)

// StatusHeight is the height of the status bar at the bottom of the window.
const StatusHeight = 24

const statusFontSize = 16

var (
	faceOnce   sync.Once
	statusFace font.Face
)

// face returns the status bar font, falling back to basicfont when the
// bundled TrueType font cannot be loaded.
func face() font.Face {
	faceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			statusFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: statusFontSize, DPI: 72, Hinting: font.HintingFull})
		}
		if err != nil {
			log.Printf("status font: %v", err)
			statusFace = basicfont.Face7x13
		}
	})
	return statusFace
}

// StatusLine formats the tool description together with the history depth
// and zoom, for example "Round brush (5)   undo 3/64  redo 1   1500%".
func StatusLine(tool string, st canvas.Status, zoom float64) string {
	return fmt.Sprintf("%s   undo %d/%d  redo %d   %.0f%%", tool, st.UndoCount, st.HistorySize, st.RedoCount, zoom*100)
}

// drawText draws text with its baseline placed so that it is vertically
// centered in r.
func drawText(dst *image.RGBA, r image.Rectangle, text string, col color.RGBA) {
	f := face()
	m := f.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	baseline := r.Min.Y + (r.Dy()-height)/2 + m.Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.P(r.Min.X, baseline),
	}
	d.DrawString(text)
}

// MeasureText returns the advance width of text in the status font.
func MeasureText(text string) int {
	return font.MeasureString(face(), text).Ceil()
}

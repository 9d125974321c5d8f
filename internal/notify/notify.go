// Package notify sends desktop notifications after an image is saved or
// copied.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/example/pixelfish/internal/imageio"
	"github.com/example/pixelfish/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventSave Event = "save"
	EventCopy Event = "copy"
)

// previewSize is the longest side of a copied image's notification icon.
// Pixel art is usually far smaller, so previews are scaled up.
const previewSize = 128

// Preferences holds the notification title and one body template per
// event. A template has a single %s for the file or image description.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in title and texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Pixelfish",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies PIXELFISH_NOTIFY_TITLE, PIXELFISH_NOTIFY_SAVE_TEXT
// and PIXELFISH_NOTIFY_COPY_TEXT over the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PIXELFISH_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, env := range map[Event]string{
		EventSave: "PIXELFISH_NOTIFY_SAVE_TEXT",
		EventCopy: "PIXELFISH_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// send is replaced in tests.
var send = platform.Notify

// Notifier sends notifications for the events that were enabled. All
// events start disabled. A nil Notifier sends nothing.
type Notifier struct {
	title     string
	templates map[Event]string
	enabled   map[Event]bool
}

// New creates a Notifier from prefs.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		title:     prefs.Title,
		templates: make(map[Event]string, len(prefs.Templates)),
		enabled:   make(map[Event]bool),
	}
	for k, v := range prefs.Templates {
		n.templates[k] = v
	}
	return n
}

// Enable turns notifications for event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports that path was written. The saved file doubles as the icon.
func (n *Notifier) Save(path string) {
	if !n.on(EventSave) {
		return
	}
	detail := path
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy described by detail. A non-nil img is
// shown as the icon through a temporary scaled preview.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.on(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	opts := platform.Options{Transient: true}
	if img != nil {
		path, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer removePreview(path)
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.templates[event])
	if tmpl == "" {
		return
	}
	body := fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	if err := send(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// scalePreview enlarges img by a whole factor so its longest side is close
// to previewSize without blurring the pixels. Large images are returned as
// they are.
func scalePreview(img image.Image) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if longest == 0 || longest*2 > previewSize {
		return img
	}
	f := previewSize / longest
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*f, b.Dy()*f))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePreview(img image.Image) (string, error) {
	data, err := imageio.EncodePNG(scalePreview(img))
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "pixelfish-preview-*.png")
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func removePreview(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove preview: %v", err)
	}
}

package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixelfish/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledByDefault(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("x.png")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("x.png")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications, want none", len(*got))
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.title != "Pixelfish" || s.body != "Saved "+path {
		t.Fatalf("notification = %q / %q", s.title, s.body)
	}
	if s.opts.IconPath != path {
		t.Fatalf("icon = %q, want %q", s.opts.IconPath, path)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied image to clipboard" {
		t.Fatalf("body = %q", s.body)
	}
	if !s.iconExisted {
		t.Fatal("preview icon missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview %q not cleaned up: %v", s.opts.IconPath, err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PIXELFISH_NOTIFY_TITLE", "Paint")
	t.Setenv("PIXELFISH_NOTIFY_COPY_TEXT", "Clipboard now holds %s")
	prefs := LoadPreferences()
	if prefs.Title != "Paint" {
		t.Fatalf("title = %q", prefs.Title)
	}
	got := capture(t)
	n := New(prefs)
	n.Enable(EventCopy, true)
	n.Copy("#ff0000", nil)
	if len(*got) != 1 || !strings.HasPrefix((*got)[0].body, "Clipboard now holds #ff0000") {
		t.Fatalf("sent %+v", *got)
	}
}

func TestScalePreview(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 10, 5))
	small.Pix[0], small.Pix[3] = 0xff, 0xff
	got := scalePreview(small)
	if got.Bounds() != image.Rect(0, 0, 120, 60) {
		t.Fatalf("preview bounds = %v, want 120x60", got.Bounds())
	}
	if r, _, _, _ := got.At(11, 11).RGBA(); r != 0xffff {
		t.Fatalf("scaled pixel (11,11) red = %#x, want the source pixel (0,0)", r)
	}
	if r, _, _, _ := got.At(12, 0).RGBA(); r != 0 {
		t.Fatalf("scaled pixel (12,0) red = %#x, want the source pixel (1,0)", r)
	}

	big := image.NewRGBA(image.Rect(0, 0, 100, 10))
	if scalePreview(big) != image.Image(big) {
		t.Fatal("large image was rescaled")
	}
}

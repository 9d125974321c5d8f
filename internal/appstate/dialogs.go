package appstate

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"

	"github.com/example/pixelfish/internal/imageio"
)

// errCancelled is returned when the user dismisses a dialog.
var errCancelled = errors.New("cancelled")

// Dialogs asks the user for file names and confirmations.
type Dialogs interface {
	// OpenFile returns the image file to open.
	OpenFile(dir string) (string, error)
	// SaveFile returns where to save; current is the file being edited.
	SaveFile(current string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(title, message string) bool
}

// NativeDialogs shows the platform file choosers and message boxes.
type NativeDialogs struct{}

func (NativeDialogs) OpenFile(dir string) (string, error) {
	b := dialog.File().Title("Open image").Filter("Images", "png", "bmp", "tif", "tiff", "gif", "jpg", "jpeg", "webp")
	if dir != "" {
		b = b.SetStartDir(dir)
	}
	return nativeResult(b.Load())
}

func (NativeDialogs) SaveFile(current string) (string, error) {
	b := dialog.File().Title("Save image")
	for _, f := range imageio.Formats {
		b = b.Filter(string(f)+" image", f.Extensions()...)
	}
	if current != "" {
		b = b.SetStartDir(filepath.Dir(current))
	}
	path, err := nativeResult(b.Save())
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += "." + imageio.PNG.Extensions()[0]
	}
	return path, nil
}

func (NativeDialogs) Confirm(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

func nativeResult(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errCancelled
	}
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errCancelled
	}
	return filepath.Clean(path), nil
}

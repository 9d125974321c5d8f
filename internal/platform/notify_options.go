// Package platform talks to the host desktop.
package platform

import "time"

// AppName identifies the application to notification centers.
const AppName = "Pixelfish"

// DefaultTimeout is how long a notification stays visible unless Options
// says otherwise.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// Transient asks the notification center not to keep the message in its
	// history.
	Transient bool
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

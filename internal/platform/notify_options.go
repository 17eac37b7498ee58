// Package platform delivers desktop notifications through the host's native
// notification service.
package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender; empty means "Inkboard".
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Inkboard"
	}
	return o.AppName
}

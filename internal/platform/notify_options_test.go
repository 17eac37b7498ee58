package platform

import "testing"

func TestOptionsAppName(t *testing.T) {
	if got := (Options{}).appName(); got != "Inkboard" {
		t.Errorf("default app name %q", got)
	}
	if got := (Options{AppName: "Board"}).appName(); got != "Board" {
		t.Errorf("app name %q", got)
	}
}

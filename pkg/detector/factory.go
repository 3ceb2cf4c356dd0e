package detector

import (
	"fmt"
	"os"

	"github.com/StkConnects/Game-Tracker/pkg/integrations/wayland"
	"github.com/StkConnects/Game-Tracker/pkg/integrations/x11"
	"github.com/StkConnects/Game-Tracker/pkg/window"
)

// New picks the detector for the current display server. On Wayland the
// GNOME detector is tried first, with X11 (Xwayland) as fallback.
func New() (window.Detector, error) {
	switch DetectDisplayServer() {
	case "wayland":
		if d := wayland.NewDetector(); d.IsAvailable() {
			return d, nil
		}
		if d, err := x11.NewDetector(); err == nil {
			return d, nil
		}
		return nil, fmt.Errorf("no usable Wayland window detector (gdbus or Xwayland required)")

	case "x11":
		return x11.NewDetector()
	}

	return nil, fmt.Errorf("no supported display server detected")
}

func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}

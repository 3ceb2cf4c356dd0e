package window

// Info represents information about the currently focused window
type Info struct {
	Title         string
	AppName       string
	Class         string
	DisplayServer string // "x11" or "wayland"
}

// Detector is the interface that all window detection implementations must satisfy
type Detector interface {
	// GetActiveWindow returns information about the currently focused
	// window. A nil Info or empty Title means no window could be read.
	GetActiveWindow() (*Info, error)

	// IsAvailable checks if this detector can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the display server type ("x11" or "wayland")
	GetDisplayServer() string

	// Close cleans up any resources used by the detector
	Close() error
}

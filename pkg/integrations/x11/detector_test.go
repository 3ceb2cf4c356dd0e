package x11

import (
	"os"
	"testing"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantInstance string
		wantClass    string
	}{
		{
			name:         "Instance and class",
			data:         []byte("steam\x00Steam\x00"),
			wantInstance: "steam",
			wantClass:    "Steam",
		},
		{
			name:         "Instance only",
			data:         []byte("dota2\x00"),
			wantInstance: "dota2",
			wantClass:    "",
		},
		{
			name:         "Empty property",
			data:         nil,
			wantInstance: "",
			wantClass:    "",
		},
		{
			name:         "No trailing null",
			data:         []byte("firefox\x00Firefox"),
			wantInstance: "firefox",
			wantClass:    "Firefox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance, class := parseClass(tt.data)
			if instance != tt.wantInstance || class != tt.wantClass {
				t.Errorf("parseClass(%q) = %q, %q; want %q, %q",
					tt.data, instance, class, tt.wantInstance, tt.wantClass)
			}
		})
	}
}

func TestNewDetector(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X display available")
	}

	d, err := NewDetector()
	if err != nil {
		t.Skipf("could not connect to X server: %v", err)
	}
	defer d.Close()

	if !d.IsAvailable() {
		t.Error("IsAvailable() = false with open connection and DISPLAY set")
	}

	if d.GetDisplayServer() != "x11" {
		t.Errorf("GetDisplayServer() = %s, want x11", d.GetDisplayServer())
	}

	info, err := d.GetActiveWindow()
	if err != nil {
		t.Logf("GetActiveWindow() error (may be expected without focus): %v", err)
		return
	}
	t.Logf("Focused window: %s (%s / %s)", info.Title, info.AppName, info.Class)
}

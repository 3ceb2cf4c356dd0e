package window

import "testing"

type MockDetector struct {
	info          *Info
	err           error
	isAvailable   bool
	displayServer string
	closeError    error
}

func (m *MockDetector) GetActiveWindow() (*Info, error) {
	return m.info, m.err
}

func (m *MockDetector) IsAvailable() bool {
	return m.isAvailable
}

func (m *MockDetector) GetDisplayServer() string {
	return m.displayServer
}

func (m *MockDetector) Close() error {
	return m.closeError
}

func TestMockDetector(t *testing.T) {
	var _ Detector = (*MockDetector)(nil)

	mock := &MockDetector{
		info: &Info{
			Title:         "Steam - CS:GO",
			AppName:       "steam",
			Class:         "Steam",
			DisplayServer: "x11",
		},
		isAvailable:   true,
		displayServer: "x11",
	}

	info, err := mock.GetActiveWindow()
	if err != nil {
		t.Errorf("GetActiveWindow() error: %v", err)
	}
	if info.Title != "Steam - CS:GO" {
		t.Errorf("Title = %s, want Steam - CS:GO", info.Title)
	}

	if !mock.IsAvailable() {
		t.Error("IsAvailable() = false, want true")
	}

	if mock.GetDisplayServer() != "x11" {
		t.Errorf("GetDisplayServer() = %s, want x11", mock.GetDisplayServer())
	}

	if err := mock.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestInfoFields(t *testing.T) {
	info := Info{
		Title:         "VALORANT",
		AppName:       "riot-client",
		Class:         "RiotClient",
		DisplayServer: "wayland",
	}

	if info.Title != "VALORANT" {
		t.Errorf("Title = %s, want VALORANT", info.Title)
	}
	if info.AppName != "riot-client" {
		t.Errorf("AppName = %s, want riot-client", info.AppName)
	}
	if info.DisplayServer != "wayland" {
		t.Errorf("DisplayServer = %s, want wayland", info.DisplayServer)
	}
}

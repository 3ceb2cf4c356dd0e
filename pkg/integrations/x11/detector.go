package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/StkConnects/Game-Tracker/pkg/window"
)

// Detector implements window.Detector for X11 using a native connection.
// The connection and interned atoms are held for the lifetime of the
// detector so each poll is a couple of round-trips, not a new handshake.
type Detector struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// NewDetector connects to the X server and interns the atoms used for
// focused-window lookup.
func NewDetector() (*Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	d := &Detector{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		d.atoms[name] = reply.Atom
	}

	return d, nil
}

// IsAvailable checks if X11 detection is available
func (d *Detector) IsAvailable() bool {
	return d.conn != nil && os.Getenv("DISPLAY") != ""
}

// GetDisplayServer returns "x11"
func (d *Detector) GetDisplayServer() string {
	return "x11"
}

// GetActiveWindow returns information about the currently focused window
func (d *Detector) GetActiveWindow() (*window.Info, error) {
	id, err := d.activeWindow()
	if err != nil {
		return nil, err
	}

	instance, class := d.windowClass(id)

	return &window.Info{
		Title:         d.windowName(id),
		AppName:       instance,
		Class:         class,
		DisplayServer: "x11",
	}, nil
}

// activeWindow resolves the focused top-level window. _NET_ACTIVE_WINDOW is
// preferred; input focus is the fallback for window managers that do not set
// it. Focus can be transiently unset during switches, hence the short retry.
func (d *Detector) activeWindow() (xproto.Window, error) {
	for i := 0; i < 5; i++ {
		id := d.activeWindowFromProperty()
		if id != 0 && d.hasName(id) {
			return id, nil
		}

		id = d.activeWindowFromInputFocus()
		if id != 0 && id != d.root {
			top := d.topLevelParent(id)
			if top != 0 && d.hasName(top) {
				return top, nil
			}
		}

		time.Sleep(20 * time.Millisecond)
	}

	return 0, fmt.Errorf("no active window found")
}

func (d *Detector) activeWindowFromProperty() xproto.Window {
	data, err := d.property(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (d *Detector) activeWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil {
		return 0
	}
	return reply.Focus
}

func (d *Detector) topLevelParent(id xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(d.conn, id).Reply()
		if err != nil || reply.Parent == d.root || reply.Parent == 0 {
			return id
		}
		id = reply.Parent
	}
}

func (d *Detector) hasName(id xproto.Window) bool {
	data, _ := d.property(id, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 1)
	if len(data) > 0 {
		return true
	}
	data, _ = d.property(id, d.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

func (d *Detector) windowName(id xproto.Window) string {
	data, err := d.property(id, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = d.property(id, d.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

func (d *Detector) windowClass(id xproto.Window) (instance, class string) {
	data, err := d.property(id, d.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil {
		return "", ""
	}
	return parseClass(data)
}

// parseClass splits a WM_CLASS property value into its instance and class
// components. The property is two null-terminated strings.
func parseClass(data []byte) (instance, class string) {
	if len(data) == 0 {
		return "", ""
	}
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

func (d *Detector) property(id xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(d.conn, false, id, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// Close cleans up resources
func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}

//go:build webkitgtk

package webkit

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/embedview/internal/domain/entity"
)

// Window is a GTK container a web view is appended to.
type Window struct {
	Box      *gtk.Box
	toplevel *gtk.Window
	geometry entity.Geometry
	sizes    chan entity.Geometry
}

// NewWindow wraps an existing container.
func NewWindow(box *gtk.Box) *Window {
	return &Window{Box: box}
}

// NewToplevel creates and presents a top-level window sized to geom.
// Without a display the returned window is not valid.
func NewToplevel(title string, geom entity.Geometry) *Window {
	if !gtk.InitCheck() {
		return &Window{geometry: geom}
	}
	win := gtk.NewWindow()
	win.SetTitle(title)
	win.SetDefaultSize(geom.Width, geom.Height)

	box := gtk.NewBox(gtk.OrientationVertical, 0)
	win.SetChild(box)

	w := &Window{Box: box, toplevel: win, geometry: geom, sizes: make(chan entity.Geometry, 16)}
	report := func() {
		width, height := win.DefaultSize()
		select {
		case w.sizes <- entity.NewGeometry(0, 0, width, height):
		default:
		}
	}
	win.Connect("notify::default-width", report)
	win.Connect("notify::default-height", report)
	win.Present()
	return w
}

// Sizes delivers the top-level size after each user resize. It is nil for
// windows created with NewWindow.
func (w *Window) Sizes() <-chan entity.Geometry {
	return w.sizes
}

// Handle implements port.NativeWindow.
func (w *Window) Handle() uintptr {
	if w == nil || w.Box == nil {
		return 0
	}
	return w.Box.Native()
}

// Valid implements port.NativeWindow.
func (w *Window) Valid() bool {
	return w != nil && w.Box != nil
}

// Destroy closes the top-level window, if this Window created one.
func (w *Window) Destroy() {
	if w.toplevel != nil {
		w.toplevel.Destroy()
		w.toplevel = nil
	}
	w.Box = nil
}

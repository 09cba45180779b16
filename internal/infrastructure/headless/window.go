package headless

import (
	"sync/atomic"

	"github.com/bnema/embedview/internal/domain/entity"
)

const sizeQueue = 16

var windowSeq atomic.Uintptr

// Window is an off-screen surface. It stands in for a toolkit window when
// the engine runs without a display.
type Window struct {
	handle    uintptr
	destroyed atomic.Bool
	sizes     chan entity.Geometry
}

// NewWindow allocates a window with a process-unique handle.
func NewWindow() *Window {
	return &Window{
		handle: windowSeq.Add(1),
		sizes:  make(chan entity.Geometry, sizeQueue),
	}
}

// Handle implements port.NativeWindow.
func (w *Window) Handle() uintptr { return w.handle }

// Valid implements port.NativeWindow.
func (w *Window) Valid() bool { return w != nil && !w.destroyed.Load() }

// Destroy invalidates the window; later browser creation on it fails.
func (w *Window) Destroy() { w.destroyed.Store(true) }

// SetSize reports a new surface size the way a toolkit reports a user
// resize. It returns false if the notification was dropped because the
// queue is full.
func (w *Window) SetSize(geom entity.Geometry) bool {
	select {
	case w.sizes <- geom:
		return true
	default:
		return false
	}
}

// Sizes delivers the sizes reported through SetSize.
func (w *Window) Sizes() <-chan entity.Geometry { return w.sizes }

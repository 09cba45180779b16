package port

import "github.com/bnema/embedview/internal/domain/entity"

// NativeWindow is the toolkit-owned surface a browser renders into.
type NativeWindow interface {
	// Handle returns the platform handle (XID, GtkWidget pointer, ...).
	Handle() uintptr
	// Valid reports whether the window can still host a browser.
	Valid() bool
}

// ViewObserver receives rendering hints destined for the windowing toolkit.
type ViewObserver interface {
	NeedsRepaint(rect entity.Geometry)
	PreferredSizeChanged(size entity.Size)
}

package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

// HostOption configures a Host.
type HostOption func(*Host)

// WithObserver forwards repaint and preferred-size hints to o.
func WithObserver(o port.ViewObserver) HostOption {
	return func(h *Host) {
		h.observer = o
	}
}

// WithOptions overrides the runtime's bridge options for one host.
func WithOptions(opts Options) HostOption {
	return func(h *Host) {
		h.opts = opts
	}
}

// Host owns exactly one engine browser bound to a native window.
//
// A Host is not safe for concurrent use: all methods, and the runtime pump
// that feeds it events, must run on the UI goroutine.
type Host struct {
	rt       *Runtime
	id       port.BrowserID
	window   port.NativeWindow
	geometry entity.Geometry
	observer port.ViewObserver
	opts     Options

	nav     *Navigator
	scripts *ScriptBridge

	closing        bool
	closed         bool
	closeConfirmed bool
}

// NewHost creates a browser in window. It returns once the engine has
// accepted the request; when initialURL is set the host starts in the
// Loading phase.
func NewHost(
	ctx context.Context,
	rt *Runtime,
	window port.NativeWindow,
	initialURL string,
	geometry entity.Geometry,
	opts ...HostOption,
) (*Host, error) {
	log := componentLogger(ctx, "browser-host")

	if window == nil || !window.Valid() {
		return nil, &BrowserCreationError{Reason: "invalid native window", Err: ErrInvalidWindow}
	}
	if err := rt.EnsureStarted(ctx); err != nil {
		return nil, &BrowserCreationError{Reason: "engine unavailable", Err: err}
	}

	h := &Host{
		rt:       rt,
		window:   window,
		geometry: geometry,
		opts:     rt.opts,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.nav = newNavigator(h)
	h.scripts = newScriptBridge(h)

	spec := port.BrowserSpec{
		Window:     window,
		Geometry:   geometry,
		InitialURL: initialURL,
	}
	if initialURL != "" {
		spec.Generation = h.nav.begin(navFresh, initialURL, -1, "", false).gen
	}

	rt.acquire()
	id, err := rt.engine.CreateBrowser(ctx, spec)
	if err != nil {
		rt.release()
		log.Warn().Err(err).Str("geometry", geometry.String()).Msg("engine refused browser")
		return nil, &BrowserCreationError{Reason: "engine refused browser", Err: err}
	}
	h.id = id
	rt.register(h)

	log.Debug().
		Uint64("browser_id", uint64(id)).
		Uint64("window", uint64(window.Handle())).
		Str("geometry", geometry.String()).
		Str("initial_url", initialURL).
		Msg("browser created")
	return h, nil
}

// ID returns the engine browser id.
func (h *Host) ID() port.BrowserID {
	return h.id
}

// Geometry returns the region the browser is bound to.
func (h *Host) Geometry() entity.Geometry {
	return h.geometry
}

// Navigator returns the navigation state machine of this host.
func (h *Host) Navigator() *Navigator {
	return h.nav
}

// Scripts returns the script bridge of this host.
func (h *Host) Scripts() *ScriptBridge {
	return h.scripts
}

// State returns a copy of the navigation state.
func (h *Host) State() entity.NavigationState {
	return h.nav.State()
}

// Closed reports whether Close has completed.
func (h *Host) Closed() bool {
	return h.closed
}

func (h *Host) ready() bool {
	return !h.closed && !h.closing
}

// Load navigates to urlOrHTML. Input whose first non-blank character is '<'
// is loaded as a document anchored at baseURL.
func (h *Host) Load(ctx context.Context, urlOrHTML, baseURL string) error {
	if looksLikeMarkup(urlOrHTML) {
		return h.nav.LoadHTML(ctx, urlOrHTML, baseURL)
	}
	return h.nav.LoadURL(ctx, urlOrHTML)
}

// LoadHTML loads markup as a document anchored at baseURL.
func (h *Host) LoadHTML(ctx context.Context, html, baseURL string) error {
	return h.nav.LoadHTML(ctx, html, baseURL)
}

// Resize rebinds the browser to geometry. Unchanged geometry is a no-op.
func (h *Host) Resize(ctx context.Context, geometry entity.Geometry) error {
	if !h.ready() {
		return ErrBridgeNotReady
	}
	if geometry == h.geometry {
		return nil
	}
	if err := h.rt.engine.Resize(ctx, h.id, geometry); err != nil {
		return fmt.Errorf("resize browser: %w", err)
	}
	h.geometry = geometry
	componentLogger(ctx, "browser-host").Trace().
		Uint64("browser_id", uint64(h.id)).
		Str("geometry", geometry.String()).
		Msg("browser resized")
	return nil
}

// Close tears the browser down and waits, pumping, for the engine to confirm.
// Pending evaluations complete with ErrBridgeNotReady. Only the first call
// reaches the engine; later calls return nil.
func (h *Host) Close(ctx context.Context) error {
	if h.closed || h.closing {
		return nil
	}
	h.closing = true
	log := componentLogger(ctx, "browser-host")

	var closeErr error
	if err := h.rt.engine.CloseBrowser(ctx, h.id); err != nil {
		closeErr = fmt.Errorf("close browser: %w", err)
	} else {
		closeErr = h.awaitClosed(ctx)
	}

	h.closed = true
	h.rt.unregister(h.id)
	h.scripts.abort(ErrBridgeNotReady)
	h.rt.release()

	if closeErr != nil {
		log.Warn().Err(closeErr).Uint64("browser_id", uint64(h.id)).Msg("browser closed without confirmation")
		return closeErr
	}
	log.Debug().Uint64("browser_id", uint64(h.id)).Msg("browser closed")
	return nil
}

func (h *Host) awaitClosed(ctx context.Context) error {
	deadline := time.Now().Add(h.opts.CloseTimeout)
	for !h.closeConfirmed {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrCloseTimeout
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		h.rt.PumpWait(ctx, h.opts.slice(remaining))
	}
	return nil
}

// dispatch is the single entry point for engine events addressed to this host.
func (h *Host) dispatch(ctx context.Context, ev port.Event) {
	switch e := ev.(type) {
	case port.LoadStart:
		h.nav.onLoadStart(ctx, e)
	case port.LoadEnd:
		h.nav.onLoadEnd(ctx, e)
	case port.LoadError:
		h.nav.onLoadError(ctx, e)
	case port.TitleChanged:
		h.nav.onTitleChanged(ctx, e)
	case port.ScriptResult:
		h.scripts.onResult(ctx, e)
	case port.ScriptTimeout:
		h.scripts.onTimeout(ctx, e)
	case port.BrowserClosed:
		h.closeConfirmed = true
	case port.FrameReady:
		if h.observer != nil {
			h.observer.NeedsRepaint(e.Rect)
		}
	case port.PreferredSize:
		if h.observer != nil {
			h.observer.PreferredSizeChanged(e.Size)
		}
	default:
		componentLogger(ctx, "browser-host").Warn().
			Str("event", port.EventName(ev)).
			Msg("unhandled engine event")
	}
}

func looksLikeMarkup(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "<")
}

// Package webview is the synchronous-looking facade over the embedding
// bridge. A WebView lazily creates its browser host on the first load and
// translates every call into host, navigator, or script-bridge operations.
//
// A WebView must only be used from the host UI goroutine; other goroutines
// reach it through mainloop.Loop.Post or Invoke.
package webview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/bridge"
	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/domain/entity"
)

type (
	Geometry        = entity.Geometry
	Size            = entity.Size
	Phase           = entity.NavigationPhase
	NavigationError = entity.NavigationError
	NavigationState = entity.NavigationState
	HistoryEntry    = entity.HistoryEntry
	NativeWindow    = port.NativeWindow
	ViewObserver    = port.ViewObserver
	Runtime         = bridge.Runtime

	ScriptExecutionError = bridge.ScriptExecutionError
	EngineStartError     = bridge.EngineStartError
	BrowserCreationError = bridge.BrowserCreationError
)

const (
	PhaseIdle    = entity.PhaseIdle
	PhaseLoading = entity.PhaseLoading
	PhaseLoaded  = entity.PhaseLoaded
	PhaseFailed  = entity.PhaseFailed
)

var (
	ErrScriptTimeout  = bridge.ErrScriptTimeout
	ErrBridgeNotReady = bridge.ErrBridgeNotReady
	ErrCloseTimeout   = bridge.ErrCloseTimeout

	// ErrUnsupportedRequest is returned by LoadRequest for anything but GET.
	ErrUnsupportedRequest = errors.New("webview: only GET requests can be loaded")
)

// NewRuntime creates the engine runtime WebViews share.
func NewRuntime(engine port.Engine, cfg *config.Config) *Runtime {
	return bridge.NewRuntime(engine, cfg)
}

// Option configures a WebView.
type Option func(*WebView)

// WithObserver receives repaint and preferred-size hints.
func WithObserver(o ViewObserver) Option {
	return func(w *WebView) {
		w.hostOpts = append(w.hostOpts, bridge.WithObserver(o))
	}
}

// WebView is the embedding facade.
type WebView struct {
	ctx      context.Context
	rt       *Runtime
	window   NativeWindow
	geometry Geometry
	hostOpts []bridge.HostOption

	host          *bridge.Host
	closed        bool
	lastScriptErr error
}

// New binds a view to window. No engine work happens until the first load.
// ctx carries the logger and bounds calls that take no context.
func New(ctx context.Context, rt *Runtime, window NativeWindow, geometry Geometry, opts ...Option) *WebView {
	w := &WebView{
		ctx:      ctx,
		rt:       rt,
		window:   window,
		geometry: geometry,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ensureHost creates the host on first use, navigating to initialURL.
// created reports whether initialURL was already issued.
func (w *WebView) ensureHost(initialURL string) (host *bridge.Host, created bool, err error) {
	if w.closed {
		return nil, false, ErrBridgeNotReady
	}
	if w.host != nil {
		return w.host, false, nil
	}
	host, err = bridge.NewHost(w.ctx, w.rt, w.window, initialURL, w.geometry, w.hostOpts...)
	if err != nil {
		return nil, false, err
	}
	w.host = host
	return host, true, nil
}

// LoadRequest navigates to req.URL. Only GET is supported; headers are
// left to the engine.
func (w *WebView) LoadRequest(req *http.Request) error {
	if req == nil || req.URL == nil {
		return fmt.Errorf("webview: nil request")
	}
	if req.Method != "" && req.Method != http.MethodGet {
		return fmt.Errorf("%w: %s", ErrUnsupportedRequest, req.Method)
	}
	return w.LoadURL(req.URL.String())
}

// LoadURL navigates to rawURL.
func (w *WebView) LoadURL(rawURL string) error {
	host, created, err := w.ensureHost(rawURL)
	if err != nil || created {
		return err
	}
	return host.Navigator().LoadURL(w.ctx, rawURL)
}

// LoadHTMLString loads markup as a document anchored at baseURL.
func (w *WebView) LoadHTMLString(html, baseURL string) error {
	host, _, err := w.ensureHost("")
	if err != nil {
		return err
	}
	return host.LoadHTML(w.ctx, html, baseURL)
}

// Reload re-issues the current document.
func (w *WebView) Reload() error {
	if w.host == nil {
		return nil
	}
	return w.host.Navigator().Reload(w.ctx)
}

// StopLoading cancels the navigation in flight.
func (w *WebView) StopLoading() error {
	if w.host == nil {
		return nil
	}
	return w.host.Navigator().Stop(w.ctx)
}

// GoBack moves one entry back in history.
func (w *WebView) GoBack() error {
	if w.host == nil {
		return nil
	}
	return w.host.Navigator().GoBack(w.ctx)
}

// GoForward moves one entry forward in history.
func (w *WebView) GoForward() error {
	if w.host == nil {
		return nil
	}
	return w.host.Navigator().GoForward(w.ctx)
}

func (w *WebView) CanGoBack() bool {
	return w.host != nil && w.host.Navigator().CanGoBack()
}

func (w *WebView) CanGoForward() bool {
	return w.host != nil && w.host.Navigator().CanGoForward()
}

// StringByEvaluatingJavaScript evaluates script and blocks, pumping engine
// events, until it completes. On failure it returns "" and the error is
// available from LastScriptError.
func (w *WebView) StringByEvaluatingJavaScript(script string) string {
	result, err := w.EvaluateSync(w.ctx, script)
	w.lastScriptErr = err
	return result
}

// LastScriptError returns the error of the last StringByEvaluatingJavaScript.
func (w *WebView) LastScriptError() error {
	return w.lastScriptErr
}

// EvaluateSync evaluates script and blocks until it completes or times out.
func (w *WebView) EvaluateSync(ctx context.Context, script string) (string, error) {
	if w.host == nil || w.closed {
		return "", ErrBridgeNotReady
	}
	return w.host.Scripts().EvaluateSync(ctx, script)
}

// EvaluateJavaScript evaluates script asynchronously. handler runs exactly
// once on the UI goroutine; err is nil exactly when result is valid.
func (w *WebView) EvaluateJavaScript(script string, handler func(result string, err error)) {
	if handler == nil {
		handler = func(string, error) {}
	}
	if w.host == nil || w.closed {
		handler("", ErrBridgeNotReady)
		return
	}
	w.host.Scripts().EvaluateAsync(w.ctx, script, handler)
}

// MainFrameURL returns the committed document URL, or nil before the first
// successful load.
func (w *WebView) MainFrameURL() *url.URL {
	if w.host == nil {
		return nil
	}
	raw := w.host.Navigator().URL()
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// MainFrameTitle returns the committed document title.
func (w *WebView) MainFrameTitle() string {
	if w.host == nil {
		return ""
	}
	return w.host.Navigator().Title()
}

// Resize rebinds the view to geometry.
func (w *WebView) Resize(geometry Geometry) error {
	w.geometry = geometry
	if w.host == nil || w.closed {
		return nil
	}
	return w.host.Resize(w.ctx, geometry)
}

// Geometry returns the region the view was last bound to.
func (w *WebView) Geometry() Geometry {
	return w.geometry
}

// Phase returns the main-frame load phase.
func (w *WebView) Phase() Phase {
	if w.host == nil {
		return PhaseIdle
	}
	return w.host.Navigator().Phase()
}

// LastNavigationError returns the error of the last failed navigation.
func (w *WebView) LastNavigationError() *NavigationError {
	if w.host == nil {
		return nil
	}
	return w.host.Navigator().LastError()
}

// State returns a snapshot of the navigation state, history included.
func (w *WebView) State() NavigationState {
	if w.host == nil {
		return entity.NewNavigationState()
	}
	return w.host.State()
}

// Close destroys the browser and waits for the engine to confirm. Later
// loads fail with ErrBridgeNotReady. Close is idempotent.
func (w *WebView) Close(ctx context.Context) error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.host == nil {
		return nil
	}
	return w.host.Close(ctx)
}

//go:build webkitgtk

// Package webkit implements port.Engine on WebKitGTK 6 through gotk4.
// Every method must be called on the GTK thread, which is the goroutine
// running the host UI loop.
package webkit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/core/gerror"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/logging"
)

var (
	ErrNoDisplay      = errors.New("webkit: cannot open display")
	ErrNotStarted     = errors.New("webkit: engine not started")
	ErrUnknownBrowser = errors.New("webkit: unknown browser")
	ErrWrongWindow    = errors.New("webkit: window is not a GTK container")
)

// Engine drives WebKitGTK web views embedded in GTK containers.
type Engine struct {
	mu      sync.Mutex
	started bool
	opts    port.EngineOptions
	sink    port.EventSink
	session *webkit.NetworkSession
	views   map[port.BrowserID]*view
	nextID  port.BrowserID
	log     zerolog.Logger
}

type view struct {
	id      port.BrowserID
	wv      *webkit.WebView
	window  *Window
	gen     generationLatch
	failed  bool
	handles []glib.SignalHandle
}

// New returns an engine that has not been started.
func New() *Engine {
	return &Engine{
		views: make(map[port.BrowserID]*view),
		log:   zerolog.Nop(),
	}
}

// Start initializes GTK and the persistent network session.
func (e *Engine) Start(ctx context.Context, opts port.EngineOptions, sink port.EventSink) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log = logging.FromContext(logging.WithComponent(ctx, "webkit-engine")).With().Logger()
	if !gtk.InitCheck() {
		return ErrNoDisplay
	}

	session := webkit.NewNetworkSession(
		filepath.Join(opts.CachePath, "data"),
		filepath.Join(opts.CachePath, "http"),
	)
	if session == nil {
		return fmt.Errorf("failed to create persistent network session")
	}

	e.opts = opts
	e.sink = sink
	e.session = session
	e.started = true

	e.log.Info().
		Str("cache_path", opts.CachePath).
		Str("sandbox", string(opts.Sandbox)).
		Msg("webkit engine started")
	return nil
}

// Shutdown drops the network session; GTK itself lives for the process.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, v := range e.views {
		e.teardown(v)
		delete(e.views, id)
	}
	e.session = nil
	e.started = false
	return nil
}

// DoMessageLoopWork runs one non-blocking GLib main context iteration.
func (e *Engine) DoMessageLoopWork() {
	glib.MainContextDefault().Iteration(false)
}

// CreateBrowser embeds a new web view into spec.Window.
func (e *Engine) CreateBrowser(ctx context.Context, spec port.BrowserSpec) (port.BrowserID, error) {
	win, ok := spec.Window.(*Window)
	if !ok {
		return 0, ErrWrongWindow
	}
	if !win.Valid() {
		return 0, fmt.Errorf("window is not valid")
	}

	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return 0, ErrNotStarted
	}
	e.nextID++
	id := e.nextID
	e.mu.Unlock()

	wv := webkit.NewWebView()
	if wv == nil {
		return 0, fmt.Errorf("failed to create webkit webview")
	}
	e.applySettings(wv)

	v := &view{id: id, wv: wv, window: win}
	v.gen.issue(spec.Generation)
	e.connectSignals(v)
	place(wv, spec.Geometry)
	win.geometry = spec.Geometry
	win.Box.Append(wv)

	e.mu.Lock()
	e.views[id] = v
	e.mu.Unlock()

	e.log.Debug().Uint64("browser_id", uint64(id)).Str("geometry", spec.Geometry.String()).Msg("web view created")

	if spec.InitialURL != "" {
		wv.LoadURI(spec.InitialURL)
	}
	return id, nil
}

func (e *Engine) applySettings(wv *webkit.WebView) {
	settings := wv.Settings()
	if settings == nil {
		return
	}
	if e.opts.UserAgent != "" {
		settings.SetUserAgent(e.opts.UserAgent)
	}
	switch e.opts.Sandbox {
	case port.SandboxStrict:
		settings.SetEnableJavascriptMarkup(false)
	case port.SandboxNone:
		settings.SetAllowFileAccessFromFileURLs(true)
		settings.SetAllowUniversalAccessFromFileURLs(true)
	}
}

func (e *Engine) connectSignals(v *view) {
	wv := v.wv

	v.handles = append(v.handles, wv.ConnectLoadChanged(func(event webkit.LoadEvent) {
		switch event {
		case webkit.LoadStarted:
			v.failed = false
			e.emit(port.LoadStart{Browser: v.id, Gen: v.gen.started(), URL: wv.URI()})
		case webkit.LoadFinished:
			gen := v.gen.finished()
			if v.failed {
				return
			}
			e.emit(port.LoadEnd{
				Browser:    v.id,
				Gen:        gen,
				URL:        wv.URI(),
				Title:      wv.Title(),
				StatusCode: statusCode(wv),
			})
			e.emit(port.FrameReady{Browser: v.id, Rect: v.window.geometry})
		}
	}))

	v.handles = append(v.handles, wv.ConnectLoadFailed(func(_ webkit.LoadEvent, failingURI string, err error) bool {
		v.failed = true
		code := 0
		var gErr *gerror.GError
		if errors.As(err, &gErr) {
			code = gErr.ErrorCode()
		}
		kind := classifyLoadFailure(code, err.Error())
		e.emit(port.LoadError{Browser: v.id, Gen: v.gen.failed(), URL: failingURI, Kind: kind, Message: err.Error()})
		return false
	}))

	v.handles = append(v.handles, wv.Connect("notify::title", func() {
		e.emit(port.TitleChanged{Browser: v.id, Title: wv.Title()})
	}))
}

// CloseBrowser detaches the view; confirmation arrives on the next idle.
func (e *Engine) CloseBrowser(ctx context.Context, id port.BrowserID) error {
	e.mu.Lock()
	v, ok := e.views[id]
	delete(e.views, id)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("browser %d: %w", id, ErrUnknownBrowser)
	}
	e.teardown(v)
	glib.IdleAdd(func() {
		e.emit(port.BrowserClosed{Browser: id})
	})
	return nil
}

func (e *Engine) teardown(v *view) {
	for _, h := range v.handles {
		v.wv.HandlerDisconnect(h)
	}
	v.handles = nil
	v.wv.StopLoading()
	if v.window.Valid() {
		v.window.Box.Remove(v.wv)
	}
}

// Resize implements port.Engine.
func (e *Engine) Resize(ctx context.Context, id port.BrowserID, geom entity.Geometry) error {
	v, err := e.view(id)
	if err != nil {
		return err
	}
	place(v.wv, geom)
	v.window.geometry = geom
	v.wv.QueueDraw()
	e.emit(port.FrameReady{Browser: id, Rect: geom})
	return nil
}

// LoadURL implements port.Engine.
func (e *Engine) LoadURL(ctx context.Context, id port.BrowserID, url string, gen port.Generation) error {
	v, err := e.view(id)
	if err != nil {
		return err
	}
	v.gen.issue(gen)
	v.wv.LoadURI(url)
	return nil
}

// LoadHTML implements port.Engine.
func (e *Engine) LoadHTML(ctx context.Context, id port.BrowserID, html, baseURL string, gen port.Generation) error {
	v, err := e.view(id)
	if err != nil {
		return err
	}
	v.gen.issue(gen)
	v.wv.LoadHTML(html, baseURL)
	return nil
}

// StopLoad implements port.Engine.
func (e *Engine) StopLoad(ctx context.Context, id port.BrowserID) error {
	v, err := e.view(id)
	if err != nil {
		return err
	}
	v.wv.StopLoading()
	return nil
}

// ExecuteJavaScript evaluates script in the main world.
func (e *Engine) ExecuteJavaScript(ctx context.Context, id port.BrowserID, req entity.ScriptRequestID, script string) error {
	v, err := e.view(id)
	if err != nil {
		return err
	}
	v.wv.EvaluateJavascript(context.Background(), script, -1, "", "", func(res gio.AsyncResulter) {
		value, err := v.wv.EvaluateJavascriptFinish(res)
		result := port.ScriptResult{Browser: id, Request: req}
		switch {
		case err != nil:
			result.Exception = err.Error()
		case value == nil, value.IsUndefined(), value.IsNull():
		case value.IsObject():
			result.Value = value.ToJSON(0)
		default:
			result.Value = value.ToString()
		}
		e.emit(result)
	})
	return nil
}

func (e *Engine) view(id port.BrowserID) (*view, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return nil, ErrNotStarted
	}
	v, ok := e.views[id]
	if !ok {
		return nil, fmt.Errorf("browser %d: %w", id, ErrUnknownBrowser)
	}
	return v, nil
}

func (e *Engine) emit(ev port.Event) {
	e.sink.Deliver(ev)
}

func place(wv *webkit.WebView, geom entity.Geometry) {
	wv.SetMarginStart(geom.X)
	wv.SetMarginTop(geom.Y)
	wv.SetSizeRequest(geom.Width, geom.Height)
}

func statusCode(wv *webkit.WebView) int {
	res := wv.MainResource()
	if res == nil {
		return 0
	}
	resp := res.Response()
	if resp == nil {
		return 0
	}
	return int(resp.StatusCode())
}

// Package headless implements port.Engine without a display: documents are
// fetched over HTTP, parsed, and scripted in an embedded JavaScript runtime.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/logging"
)

const defaultScriptBudget = 30 * time.Second

var (
	ErrNotStarted     = errors.New("headless engine not started")
	ErrAlreadyStarted = errors.New("headless engine already started")
	ErrUnknownBrowser = errors.New("unknown browser")
)

// Engine is the headless port.Engine. Each browser runs its own worker
// goroutine; events are delivered straight to the sink, so
// DoMessageLoopWork has nothing to do.
type Engine struct {
	mu       sync.Mutex
	started  bool
	opts     port.EngineOptions
	sink     port.EventSink
	cache    *PageCache
	fetcher  *Fetcher
	browsers map[port.BrowserID]*browser
	nextID   port.BrowserID
	log      zerolog.Logger
}

// New returns an engine that has not been started.
func New() *Engine {
	return &Engine{
		browsers: make(map[port.BrowserID]*browser),
		log:      zerolog.Nop(),
	}
}

// Start opens the page cache and readies the fetcher.
func (e *Engine) Start(ctx context.Context, opts port.EngineOptions, sink port.EventSink) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}
	if sink == nil {
		return fmt.Errorf("event sink is required")
	}

	e.log = logging.FromContext(logging.WithComponent(ctx, "headless-engine")).With().Logger()
	if level, err := zerolog.ParseLevel(opts.LogLevel); err == nil && opts.LogLevel != "" {
		e.log = e.log.Level(level)
	}

	cache, err := OpenPageCache(ctx, opts.CachePath)
	if err != nil {
		return fmt.Errorf("open page cache: %w", err)
	}

	if opts.Sandbox == "" {
		opts.Sandbox = port.SandboxRelaxed
	}

	e.opts = opts
	e.sink = sink
	e.cache = cache
	e.fetcher = NewFetcher(opts, cache, e.log)
	e.started = true

	e.log.Info().
		Str("cache_path", opts.CachePath).
		Str("sandbox", string(opts.Sandbox)).
		Msg("headless engine started")
	return nil
}

// Shutdown stops any remaining browsers and closes the cache.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return nil
	}
	remaining := make([]*browser, 0, len(e.browsers))
	for id, b := range e.browsers {
		remaining = append(remaining, b)
		delete(e.browsers, id)
	}
	cache := e.cache
	e.started = false
	e.mu.Unlock()

	if len(remaining) > 0 {
		e.log.Warn().Int("browsers", len(remaining)).Msg("shutting down with open browsers")
	}
	for _, b := range remaining {
		b.close()
		select {
		case <-b.exited:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	e.log.Info().Msg("headless engine stopped")
	return cache.Close()
}

// DoMessageLoopWork implements port.Engine.
func (e *Engine) DoMessageLoopWork() {}

// CreateBrowser starts a browser worker bound to spec.Window.
func (e *Engine) CreateBrowser(ctx context.Context, spec port.BrowserSpec) (port.BrowserID, error) {
	if spec.Window == nil || !spec.Window.Valid() {
		return 0, fmt.Errorf("window is not valid")
	}

	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return 0, ErrNotStarted
	}
	e.nextID++
	id := e.nextID
	b, err := newBrowser(id, e, spec.Geometry)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	e.browsers[id] = b
	e.mu.Unlock()

	go b.run()

	e.log.Debug().
		Uint64("browser_id", uint64(id)).
		Uint64("window", uint64(spec.Window.Handle())).
		Str("geometry", spec.Geometry.String()).
		Msg("browser created")

	b.enqueue(func() { b.emit(port.FrameReady{Browser: id, Rect: spec.Geometry}) })
	if spec.InitialURL != "" {
		b.startLoad(loadRequest{gen: spec.Generation, url: spec.InitialURL})
	}
	return id, nil
}

// CloseBrowser stops the worker; BrowserClosed follows once it exits.
func (e *Engine) CloseBrowser(ctx context.Context, id port.BrowserID) error {
	e.mu.Lock()
	b, ok := e.browsers[id]
	delete(e.browsers, id)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("browser %d: %w", id, ErrUnknownBrowser)
	}
	b.close()
	return nil
}

// Resize implements port.Engine.
func (e *Engine) Resize(ctx context.Context, id port.BrowserID, geom entity.Geometry) error {
	b, err := e.browser(id)
	if err != nil {
		return err
	}
	b.enqueue(func() { b.resize(geom) })
	return nil
}

// LoadURL supersedes any load in flight.
func (e *Engine) LoadURL(ctx context.Context, id port.BrowserID, url string, gen port.Generation) error {
	b, err := e.browser(id)
	if err != nil {
		return err
	}
	b.startLoad(loadRequest{gen: gen, url: url})
	return nil
}

// LoadHTML commits markup as a document addressed by baseURL.
func (e *Engine) LoadHTML(ctx context.Context, id port.BrowserID, html, baseURL string, gen port.Generation) error {
	b, err := e.browser(id)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = blankURL
	}
	b.startLoad(loadRequest{gen: gen, url: baseURL, markup: html, inline: true})
	return nil
}

// StopLoad cancels the fetch in flight, if any.
func (e *Engine) StopLoad(ctx context.Context, id port.BrowserID) error {
	b, err := e.browser(id)
	if err != nil {
		return err
	}
	b.cancelInflight()
	return nil
}

// ExecuteJavaScript queues script behind pending loads of the browser.
func (e *Engine) ExecuteJavaScript(ctx context.Context, id port.BrowserID, req entity.ScriptRequestID, script string) error {
	b, err := e.browser(id)
	if err != nil {
		return err
	}
	if !b.enqueue(func() { b.evaluate(req, script) }) {
		return fmt.Errorf("browser %d: %w", id, ErrUnknownBrowser)
	}
	return nil
}

// Browsers returns the number of open browsers.
func (e *Engine) Browsers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.browsers)
}

func (e *Engine) browser(id port.BrowserID) (*browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return nil, ErrNotStarted
	}
	b, ok := e.browsers[id]
	if !ok {
		return nil, fmt.Errorf("browser %d: %w", id, ErrUnknownBrowser)
	}
	return b, nil
}

func (e *Engine) scriptBudget() time.Duration {
	if e.opts.RequestTimeout > 0 {
		return e.opts.RequestTimeout
	}
	return defaultScriptBudget
}

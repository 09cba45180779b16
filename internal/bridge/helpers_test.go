package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	handle uintptr
	valid  bool
}

func (w *testWindow) Handle() uintptr { return w.handle }
func (w *testWindow) Valid() bool     { return w.valid }

func validWindow() *testWindow { return &testWindow{handle: 0x2a, valid: true} }

type loadCall struct {
	id     port.BrowserID
	url    string
	html   string
	inline bool
	gen    port.Generation
}

type scriptCall struct {
	id     port.BrowserID
	req    entity.ScriptRequestID
	script string
}

// fakeEngine answers requests by queueing the events a real engine would
// send later. hold* switches keep requests unanswered so tests can inject
// events themselves.
type fakeEngine struct {
	mu   sync.Mutex
	sink port.EventSink

	startErr  error
	createErr error
	loadErr   error

	holdLoads   bool
	holdClose   bool
	holdScripts bool

	failURLs   map[string]entity.NavigationErrorKind
	titles     map[string]string
	results    map[string]string
	exceptions map[string]string

	starts    int
	shutdowns int
	stops     int
	work      int
	nextID    port.BrowserID
	closes    map[port.BrowserID]int
	resizes   []entity.Geometry
	loads     []loadCall
	scripts   []scriptCall
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		failURLs:   make(map[string]entity.NavigationErrorKind),
		titles:     make(map[string]string),
		results:    map[string]string{"1+1": "2"},
		exceptions: make(map[string]string),
		closes:     make(map[port.BrowserID]int),
	}
}

func (f *fakeEngine) Start(_ context.Context, _ port.EngineOptions, sink port.EventSink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.sink = sink
	return nil
}

func (f *fakeEngine) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
	return nil
}

func (f *fakeEngine) DoMessageLoopWork() {
	f.mu.Lock()
	f.work++
	f.mu.Unlock()
}

func (f *fakeEngine) CreateBrowser(_ context.Context, spec port.BrowserSpec) (port.BrowserID, error) {
	f.mu.Lock()
	if f.createErr != nil {
		f.mu.Unlock()
		return 0, f.createErr
	}
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	if spec.InitialURL != "" {
		f.answerLoad(loadCall{id: id, url: spec.InitialURL, gen: spec.Generation})
	}
	return id, nil
}

func (f *fakeEngine) CloseBrowser(_ context.Context, id port.BrowserID) error {
	f.mu.Lock()
	f.closes[id]++
	hold := f.holdClose
	f.mu.Unlock()

	if !hold {
		f.sink.Deliver(port.BrowserClosed{Browser: id})
	}
	return nil
}

func (f *fakeEngine) Resize(_ context.Context, _ port.BrowserID, geom entity.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes = append(f.resizes, geom)
	return nil
}

func (f *fakeEngine) LoadURL(_ context.Context, id port.BrowserID, url string, gen port.Generation) error {
	return f.answerLoad(loadCall{id: id, url: url, gen: gen})
}

func (f *fakeEngine) LoadHTML(_ context.Context, id port.BrowserID, html, baseURL string, gen port.Generation) error {
	return f.answerLoad(loadCall{id: id, url: baseURL, html: html, inline: true, gen: gen})
}

func (f *fakeEngine) answerLoad(call loadCall) error {
	f.mu.Lock()
	if f.loadErr != nil {
		f.mu.Unlock()
		return f.loadErr
	}
	f.loads = append(f.loads, call)
	hold := f.holdLoads
	kind, fails := f.failURLs[call.url]
	title := f.titleFor(call.url)
	f.mu.Unlock()

	if hold {
		return nil
	}
	f.sink.Deliver(port.LoadStart{Browser: call.id, Gen: call.gen, URL: call.url})
	if fails {
		f.sink.Deliver(port.LoadError{Browser: call.id, Gen: call.gen, URL: call.url, Kind: kind, Message: "boom"})
		return nil
	}
	f.sink.Deliver(port.LoadEnd{Browser: call.id, Gen: call.gen, URL: call.url, Title: title, StatusCode: 200})
	return nil
}

func (f *fakeEngine) titleFor(url string) string {
	if t, ok := f.titles[url]; ok {
		return t
	}
	return "title of " + url
}

func (f *fakeEngine) StopLoad(context.Context, port.BrowserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *fakeEngine) ExecuteJavaScript(_ context.Context, id port.BrowserID, req entity.ScriptRequestID, script string) error {
	f.mu.Lock()
	f.scripts = append(f.scripts, scriptCall{id: id, req: req, script: script})
	hold := f.holdScripts
	value, known := f.results[script]
	exception, throws := f.exceptions[script]
	f.mu.Unlock()

	if hold || (!known && !throws) {
		return nil
	}
	f.sink.Deliver(port.ScriptResult{Browser: id, Request: req, Value: value, Exception: exception})
	return nil
}

func (f *fakeEngine) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.loads)
}

func (f *fakeEngine) lastLoad() loadCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads[len(f.loads)-1]
}

func (f *fakeEngine) lastScript() scriptCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scripts[len(f.scripts)-1]
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Engine.CachePath = t.TempDir()
	cfg.Bridge.ScriptTimeout = time.Second
	cfg.Bridge.CloseTimeout = 500 * time.Millisecond
	cfg.Bridge.PumpInterval = 5 * time.Millisecond
	cfg.Bridge.MaxReentrancy = 4
	return cfg
}

func newTestRuntime(t *testing.T, engine port.Engine, mutate ...func(*config.Config)) *Runtime {
	t.Helper()
	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}
	return NewRuntime(engine, cfg)
}

func newTestHost(t *testing.T, rt *Runtime, initialURL string, opts ...HostOption) *Host {
	t.Helper()
	h, err := NewHost(context.Background(), rt, validWindow(), initialURL, entity.NewGeometry(0, 0, 800, 600), opts...)
	require.NoError(t, err)
	return h
}

// drain pumps until the runtime queue is empty.
func drain(rt *Runtime) {
	for rt.Pump(context.Background(), 0) > 0 {
	}
}

var (
	errBoom      = errors.New("boom")
	testGeometry = entity.NewGeometry(0, 0, 800, 600)
)

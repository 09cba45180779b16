// Package port defines the application-layer contract between the embedding
// bridge and web engines, plus the toolkit-facing window ports.
package port

import (
	"context"
	"time"

	"github.com/bnema/embedview/internal/domain/entity"
)

// BrowserID identifies one engine browser instance.
type BrowserID uint64

// Generation tags a host-issued navigation. Events echo the generation of
// the navigation they belong to; 0 marks navigations started by the page.
type Generation uint64

// PageInitiated is the generation engines report for navigations the host
// did not request (link clicks, location assignments from script).
const PageInitiated Generation = 0

// SandboxPolicy restricts what loaded documents may do.
type SandboxPolicy string

const (
	SandboxStrict  SandboxPolicy = "strict"
	SandboxRelaxed SandboxPolicy = "relaxed"
	SandboxNone    SandboxPolicy = "none"
)

// EngineOptions is the fixed startup configuration of an engine.
// It is applied once, on the first Start.
type EngineOptions struct {
	LogLevel       string
	CachePath      string
	Sandbox        SandboxPolicy
	UserAgent      string
	RequestTimeout time.Duration
}

// BrowserSpec describes a browser to create.
type BrowserSpec struct {
	Window     NativeWindow
	Geometry   entity.Geometry
	InitialURL string
	Generation Generation
}

// EventSink receives engine events. Deliver may be called from any goroutine
// and must not block.
type EventSink interface {
	Deliver(ev Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev Event)

// Deliver implements EventSink.
func (f EventSinkFunc) Deliver(ev Event) { f(ev) }

// Engine is the port to an out-of-process (or in-process) web engine.
//
// Every method except DoMessageLoopWork is a request: completion is reported
// later through the EventSink given to Start. Implementations must be safe to
// call from the host UI goroutine while delivering events from others.
type Engine interface {
	// Start initializes the engine. It is called at most once.
	Start(ctx context.Context, opts EngineOptions, sink EventSink) error
	// Shutdown releases engine resources after every browser has closed.
	Shutdown(ctx context.Context) error
	// DoMessageLoopWork performs one non-blocking slice of engine work on
	// the calling goroutine.
	DoMessageLoopWork()

	CreateBrowser(ctx context.Context, spec BrowserSpec) (BrowserID, error)
	// CloseBrowser requests teardown; BrowserClosed confirms it.
	CloseBrowser(ctx context.Context, id BrowserID) error
	Resize(ctx context.Context, id BrowserID, geom entity.Geometry) error

	LoadURL(ctx context.Context, id BrowserID, url string, gen Generation) error
	LoadHTML(ctx context.Context, id BrowserID, html, baseURL string, gen Generation) error
	StopLoad(ctx context.Context, id BrowserID) error

	// ExecuteJavaScript evaluates script in the main frame. The outcome
	// arrives as a ScriptResult carrying req.
	ExecuteJavaScript(ctx context.Context, id BrowserID, req entity.ScriptRequestID, script string) error
}

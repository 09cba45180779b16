// Package bridge reconciles a native view's lifecycle with an asynchronous
// web engine. It turns engine events into navigation state and script
// completions, and offers blocking script evaluation that pumps the engine
// instead of parking the UI goroutine.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/config"
)

// RuntimeStats is a point-in-time view of a Runtime.
type RuntimeStats struct {
	Started      bool
	ShutDown     bool
	LiveHosts    int
	QueuedEvents int
	StartErr     error
}

// Runtime owns one engine and its message loop integration.
//
// Engine events may arrive on any goroutine; they are queued and applied
// only when the UI goroutine calls Pump or PumpWait.
type Runtime struct {
	engine     port.Engine
	engineOpts port.EngineOptions
	opts       Options

	lifecycleMu sync.Mutex
	started     bool
	startErr    *EngineStartError
	shutdown    bool
	live        int

	queueMu sync.Mutex
	queue   []port.Event
	hosts   map[port.BrowserID]*Host
	notify  chan struct{}
}

// NewRuntime creates a runtime for engine. The engine is not started until
// the first EnsureStarted call.
func NewRuntime(engine port.Engine, cfg *config.Config) *Runtime {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runtime{
		engine:     engine,
		engineOpts: EngineOptionsFromConfig(cfg.Engine),
		opts:       OptionsFromConfig(cfg.Bridge),
		hosts:      make(map[port.BrowserID]*Host),
		notify:     make(chan struct{}, 1),
	}
}

// Options returns the bridge options hosts inherit.
func (rt *Runtime) Options() Options {
	return rt.opts
}

// EnsureStarted starts the engine on first use. A start failure is
// remembered and returned by every later call.
func (rt *Runtime) EnsureStarted(ctx context.Context) error {
	rt.lifecycleMu.Lock()
	defer rt.lifecycleMu.Unlock()

	if rt.shutdown {
		return ErrRuntimeShutdown
	}
	if rt.startErr != nil {
		return rt.startErr
	}
	if rt.started {
		return nil
	}

	log := componentLogger(ctx, "engine-runtime")
	start := time.Now()
	if err := rt.engine.Start(ctx, rt.engineOpts, rt); err != nil {
		rt.startErr = &EngineStartError{Err: err}
		log.Error().Err(err).Msg("engine failed to start")
		return rt.startErr
	}

	rt.started = true
	log.Debug().
		Str("cache_path", rt.engineOpts.CachePath).
		Str("sandbox", string(rt.engineOpts.Sandbox)).
		Dur("elapsed", time.Since(start)).
		Msg("engine started")
	return nil
}

// Shutdown stops the engine. It refuses while hosts are still open and is a
// no-op once the runtime has shut down.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	rt.lifecycleMu.Lock()
	defer rt.lifecycleMu.Unlock()

	log := componentLogger(ctx, "engine-runtime")
	if rt.shutdown {
		return nil
	}
	if rt.live > 0 {
		log.Error().Int("live_hosts", rt.live).Msg("shutdown requested with live browser hosts")
		return fmt.Errorf("%w: %d open", ErrHandlesAlive, rt.live)
	}

	rt.shutdown = true
	rt.queueMu.Lock()
	dropped := len(rt.queue)
	rt.queue = nil
	rt.queueMu.Unlock()

	if !rt.started {
		log.Debug().Msg("runtime shut down before engine start")
		return nil
	}
	if err := rt.engine.Shutdown(ctx); err != nil {
		return fmt.Errorf("engine shutdown: %w", err)
	}
	log.Debug().Int("dropped_events", dropped).Msg("engine shut down")
	return nil
}

// Deliver implements port.EventSink. Safe for concurrent use.
func (rt *Runtime) Deliver(ev port.Event) {
	rt.queueMu.Lock()
	rt.queue = append(rt.queue, ev)
	rt.queueMu.Unlock()

	select {
	case rt.notify <- struct{}{}:
	default:
	}
}

// Notify returns a channel that receives a value when events are queued.
func (rt *Runtime) Notify() <-chan struct{} {
	return rt.notify
}

// Pump performs one slice of engine work and dispatches up to limit queued
// events (all of them when limit <= 0) on the calling goroutine.
// It returns the number of events dispatched.
func (rt *Runtime) Pump(ctx context.Context, limit int) int {
	if rt.running() {
		rt.engine.DoMessageLoopWork()
	}

	dispatched := 0
	for limit <= 0 || dispatched < limit {
		ev, host, ok := rt.next()
		if !ok {
			break
		}
		dispatched++
		if host == nil {
			componentLogger(ctx, "engine-runtime").Debug().
				Uint64("browser_id", uint64(ev.Target())).
				Str("event", port.EventName(ev)).
				Msg("dropping event for unknown browser")
			continue
		}
		host.dispatch(ctx, ev)
	}
	return dispatched
}

// PumpWait pumps, and when nothing was pending waits up to d for the next
// event before pumping again.
func (rt *Runtime) PumpWait(ctx context.Context, d time.Duration) int {
	if n := rt.Pump(ctx, 0); n > 0 {
		return n
	}
	if d <= 0 {
		return 0
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-rt.notify:
	case <-timer.C:
	case <-ctx.Done():
		return 0
	}
	return rt.Pump(ctx, 0)
}

// Stats returns a snapshot of the runtime state.
func (rt *Runtime) Stats() RuntimeStats {
	rt.lifecycleMu.Lock()
	stats := RuntimeStats{
		Started:   rt.started,
		ShutDown:  rt.shutdown,
		LiveHosts: rt.live,
	}
	if rt.startErr != nil {
		stats.StartErr = rt.startErr
	}
	rt.lifecycleMu.Unlock()

	rt.queueMu.Lock()
	stats.QueuedEvents = len(rt.queue)
	rt.queueMu.Unlock()
	return stats
}

func (rt *Runtime) running() bool {
	rt.lifecycleMu.Lock()
	defer rt.lifecycleMu.Unlock()
	return rt.started && !rt.shutdown
}

func (rt *Runtime) next() (port.Event, *Host, bool) {
	rt.queueMu.Lock()
	defer rt.queueMu.Unlock()

	if len(rt.queue) == 0 {
		return nil, nil, false
	}
	ev := rt.queue[0]
	rt.queue[0] = nil
	rt.queue = rt.queue[1:]
	return ev, rt.hosts[ev.Target()], true
}

func (rt *Runtime) acquire() {
	rt.lifecycleMu.Lock()
	rt.live++
	rt.lifecycleMu.Unlock()
}

func (rt *Runtime) release() {
	rt.lifecycleMu.Lock()
	if rt.live > 0 {
		rt.live--
	}
	rt.lifecycleMu.Unlock()
}

func (rt *Runtime) register(h *Host) {
	rt.queueMu.Lock()
	rt.hosts[h.id] = h
	rt.queueMu.Unlock()
}

func (rt *Runtime) unregister(id port.BrowserID) {
	rt.queueMu.Lock()
	delete(rt.hosts, id)
	rt.queueMu.Unlock()
}

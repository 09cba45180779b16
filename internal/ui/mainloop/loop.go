// Package mainloop provides the host UI goroutine: a task loop locked to its
// OS thread that also pumps engine events.
package mainloop

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/logging"
)

const (
	taskQueueSize       = 256
	defaultPumpInterval = 10 * time.Millisecond
	resizeKey           = "resize"
)

var (
	// ErrLoopStopped is returned when posting to a loop that has exited.
	ErrLoopStopped = errors.New("main loop stopped")
	// ErrLoopRunning is returned when Run is called twice.
	ErrLoopRunning = errors.New("main loop already running")
)

// Pumper is the engine side of the loop: it dispatches queued engine events
// and signals when new ones arrive.
type Pumper interface {
	Pump(ctx context.Context, limit int) int
	Notify() <-chan struct{}
}

// Loop runs posted tasks and engine event dispatch on one goroutine.
// A Loop runs once; after Run returns it rejects new work.
type Loop struct {
	tasks    chan func()
	pumper   Pumper
	interval time.Duration

	running  atomic.Bool
	stopped  chan struct{}
	stopOnce sync.Once
}

// New creates a loop. pumper may be nil for a plain task loop; interval is
// the idle pump period and defaults to 10ms.
func New(pumper Pumper, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = defaultPumpInterval
	}
	return &Loop{
		tasks:    make(chan func(), taskQueueSize),
		pumper:   pumper,
		interval: interval,
		stopped:  make(chan struct{}),
	}
}

// Run executes the loop on the calling goroutine until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.stop()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx = logging.WithComponent(ctx, "mainloop")
	log := logging.FromContext(ctx)
	log.Debug().Dur("pump_interval", l.interval).Msg("main loop started")

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var notify <-chan struct{}
	if l.pumper != nil {
		notify = l.pumper.Notify()
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("main loop stopped")
			return nil
		case fn := <-l.tasks:
			l.runTask(ctx, fn)
		case <-notify:
			l.pumper.Pump(ctx, 0)
		case <-ticker.C:
			if l.pumper != nil {
				l.pumper.Pump(ctx, 0)
			}
		}
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
}

func (l *Loop) runTask(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Str("panic", fmt.Sprint(r)).
				Msg("main loop task panicked")
		}
	}()
	fn()
}

// Post queues fn to run on the loop goroutine. It returns false once the
// loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.stopped:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// Invoke runs fn on the loop goroutine and waits for its result.
// It must not be called from the loop goroutine itself.
func (l *Loop) Invoke(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	if !l.Post(func() { done <- fn() }) {
		return ErrLoopStopped
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		select {
		case err := <-done:
			return err
		default:
			return ErrLoopStopped
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

// BindResize forwards toolkit resize notifications to apply on the loop
// goroutine, merging each burst within delay into its last geometry.
// Forwarding stops when ctx is done or sizes is closed.
func (l *Loop) BindResize(ctx context.Context, sizes <-chan entity.Geometry, delay time.Duration, apply func(entity.Geometry)) {
	coalescer := NewCoalescer(func(fn func()) { l.Post(fn) }, delay)
	go func() {
		for {
			select {
			case <-ctx.Done():
				coalescer.Destroy()
				return
			case <-l.stopped:
				coalescer.Destroy()
				return
			case geom, ok := <-sizes:
				if !ok {
					// The last burst still runs.
					return
				}
				coalescer.Post(resizeKey, func() { apply(geom) })
			}
		}
	}()
}

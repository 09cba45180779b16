package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/logging"
	"github.com/bnema/embedview/internal/ui/mainloop"
	"github.com/bnema/embedview/pkg/webview"
)

const (
	settlePoll      = 25 * time.Millisecond
	teardownTimeout = 5 * time.Second
)

// DefaultGeometry is the view size used when a command does not set one.
var DefaultGeometry = entity.NewGeometry(0, 0, 1280, 800)

// Session is one web view driven from a command goroutine while the UI loop
// owns the view.
type Session struct {
	loop   *mainloop.Loop
	view   *webview.WebView
	window port.NativeWindow
	rt     *webview.Runtime
	log    *zerolog.Logger
}

// resizable is a window that reports toolkit resizes.
type resizable interface {
	Sizes() <-chan entity.Geometry
}

// RunSession starts the UI loop, runs drive, then closes the view and shuts
// the runtime down on the loop before returning.
func (a *App) RunSession(ctx context.Context, geom entity.Geometry, drive func(ctx context.Context, s *Session) error) error {
	backend, err := a.Backend()
	if err != nil {
		return err
	}
	ctx = logging.WithComponent(ctx, "cli-session")

	rt := webview.NewRuntime(backend.NewEngine(), a.Config)
	loop := mainloop.New(rt, a.Config.Bridge.PumpInterval)
	s := &Session{loop: loop, rt: rt, log: logging.FromContext(ctx)}

	loopCtx, stopLoop := context.WithCancel(context.WithoutCancel(ctx))
	defer stopLoop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(loopCtx)
	})
	g.Go(func() error {
		defer stopLoop()
		// Toolkit windows belong to the UI thread.
		err := loop.Invoke(gctx, func() error {
			s.window = backend.NewWindow("embedview", geom)
			s.view = webview.New(ctx, rt, s.window, geom)
			return nil
		})
		if err != nil {
			return err
		}
		if w, ok := s.window.(resizable); ok && w.Sizes() != nil {
			loop.BindResize(loopCtx, w.Sizes(), a.Config.Bridge.ResizeCoalesce, s.resize)
		}
		driveErr := drive(gctx, s)

		teardownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownTimeout)
		defer cancel()
		closeErr := loop.Invoke(teardownCtx, func() error {
			if err := s.view.Close(teardownCtx); err != nil {
				return fmt.Errorf("close view: %w", err)
			}
			return rt.Shutdown(teardownCtx)
		})
		return errors.Join(driveErr, closeErr)
	})
	return g.Wait()
}

// resize runs on the UI loop.
func (s *Session) resize(geom entity.Geometry) {
	if err := s.view.Resize(geom); err != nil {
		s.log.Debug().Err(err).Str("geometry", geom.String()).Msg("resize ignored")
	}
}

// Do runs fn on the UI loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func(v *webview.WebView) error) error {
	return s.loop.Invoke(ctx, func() error {
		return fn(s.view)
	})
}

// Settle waits until the view leaves the Loading phase or timeout elapses.
func (s *Session) Settle(ctx context.Context, timeout time.Duration) (entity.NavigationState, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()

	for {
		var state entity.NavigationState
		err := s.Do(ctx, func(v *webview.WebView) error {
			state = v.State()
			return nil
		})
		if err != nil {
			return state, err
		}
		if state.Phase != entity.PhaseLoading {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-deadline.C:
			return state, fmt.Errorf("page did not finish loading within %s", timeout)
		case <-ticker.C:
		}
	}
}

// Open loads target and waits for it to settle.
func (s *Session) Open(ctx context.Context, target string, timeout time.Duration) (entity.NavigationState, error) {
	err := s.Do(ctx, func(v *webview.WebView) error {
		return v.LoadURL(target)
	})
	if err != nil {
		return entity.NavigationState{}, err
	}
	return s.Settle(ctx, timeout)
}

// Evaluate runs script synchronously on the UI loop.
func (s *Session) Evaluate(ctx context.Context, script string) (string, error) {
	var result string
	err := s.Do(ctx, func(v *webview.WebView) error {
		var evalErr error
		result, evalErr = v.EvaluateSync(ctx, script)
		return evalErr
	})
	return result, err
}

// EvaluateAsync posts script to the UI loop; done runs there exactly once.
func (s *Session) EvaluateAsync(script string, done func(result string, err error)) {
	posted := s.loop.Post(func() {
		s.view.EvaluateJavaScript(script, done)
	})
	if !posted {
		done("", mainloop.ErrLoopStopped)
	}
}

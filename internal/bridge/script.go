package bridge

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

// ScriptBridge evaluates JavaScript in a host's main frame and matches
// engine completions to requests by id.
type ScriptBridge struct {
	host    *Host
	nextID  entity.ScriptRequestID
	pending map[entity.ScriptRequestID]*entity.PendingScript
	depth   int
}

func newScriptBridge(h *Host) *ScriptBridge {
	return &ScriptBridge{
		host:    h,
		pending: make(map[entity.ScriptRequestID]*entity.PendingScript),
	}
}

// Pending returns the number of unresolved evaluations.
func (s *ScriptBridge) Pending() int {
	return len(s.pending)
}

// EvaluateSync runs script and blocks until it completes, pumping engine
// events meanwhile. Handlers of other completions may run during the wait.
func (s *ScriptBridge) EvaluateSync(ctx context.Context, script string) (string, error) {
	if !s.host.ready() {
		return "", ErrBridgeNotReady
	}
	if s.depth >= s.host.opts.MaxReentrancy {
		return "", ErrReentrancyLimit
	}

	log := componentLogger(ctx, "script-bridge")
	p := s.register(script, nil, true)
	if err := s.host.rt.engine.ExecuteJavaScript(ctx, s.host.id, p.ID, script); err != nil {
		delete(s.pending, p.ID)
		return "", fmt.Errorf("execute script: %w", err)
	}

	s.depth++
	defer func() { s.depth-- }()

	deadline := time.Now().Add(s.host.opts.ScriptTimeout)
	for !p.Done {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			delete(s.pending, p.ID)
			log.Warn().
				Uint64("request", uint64(p.ID)).
				Dur("timeout", s.host.opts.ScriptTimeout).
				Msg("synchronous evaluation timed out")
			return "", ErrScriptTimeout
		}
		if err := ctx.Err(); err != nil {
			delete(s.pending, p.ID)
			return "", err
		}
		s.host.rt.PumpWait(ctx, s.host.opts.slice(remaining))
	}

	log.Trace().
		Uint64("request", uint64(p.ID)).
		Dur("elapsed", time.Since(p.IssuedAt)).
		Msg("synchronous evaluation completed")
	return p.Result, p.Err
}

// EvaluateAsync issues script and returns at once. handler runs exactly once
// on the UI goroutine: with the result, a *ScriptExecutionError,
// ErrScriptTimeout, or ErrBridgeNotReady if the host closes first.
// The returned id is 0 when the request was never issued.
func (s *ScriptBridge) EvaluateAsync(ctx context.Context, script string, handler entity.ScriptCompletion) entity.ScriptRequestID {
	if handler == nil {
		handler = func(string, error) {}
	}
	if !s.host.ready() {
		handler("", ErrBridgeNotReady)
		return 0
	}

	p := s.register(script, handler, false)
	if err := s.host.rt.engine.ExecuteJavaScript(ctx, s.host.id, p.ID, script); err != nil {
		delete(s.pending, p.ID)
		err = fmt.Errorf("execute script: %w", err)
		p.Resolve("", err)
		handler("", err)
		return 0
	}

	rt, browser, id := s.host.rt, s.host.id, p.ID
	timer := time.AfterFunc(s.host.opts.ScriptTimeout, func() {
		rt.Deliver(port.ScriptTimeout{Browser: browser, Request: id})
	})
	p.SetTimer(timer.Stop)
	return id
}

func (s *ScriptBridge) register(script string, handler entity.ScriptCompletion, blocking bool) *entity.PendingScript {
	s.nextID++
	p := entity.NewPendingScript(s.nextID, script, handler, blocking)
	s.pending[p.ID] = p
	return p
}

func (s *ScriptBridge) onResult(ctx context.Context, ev port.ScriptResult) {
	p, ok := s.pending[ev.Request]
	if !ok {
		componentLogger(ctx, "script-bridge").Debug().
			Uint64("request", uint64(ev.Request)).
			Msg("dropping late script result")
		return
	}
	delete(s.pending, ev.Request)

	var err error
	if ev.Exception != "" {
		err = &ScriptExecutionError{Request: ev.Request, Message: ev.Exception}
	}
	s.complete(p, ev.Value, err)
}

func (s *ScriptBridge) onTimeout(ctx context.Context, ev port.ScriptTimeout) {
	p, ok := s.pending[ev.Request]
	if !ok {
		return
	}
	delete(s.pending, ev.Request)

	componentLogger(ctx, "script-bridge").Warn().
		Uint64("request", uint64(ev.Request)).
		Dur("timeout", s.host.opts.ScriptTimeout).
		Msg("asynchronous evaluation timed out")
	s.complete(p, "", ErrScriptTimeout)
}

// abort resolves every pending evaluation with err, oldest first.
func (s *ScriptBridge) abort(err error) {
	ids := make([]entity.ScriptRequestID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		p := s.pending[id]
		delete(s.pending, id)
		s.complete(p, "", err)
	}
}

func (s *ScriptBridge) complete(p *entity.PendingScript, result string, err error) {
	if !p.Resolve(result, err) {
		return
	}
	if p.Handler != nil {
		p.Handler(p.Result, p.Err)
	}
}

package headless

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

type recorder struct {
	mu     sync.Mutex
	events []port.Event
}

func (r *recorder) Deliver(ev port.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []port.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]port.Event(nil), r.events...)
}

// waitFor blocks until an event of type T satisfying match was delivered.
func waitFor[T port.Event](t *testing.T, rec *recorder, match func(T) bool) T {
	t.Helper()
	var found T
	require.Eventually(t, func() bool {
		for _, ev := range rec.snapshot() {
			if typed, ok := ev.(T); ok && (match == nil || match(typed)) {
				found = typed
				return true
			}
		}
		return false
	}, 3*time.Second, 5*time.Millisecond)
	return found
}

func startEngine(t *testing.T, mutate ...func(*port.EngineOptions)) (*Engine, *recorder) {
	t.Helper()
	opts := port.EngineOptions{
		CachePath:      t.TempDir(),
		Sandbox:        port.SandboxRelaxed,
		UserAgent:      "embedview-test",
		RequestTimeout: 2 * time.Second,
	}
	for _, m := range mutate {
		m(&opts)
	}

	e := New()
	rec := &recorder{}
	require.NoError(t, e.Start(context.Background(), opts, rec))
	t.Cleanup(func() { _ = e.Shutdown(context.Background()) })
	return e, rec
}

func createBrowser(t *testing.T, e *Engine) port.BrowserID {
	t.Helper()
	id, err := e.CreateBrowser(context.Background(), port.BrowserSpec{
		Window:   NewWindow(),
		Geometry: entity.NewGeometry(0, 0, 800, 600),
	})
	require.NoError(t, err)
	return id
}

func loadHTML(t *testing.T, e *Engine, rec *recorder, id port.BrowserID, gen port.Generation, markup string) port.LoadEnd {
	t.Helper()
	require.NoError(t, e.LoadHTML(context.Background(), id, markup, "https://example.test/page", gen))
	return waitFor(t, rec, func(ev port.LoadEnd) bool { return ev.Browser == id && ev.Gen == gen })
}

func evaluate(t *testing.T, e *Engine, rec *recorder, id port.BrowserID, req entity.ScriptRequestID, script string) port.ScriptResult {
	t.Helper()
	require.NoError(t, e.ExecuteJavaScript(context.Background(), id, req, script))
	return waitFor(t, rec, func(ev port.ScriptResult) bool { return ev.Request == req })
}

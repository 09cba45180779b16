package webview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/infrastructure/headless"
)

func newTestView(t *testing.T) (*WebView, *Runtime) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Engine.CachePath = t.TempDir()
	cfg.Bridge.ScriptTimeout = 2 * time.Second
	cfg.Bridge.CloseTimeout = 2 * time.Second
	cfg.Bridge.PumpInterval = 5 * time.Millisecond

	rt := NewRuntime(headless.New(), cfg)
	w := New(context.Background(), rt, headless.NewWindow(), entity.NewGeometry(0, 0, 800, 600))
	t.Cleanup(func() {
		_ = w.Close(context.Background())
		_ = rt.Shutdown(context.Background())
	})
	return w, rt
}

// settle pumps until the view leaves the Loading phase.
func settle(t *testing.T, rt *Runtime, w *WebView) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for w.Phase() == PhaseLoading {
		require.True(t, time.Now().Before(deadline), "view did not settle")
		rt.PumpWait(context.Background(), 10*time.Millisecond)
	}
}

func pageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><head><title>page %s</title></head><body>%s</body></html>", r.URL.Path, r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWebView_BeforeFirstLoad(t *testing.T) {
	w, _ := newTestView(t)

	assert.Equal(t, PhaseIdle, w.Phase())
	assert.Nil(t, w.MainFrameURL())
	assert.Empty(t, w.MainFrameTitle())
	assert.False(t, w.CanGoBack())
	assert.False(t, w.CanGoForward())
	assert.NoError(t, w.GoBack())
	assert.NoError(t, w.Reload())

	assert.Empty(t, w.StringByEvaluatingJavaScript("1+1"))
	assert.ErrorIs(t, w.LastScriptError(), ErrBridgeNotReady)

	calls := 0
	w.EvaluateJavaScript("1+1", func(result string, err error) {
		calls++
		assert.ErrorIs(t, err, ErrBridgeNotReady)
	})
	assert.Equal(t, 1, calls)
}

func TestWebView_LoadHTMLString(t *testing.T) {
	w, rt := newTestView(t)

	require.NoError(t, w.LoadHTMLString("<title>Inline</title><p>hi</p>", "https://example.test/base"))
	assert.Equal(t, PhaseLoading, w.Phase())
	settle(t, rt, w)

	assert.Equal(t, PhaseLoaded, w.Phase())
	assert.Equal(t, "Inline", w.MainFrameTitle())
	require.NotNil(t, w.MainFrameURL())
	assert.Equal(t, "example.test", w.MainFrameURL().Host)
}

func TestWebView_HistoryOverHTTP(t *testing.T) {
	srv := pageServer(t)
	w, rt := newTestView(t)

	for _, path := range []string{"/one", "/two", "/three"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)
		require.NoError(t, w.LoadRequest(req))
		settle(t, rt, w)
		require.Equal(t, PhaseLoaded, w.Phase())
	}

	assert.True(t, w.CanGoBack())
	assert.False(t, w.CanGoForward())
	assert.Equal(t, "page /three", w.MainFrameTitle())

	require.NoError(t, w.GoBack())
	settle(t, rt, w)
	assert.Equal(t, "page /two", w.MainFrameTitle())
	assert.Equal(t, "/two", w.MainFrameURL().Path)
	assert.True(t, w.CanGoForward())

	require.NoError(t, w.GoForward())
	settle(t, rt, w)
	assert.Equal(t, "page /three", w.MainFrameTitle())
	assert.Len(t, w.State().History, 3)
}

func TestWebView_LoadRequestRejectsPost(t *testing.T) {
	w, _ := newTestView(t)

	req, err := http.NewRequest(http.MethodPost, "https://example.test/", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, w.LoadRequest(req), ErrUnsupportedRequest)
	assert.Equal(t, PhaseIdle, w.Phase())
}

func TestWebView_FailedNavigationKeepsDocument(t *testing.T) {
	w, rt := newTestView(t)

	require.NoError(t, w.LoadHTMLString("<title>Kept</title>", "https://example.test/"))
	settle(t, rt, w)

	require.NoError(t, w.LoadURL("gopher://example.test/"))
	settle(t, rt, w)

	assert.Equal(t, PhaseFailed, w.Phase())
	require.NotNil(t, w.LastNavigationError())
	assert.Equal(t, entity.NavigationContentError, w.LastNavigationError().Kind)
	assert.Equal(t, "Kept", w.MainFrameTitle())
}

func TestWebView_Scripts(t *testing.T) {
	w, rt := newTestView(t)
	require.NoError(t, w.LoadHTMLString("<title>S</title><p id='x'>value</p>", "https://example.test/"))
	settle(t, rt, w)

	assert.Equal(t, "2", w.StringByEvaluatingJavaScript("1+1"))
	assert.NoError(t, w.LastScriptError())

	assert.Empty(t, w.StringByEvaluatingJavaScript("throw new Error('nope')"))
	var execErr *ScriptExecutionError
	require.True(t, errors.As(w.LastScriptError(), &execErr))
	assert.Equal(t, "Error: nope", execErr.Message)

	got, err := w.EvaluateSync(context.Background(), "document.getElementById('x').textContent")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	var results []string
	w.EvaluateJavaScript("'a'", func(result string, err error) {
		assert.NoError(t, err)
		results = append(results, result)
	})
	w.EvaluateJavaScript("'b'", func(result string, err error) {
		assert.NoError(t, err)
		results = append(results, result)
	})
	deadline := time.Now().Add(3 * time.Second)
	for len(results) < 2 && time.Now().Before(deadline) {
		rt.PumpWait(context.Background(), 10*time.Millisecond)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, results)
}

func TestWebView_CloseIsFinal(t *testing.T) {
	w, rt := newTestView(t)
	require.NoError(t, w.LoadHTMLString("<title>C</title>", ""))
	settle(t, rt, w)

	require.NoError(t, w.Close(context.Background()))
	require.NoError(t, w.Close(context.Background()))

	assert.ErrorIs(t, w.LoadURL("about:blank"), ErrBridgeNotReady)
	_, err := w.EvaluateSync(context.Background(), "1")
	assert.ErrorIs(t, err, ErrBridgeNotReady)
	assert.Equal(t, 0, rt.Stats().LiveHosts)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

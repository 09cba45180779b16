package bridge

import (
	"context"
	"fmt"
	"testing"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAll(t *testing.T, rt *Runtime, host *Host, urls ...string) {
	t.Helper()
	for _, u := range urls {
		require.NoError(t, host.Navigator().LoadURL(context.Background(), u))
		drain(rt)
	}
}

func TestNavigator_StaleGenerationIgnored(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	eng.holdLoads = true
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	require.NoError(t, nav.LoadURL(ctx, "https://a.example/"))
	first := eng.lastLoad()
	require.NoError(t, nav.LoadURL(ctx, "https://b.example/"))
	second := eng.lastLoad()
	require.Greater(t, second.gen, first.gen)

	rt.Deliver(port.LoadEnd{Browser: host.ID(), Gen: first.gen, URL: first.url, Title: "A"})
	drain(rt)
	assert.Equal(t, entity.PhaseLoading, nav.Phase())
	assert.Empty(t, nav.URL())
	assert.Empty(t, host.State().History)

	rt.Deliver(port.LoadEnd{Browser: host.ID(), Gen: second.gen, URL: second.url, Title: "B"})
	drain(rt)
	state := host.State()
	assert.Equal(t, entity.PhaseLoaded, state.Phase)
	assert.Equal(t, "https://b.example/", state.URL)
	assert.Equal(t, "B", state.Title)
	assert.Len(t, state.History, 1)

	// A late error for the superseded load changes nothing.
	rt.Deliver(port.LoadError{Browser: host.ID(), Gen: first.gen, Kind: entity.NavigationNetworkFailure})
	drain(rt)
	assert.Equal(t, entity.PhaseLoaded, nav.Phase())
	assert.Nil(t, nav.LastError())
}

func TestNavigator_SequentialLoadsBuildHistory(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d loads", n), func(t *testing.T) {
			rt := newTestRuntime(t, newFakeEngine())
			host := newTestHost(t, rt, "")

			urls := make([]string, n)
			for i := range urls {
				urls[i] = fmt.Sprintf("https://example.com/%d", i)
			}
			loadAll(t, rt, host, urls...)

			state := host.State()
			require.Len(t, state.History, n)
			assert.Equal(t, n-1, state.Cursor)
			assert.Equal(t, n > 1, state.CanGoBack())
			assert.False(t, state.CanGoForward())
			assert.Equal(t, urls[n-1], state.URL)
		})
	}
}

func TestNavigator_BackForwardRestoresEntries(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()
	loadAll(t, rt, host, "https://a.example/", "https://b.example/", "https://c.example/")

	require.NoError(t, nav.GoBack(ctx))
	// Committed values hold until the engine reports back.
	assert.Equal(t, "https://c.example/", nav.URL())
	assert.Equal(t, "title of https://c.example/", nav.Title())
	assert.Equal(t, 2, host.State().Cursor)
	assert.Equal(t, entity.PhaseLoading, nav.Phase())
	drain(rt)
	assert.Equal(t, "https://b.example/", nav.URL())
	assert.Equal(t, "title of https://b.example/", nav.Title())
	assert.Equal(t, 1, host.State().Cursor)

	require.NoError(t, nav.GoForward(ctx))
	drain(rt)

	state := host.State()
	assert.Equal(t, entity.PhaseLoaded, state.Phase)
	assert.Equal(t, "https://c.example/", state.URL)
	assert.Equal(t, "title of https://c.example/", state.Title)
	assert.Len(t, state.History, 3)
	assert.Equal(t, 2, state.Cursor)
}

func TestNavigator_HistoryBoundsAreNoops(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	require.NoError(t, nav.GoBack(ctx))
	require.NoError(t, nav.GoForward(ctx))
	assert.Equal(t, 0, eng.loadCount())

	loadAll(t, rt, host, "https://only.example/")
	gen := nav.Generation()
	require.NoError(t, nav.GoBack(ctx))
	require.NoError(t, nav.GoForward(ctx))
	assert.Equal(t, 1, eng.loadCount())
	assert.Equal(t, gen, nav.Generation())
}

func TestNavigator_LoadAfterBackTruncatesForwardHistory(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t, newFakeEngine())
	host := newTestHost(t, rt, "")
	nav := host.Navigator()
	loadAll(t, rt, host, "https://a.example/", "https://b.example/", "https://c.example/")

	require.NoError(t, nav.GoBack(ctx))
	drain(rt)
	require.NoError(t, nav.GoBack(ctx))
	drain(rt)
	loadAll(t, rt, host, "https://d.example/")

	state := host.State()
	require.Len(t, state.History, 2)
	assert.Equal(t, "https://a.example/", state.History[0].URL)
	assert.Equal(t, "https://d.example/", state.History[1].URL)
	assert.Equal(t, 1, state.Cursor)
	assert.False(t, state.CanGoForward())
}

func TestNavigator_FailedLoadKeepsCommittedDocument(t *testing.T) {
	eng := newFakeEngine()
	eng.failURLs["https://down.example/"] = entity.NavigationNetworkFailure
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	loadAll(t, rt, host, "https://up.example/", "https://down.example/")

	state := host.State()
	assert.Equal(t, entity.PhaseFailed, state.Phase)
	assert.Equal(t, "https://up.example/", state.URL)
	assert.Equal(t, "title of https://up.example/", state.Title)
	assert.Len(t, state.History, 1)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entity.NavigationNetworkFailure, state.LastError.Kind)
	assert.Equal(t, "https://down.example/", state.LastError.URL)

	// The next successful load clears the error.
	loadAll(t, rt, host, "https://up.example/again")
	assert.Nil(t, host.State().LastError)
	assert.Equal(t, entity.PhaseLoaded, host.State().Phase)
}

func TestNavigator_EngineRejectionFails(t *testing.T) {
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	eng.loadErr = errBoom

	require.NoError(t, host.Navigator().LoadURL(context.Background(), "https://example.com/"))
	state := host.State()
	assert.Equal(t, entity.PhaseFailed, state.Phase)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entity.NavigationContentError, state.LastError.Kind)
}

func TestNavigator_StopCancelsInFlightNavigation(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	eng.holdLoads = true
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	require.NoError(t, nav.LoadURL(ctx, "https://slow.example/"))
	call := eng.lastLoad()
	require.NoError(t, nav.Stop(ctx))
	assert.Equal(t, 1, eng.stops)

	state := host.State()
	assert.Equal(t, entity.PhaseFailed, state.Phase)
	require.NotNil(t, state.LastError)
	assert.Equal(t, entity.NavigationCancelled, state.LastError.Kind)
	assert.Equal(t, "navigation stopped", state.LastError.Message)

	// Trailing events for the stopped navigation are ignored.
	rt.Deliver(port.LoadError{Browser: host.ID(), Gen: call.gen, Kind: entity.NavigationCancelled, Message: "engine says cancelled"})
	rt.Deliver(port.LoadEnd{Browser: host.ID(), Gen: call.gen, URL: call.url, Title: "late"})
	drain(rt)

	state = host.State()
	assert.Equal(t, entity.PhaseFailed, state.Phase)
	assert.Equal(t, "navigation stopped", state.LastError.Message)
	assert.Empty(t, state.History)
}

func TestNavigator_StopOutsideLoadingIsNoop(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")

	require.NoError(t, host.Navigator().Stop(ctx))
	loadAll(t, rt, host, "https://a.example/")
	require.NoError(t, host.Navigator().Stop(ctx))

	assert.Equal(t, 0, eng.stops)
	assert.Equal(t, entity.PhaseLoaded, host.State().Phase)
}

func TestNavigator_ReloadKeepsHistory(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	require.NoError(t, nav.Reload(ctx))
	assert.Equal(t, 0, eng.loadCount())
	assert.Equal(t, entity.PhaseIdle, nav.Phase())

	loadAll(t, rt, host, "https://a.example/", "https://b.example/")
	eng.titles["https://b.example/"] = "B v2"
	require.NoError(t, nav.Reload(ctx))
	drain(rt)

	state := host.State()
	require.Len(t, state.History, 2)
	assert.Equal(t, 1, state.Cursor)
	assert.Equal(t, "B v2", state.Title)
	assert.Equal(t, "B v2", state.History[1].Title)
	assert.Equal(t, "https://b.example/", eng.lastLoad().url)
}

func TestNavigator_PageInitiatedNavigation(t *testing.T) {
	rt := newTestRuntime(t, newFakeEngine())
	host := newTestHost(t, rt, "")
	loadAll(t, rt, host, "https://a.example/")

	rt.Deliver(port.LoadStart{Browser: host.ID(), Gen: port.PageInitiated, URL: "https://a.example/next"})
	drain(rt)
	assert.Equal(t, entity.PhaseLoading, host.State().Phase)

	rt.Deliver(port.LoadEnd{Browser: host.ID(), Gen: port.PageInitiated, URL: "https://a.example/next", Title: "Next"})
	drain(rt)

	state := host.State()
	assert.Equal(t, entity.PhaseLoaded, state.Phase)
	assert.Equal(t, "https://a.example/next", state.URL)
	assert.Len(t, state.History, 2)
	assert.True(t, state.CanGoBack())
}

func TestNavigator_PageInitiatedIgnoredDuringHostNavigation(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	eng.holdLoads = true
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")

	require.NoError(t, host.Navigator().LoadURL(ctx, "https://host.example/"))
	rt.Deliver(port.LoadEnd{Browser: host.ID(), Gen: port.PageInitiated, URL: "https://page.example/", Title: "page"})
	drain(rt)

	state := host.State()
	assert.Equal(t, entity.PhaseLoading, state.Phase)
	assert.Empty(t, state.History)
}

func TestNavigator_TitleChangedUpdatesCurrentEntry(t *testing.T) {
	rt := newTestRuntime(t, newFakeEngine())
	host := newTestHost(t, rt, "")
	loadAll(t, rt, host, "https://a.example/")

	rt.Deliver(port.TitleChanged{Browser: host.ID(), Title: "Renamed"})
	drain(rt)

	state := host.State()
	assert.Equal(t, "Renamed", state.Title)
	assert.Equal(t, "Renamed", state.History[0].Title)
}

func TestNavigator_HistoryReplaysMarkupDocuments(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	const doc = "<html><title>Inline</title></html>"
	require.NoError(t, nav.LoadHTML(ctx, doc, ""))
	drain(rt)
	loadAll(t, rt, host, "https://a.example/")

	require.NoError(t, nav.GoBack(ctx))
	drain(rt)

	call := eng.lastLoad()
	assert.Equal(t, doc, call.html)
	assert.Equal(t, blankURL, call.url)
	assert.Equal(t, blankURL, nav.URL())
	assert.Len(t, host.State().History, 2)
}

func TestNavigator_FailedBackNavigationKeepsCursor(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()
	loadAll(t, rt, host, "https://a.example/", "https://b.example/")

	eng.mu.Lock()
	eng.failURLs["https://a.example/"] = entity.NavigationNetworkFailure
	eng.mu.Unlock()

	require.NoError(t, nav.GoBack(ctx))
	drain(rt)

	state := host.State()
	assert.Equal(t, entity.PhaseFailed, state.Phase)
	assert.Equal(t, "https://b.example/", state.URL)
	assert.Equal(t, "title of https://b.example/", state.Title)
	assert.Equal(t, 1, state.Cursor)
	assert.True(t, state.CanGoBack())
	assert.False(t, state.CanGoForward())
	require.NotNil(t, state.LastError)
	assert.Equal(t, "https://a.example/", state.LastError.URL)
}

func TestNavigator_EmptyMarkupLoadsAsDocument(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")
	nav := host.Navigator()

	require.NoError(t, nav.LoadHTML(ctx, "", "https://example.com/app/"))
	call := eng.lastLoad()
	assert.True(t, call.inline)
	assert.Empty(t, call.html)
	assert.Equal(t, "https://example.com/app/", call.url)
	drain(rt)

	state := host.State()
	assert.Equal(t, "https://example.com/app/", state.URL)
	require.Len(t, state.History, 1)
	assert.True(t, state.History[0].IsDocument())

	loadAll(t, rt, host, "https://other.example/")
	require.NoError(t, nav.GoBack(ctx))
	drain(rt)
	call = eng.lastLoad()
	assert.True(t, call.inline)
	assert.Equal(t, "https://example.com/app/", call.url)

	require.NoError(t, nav.Reload(ctx))
	drain(rt)
	assert.True(t, eng.lastLoad().inline)
	assert.Equal(t, 0, host.State().Cursor)
}

package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/application/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuntime_EnsureStartedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	eng := mocks.NewMockEngine(t)
	eng.EXPECT().Start(mock.Anything, mock.MatchedBy(func(opts port.EngineOptions) bool {
		return opts.Sandbox == port.SandboxRelaxed && opts.CachePath != ""
	}), mock.Anything).Return(nil).Once()

	rt := newTestRuntime(t, eng)
	require.NoError(t, rt.EnsureStarted(ctx))
	require.NoError(t, rt.EnsureStarted(ctx))
	assert.True(t, rt.Stats().Started)
}

func TestRuntime_StartFailureIsSticky(t *testing.T) {
	ctx := context.Background()
	eng := mocks.NewMockEngine(t)
	eng.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(errBoom).Once()

	rt := newTestRuntime(t, eng)

	first := rt.EnsureStarted(ctx)
	var startErr *EngineStartError
	require.ErrorAs(t, first, &startErr)
	assert.ErrorIs(t, first, errBoom)

	second := rt.EnsureStarted(ctx)
	assert.Same(t, first, second)

	// Browser creation fails fast without reaching the engine.
	_, err := NewHost(ctx, rt, validWindow(), "https://example.com", testGeometry)
	var creationErr *BrowserCreationError
	require.ErrorAs(t, err, &creationErr)
	assert.True(t, IsEngineStartError(err))
	assert.Equal(t, 0, rt.Stats().LiveHosts)
}

func TestRuntime_ShutdownRefusedWhileHostsAlive(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	host := newTestHost(t, rt, "")

	err := rt.Shutdown(ctx)
	require.ErrorIs(t, err, ErrHandlesAlive)
	assert.False(t, rt.Stats().ShutDown)
	assert.Equal(t, 0, eng.shutdowns)

	require.NoError(t, host.Close(ctx))
	require.NoError(t, rt.Shutdown(ctx))
	require.NoError(t, rt.Shutdown(ctx))
	assert.Equal(t, 1, eng.shutdowns)

	assert.ErrorIs(t, rt.EnsureStarted(ctx), ErrRuntimeShutdown)
	_, err = NewHost(ctx, rt, validWindow(), "", testGeometry)
	assert.ErrorIs(t, err, ErrRuntimeShutdown)
}

func TestRuntime_ShutdownBeforeStartSkipsEngine(t *testing.T) {
	eng := mocks.NewMockEngine(t)
	rt := newTestRuntime(t, eng)

	require.NoError(t, rt.Shutdown(context.Background()))
	assert.True(t, rt.Stats().ShutDown)
}

func TestRuntime_PumpDropsEventsForUnknownBrowser(t *testing.T) {
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	require.NoError(t, rt.EnsureStarted(context.Background()))

	rt.Deliver(port.LoadEnd{Browser: 99, Gen: 1, URL: "https://nowhere.example"})
	rt.Deliver(port.BrowserClosed{Browser: 99})
	assert.Equal(t, 2, rt.Stats().QueuedEvents)

	assert.Equal(t, 1, rt.Pump(context.Background(), 1))
	assert.Equal(t, 1, rt.Pump(context.Background(), 0))
	assert.Equal(t, 0, rt.Stats().QueuedEvents)
	assert.Equal(t, 2, eng.work)
}

func TestRuntime_PumpWaitWakesOnDelivery(t *testing.T) {
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	require.NoError(t, rt.EnsureStarted(context.Background()))

	go func() {
		time.Sleep(20 * time.Millisecond)
		rt.Deliver(port.BrowserClosed{Browser: 7})
	}()

	start := time.Now()
	n := 0
	for n == 0 && time.Since(start) < 2*time.Second {
		n = rt.PumpWait(context.Background(), time.Second)
	}
	assert.Equal(t, 1, n)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRuntime_PumpWaitHonorsContext(t *testing.T) {
	eng := newFakeEngine()
	rt := newTestRuntime(t, eng)
	require.NoError(t, rt.EnsureStarted(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	assert.Equal(t, 0, rt.PumpWait(ctx, 5*time.Second))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}

package bridge

import (
	"errors"
	"fmt"

	"github.com/bnema/embedview/internal/domain/entity"
)

// Sentinel errors for bridge operations.
var (
	// ErrScriptTimeout is returned when an evaluation does not complete
	// within the script timeout.
	ErrScriptTimeout = errors.New("script evaluation timed out")
	// ErrBridgeNotReady is returned when no live browser can serve the call.
	ErrBridgeNotReady = errors.New("bridge not ready: no live browser")
	// ErrHandlesAlive is returned by Runtime.Shutdown while hosts are open.
	ErrHandlesAlive = errors.New("engine runtime still has live browser hosts")
	// ErrRuntimeShutdown is returned when starting a runtime that was shut down.
	ErrRuntimeShutdown = errors.New("engine runtime has been shut down")
	// ErrReentrancyLimit is returned when synchronous evaluations nest too deeply.
	ErrReentrancyLimit = errors.New("synchronous evaluation nested too deeply")
	// ErrInvalidWindow is returned when the native window cannot host a browser.
	ErrInvalidWindow = errors.New("native window is not valid")
	// ErrCloseTimeout is returned when the engine never confirms browser teardown.
	ErrCloseTimeout = errors.New("engine did not confirm browser close")
)

// EngineStartError reports that the engine failed to initialize.
// It is sticky: the runtime returns the same error on every later start.
type EngineStartError struct {
	Err error
}

func (e *EngineStartError) Error() string {
	return fmt.Sprintf("engine start failed: %v", e.Err)
}

func (e *EngineStartError) Unwrap() error {
	return e.Err
}

// BrowserCreationError reports that a browser could not be created.
// Creation may be retried with a different window.
type BrowserCreationError struct {
	Reason string
	Err    error
}

func (e *BrowserCreationError) Error() string {
	if e.Err == nil {
		return "browser creation failed: " + e.Reason
	}
	return fmt.Sprintf("browser creation failed: %s: %v", e.Reason, e.Err)
}

func (e *BrowserCreationError) Unwrap() error {
	return e.Err
}

// ScriptExecutionError carries the exception text reported by the engine.
type ScriptExecutionError struct {
	Request entity.ScriptRequestID
	Message string
}

func (e *ScriptExecutionError) Error() string {
	return fmt.Sprintf("script %d raised: %s", e.Request, e.Message)
}

// IsEngineStartError reports whether err is or wraps an EngineStartError.
func IsEngineStartError(err error) bool {
	var startErr *EngineStartError
	return errors.As(err, &startErr)
}

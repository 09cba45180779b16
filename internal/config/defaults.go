package config

import (
	"time"
)

// Default configuration constants
const (
	defaultRequestTimeout = 30 * time.Second
	defaultScriptTimeout  = 5 * time.Second
	defaultCloseTimeout   = 2 * time.Second
	defaultPumpInterval   = 10 * time.Millisecond
	defaultMaxReentrancy  = 4
	// One frame at 60Hz.
	defaultResizeCoalesce = 16 * time.Millisecond

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) embedview/1.0"
)

// DefaultConfig returns the default configuration values for embedview.
// Engine.CachePath is left empty and resolved to the XDG cache directory on load.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Backend:        BackendHeadless,
			LogLevel:       "warn",
			Sandbox:        SandboxRelaxed,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
		},
		Bridge: BridgeConfig{
			ScriptTimeout:  defaultScriptTimeout,
			CloseTimeout:   defaultCloseTimeout,
			PumpInterval:   defaultPumpInterval,
			MaxReentrancy:  defaultMaxReentrancy,
			ResizeCoalesce: defaultResizeCoalesce,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

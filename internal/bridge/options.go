package bridge

import (
	"context"
	"time"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/logging"
	"github.com/rs/zerolog"
)

// Options tunes the blocking parts of the bridge.
type Options struct {
	ScriptTimeout time.Duration
	CloseTimeout  time.Duration
	PumpInterval  time.Duration
	MaxReentrancy int
}

// OptionsFromConfig converts the bridge config section.
func OptionsFromConfig(cfg config.BridgeConfig) Options {
	return Options{
		ScriptTimeout: cfg.ScriptTimeout,
		CloseTimeout:  cfg.CloseTimeout,
		PumpInterval:  cfg.PumpInterval,
		MaxReentrancy: cfg.MaxReentrancy,
	}
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Bridge)
}

// EngineOptionsFromConfig converts the engine config section.
func EngineOptionsFromConfig(cfg config.EngineConfig) port.EngineOptions {
	return port.EngineOptions{
		LogLevel:       cfg.LogLevel,
		CachePath:      cfg.CachePath,
		Sandbox:        port.SandboxPolicy(cfg.Sandbox),
		UserAgent:      cfg.UserAgent,
		RequestTimeout: cfg.RequestTimeout,
	}
}

func (o Options) slice(remaining time.Duration) time.Duration {
	if o.PumpInterval > 0 && o.PumpInterval < remaining {
		return o.PumpInterval
	}
	return remaining
}

func componentLogger(ctx context.Context, component string) *zerolog.Logger {
	return logging.FromContext(logging.WithComponent(ctx, component))
}

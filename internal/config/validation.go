package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// normalizeConfig lowercases enum values and resolves derived paths.
func normalizeConfig(config *Config) error {
	config.Engine.Backend = EngineBackend(strings.ToLower(strings.TrimSpace(string(config.Engine.Backend))))
	config.Engine.Sandbox = SandboxPolicy(strings.ToLower(strings.TrimSpace(string(config.Engine.Sandbox))))
	config.Engine.LogLevel = strings.ToLower(strings.TrimSpace(config.Engine.LogLevel))
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if config.Engine.CachePath == "" {
		cacheDir, err := GetCacheDir()
		if err != nil {
			return fmt.Errorf("failed to get cache directory: %w", err)
		}
		config.Engine.CachePath = cacheDir
	}
	return nil
}

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Engine.Backend {
	case BackendHeadless, BackendWebKitGTK:
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("engine.backend must be one of: headless, webkitgtk (got: %s)", config.Engine.Backend))
	}

	switch config.Engine.Sandbox {
	case SandboxStrict, SandboxRelaxed, SandboxNone:
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("engine.sandbox must be one of: strict, relaxed, none (got: %s)", config.Engine.Sandbox))
	}

	if !validLogLevels[config.Engine.LogLevel] {
		validationErrors = append(validationErrors,
			fmt.Sprintf("engine.log_level must be one of: trace, debug, info, warn, error (got: %s)", config.Engine.LogLevel))
	}
	if config.Engine.RequestTimeout <= 0 {
		validationErrors = append(validationErrors, "engine.request_timeout must be positive")
	}

	if config.Bridge.ScriptTimeout <= 0 {
		validationErrors = append(validationErrors, "bridge.script_timeout must be positive")
	}
	if config.Bridge.CloseTimeout <= 0 {
		validationErrors = append(validationErrors, "bridge.close_timeout must be positive")
	}
	if config.Bridge.PumpInterval <= 0 {
		validationErrors = append(validationErrors, "bridge.pump_interval must be positive")
	} else if config.Bridge.ScriptTimeout > 0 && config.Bridge.PumpInterval > config.Bridge.ScriptTimeout {
		validationErrors = append(validationErrors, "bridge.pump_interval must not exceed bridge.script_timeout")
	}
	if config.Bridge.MaxReentrancy < 1 {
		validationErrors = append(validationErrors, "bridge.max_reentrancy must be at least 1")
	}
	if config.Bridge.ResizeCoalesce < 0 {
		validationErrors = append(validationErrors, "bridge.resize_coalesce must be non-negative")
	}

	if !validLogLevels[config.Logging.Level] {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%s", strings.Join(validationErrors, "; "))
	}
	return nil
}

// Validate checks cfg without normalizing it.
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

// Package config provides configuration management for embedview with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

const envPrefix = "EMBEDVIEW"

// Config represents the complete configuration for embedview.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine" json:"engine" jsonschema:"description=Web engine startup options"`
	Bridge  BridgeConfig  `mapstructure:"bridge" json:"bridge" jsonschema:"description=Embedding bridge timing and limits"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging" jsonschema:"description=Application logging"`
}

// EngineBackend selects the engine implementation.
type EngineBackend string

const (
	BackendHeadless  EngineBackend = "headless"
	BackendWebKitGTK EngineBackend = "webkitgtk"
)

// SandboxPolicy restricts what loaded documents may do.
type SandboxPolicy string

const (
	// SandboxStrict disables page scripts and local file access.
	SandboxStrict SandboxPolicy = "strict"
	// SandboxRelaxed runs page scripts but refuses local file access.
	SandboxRelaxed SandboxPolicy = "relaxed"
	// SandboxNone allows everything, including file:// URLs.
	SandboxNone SandboxPolicy = "none"
)

// EngineConfig is handed to the engine once, when the runtime starts.
type EngineConfig struct {
	Backend        EngineBackend `mapstructure:"backend" json:"backend" jsonschema:"enum=headless,enum=webkitgtk"`
	LogLevel       string        `mapstructure:"log_level" json:"log_level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	CachePath      string        `mapstructure:"cache_path" json:"cache_path" jsonschema:"description=Directory for engine persistent data"`
	Sandbox        SandboxPolicy `mapstructure:"sandbox" json:"sandbox" jsonschema:"enum=strict,enum=relaxed,enum=none"`
	UserAgent      string        `mapstructure:"user_agent" json:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout"`
}

// BridgeConfig tunes the embedding bridge.
type BridgeConfig struct {
	ScriptTimeout  time.Duration `mapstructure:"script_timeout" json:"script_timeout"`
	CloseTimeout   time.Duration `mapstructure:"close_timeout" json:"close_timeout"`
	PumpInterval   time.Duration `mapstructure:"pump_interval" json:"pump_interval"`
	MaxReentrancy  int           `mapstructure:"max_reentrancy" json:"max_reentrancy" jsonschema:"minimum=1"`
	ResizeCoalesce time.Duration `mapstructure:"resize_coalesce" json:"resize_coalesce"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configDir      string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return newManager(configDir)
}

func newManager(configDir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases kept alongside the automatic ENGINE_/BRIDGE_ keys.
	bindings := map[string]string{
		"logging.level":  "LOG_LEVEL",
		"logging.format": "LOG_FORMAT",
		"engine.backend": "BACKEND",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ReplaceAll(key, ".", "_"), envPrefix+"_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := m.createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return m.reload(false)
}

// reload rebuilds the in-memory config. Must be called with m.mu held for write.
func (m *Manager) reload(readFile bool) error {
	if readFile {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := normalizeConfig(cfg); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save writes cfg to the active config file and makes it current.
func (m *Manager) Save(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.viper.ConfigFileUsed()
	if path == "" {
		path = m.defaultConfigPath()
	}
	if err := WriteConfig(cfg, path); err != nil {
		return err
	}

	configCopy := *cfg
	m.config = &configCopy
	if m.watching {
		m.skipNextReload = true
	}
	return nil
}

// ConfigFile returns the path to the configuration file being used.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.defaultConfigPath()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("engine.backend", string(defaults.Engine.Backend))
	m.viper.SetDefault("engine.log_level", defaults.Engine.LogLevel)
	m.viper.SetDefault("engine.cache_path", defaults.Engine.CachePath)
	m.viper.SetDefault("engine.sandbox", string(defaults.Engine.Sandbox))
	m.viper.SetDefault("engine.user_agent", defaults.Engine.UserAgent)
	m.viper.SetDefault("engine.request_timeout", defaults.Engine.RequestTimeout)

	m.viper.SetDefault("bridge.script_timeout", defaults.Bridge.ScriptTimeout)
	m.viper.SetDefault("bridge.close_timeout", defaults.Bridge.CloseTimeout)
	m.viper.SetDefault("bridge.pump_interval", defaults.Bridge.PumpInterval)
	m.viper.SetDefault("bridge.max_reentrancy", defaults.Bridge.MaxReentrancy)
	m.viper.SetDefault("bridge.resize_coalesce", defaults.Bridge.ResizeCoalesce)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

func (m *Manager) defaultConfigPath() string {
	return filepath.Join(m.configDir, configFileName)
}

// createDefaultConfig writes the default configuration file.
func (m *Manager) createDefaultConfig() error {
	path := m.defaultConfigPath()
	if err := WriteConfig(DefaultConfig(), path); err != nil {
		return err
	}
	m.viper.SetConfigFile(path)
	return nil
}

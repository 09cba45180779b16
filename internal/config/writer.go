package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileDocument is the on-disk shape of Config: durations are
// written as strings so the file stays human-editable.
type fileDocument struct {
	Bridge  fileBridge    `toml:"bridge"`
	Engine  fileEngine    `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
}

type fileEngine struct {
	Backend        string `toml:"backend"`
	LogLevel       string `toml:"log_level"`
	CachePath      string `toml:"cache_path"`
	Sandbox        string `toml:"sandbox"`
	UserAgent      string `toml:"user_agent"`
	RequestTimeout string `toml:"request_timeout"`
}

type fileBridge struct {
	ScriptTimeout  string `toml:"script_timeout"`
	CloseTimeout   string `toml:"close_timeout"`
	PumpInterval   string `toml:"pump_interval"`
	MaxReentrancy  int    `toml:"max_reentrancy"`
	ResizeCoalesce string `toml:"resize_coalesce"`
}

func toFileDocument(cfg *Config) fileDocument {
	return fileDocument{
		Bridge: fileBridge{
			ScriptTimeout:  cfg.Bridge.ScriptTimeout.String(),
			CloseTimeout:   cfg.Bridge.CloseTimeout.String(),
			PumpInterval:   cfg.Bridge.PumpInterval.String(),
			MaxReentrancy:  cfg.Bridge.MaxReentrancy,
			ResizeCoalesce: cfg.Bridge.ResizeCoalesce.String(),
		},
		Engine: fileEngine{
			Backend:        string(cfg.Engine.Backend),
			LogLevel:       cfg.Engine.LogLevel,
			CachePath:      cfg.Engine.CachePath,
			Sandbox:        string(cfg.Engine.Sandbox),
			UserAgent:      cfg.Engine.UserAgent,
			RequestTimeout: cfg.Engine.RequestTimeout.String(),
		},
		Logging: LoggingConfig{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		},
	}
}

// EncodeTOML renders cfg as TOML with sections in alphabetical order.
func EncodeTOML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(toFileDocument(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConfig writes cfg to path, creating the parent directory.
func WriteConfig(cfg *Config, path string) error {
	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

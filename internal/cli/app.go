// Package cli wires configuration, logging and engine backends for the
// embedview command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/cli/styles"
	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/domain/build"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/infrastructure/headless"
	"github.com/bnema/embedview/internal/logging"
)

// Backend creates an engine and the windows its browsers render into.
type Backend struct {
	NewEngine func() port.Engine
	NewWindow func(title string, geom entity.Geometry) port.NativeWindow
}

var backends = map[config.EngineBackend]Backend{
	config.BackendHeadless: {
		NewEngine: func() port.Engine { return headless.New() },
		NewWindow: func(string, entity.Geometry) port.NativeWindow { return headless.NewWindow() },
	},
}

func registerBackend(name config.EngineBackend, b Backend) {
	backends[name] = b
}

// Backends lists the engine backends compiled into this binary.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Logger    zerolog.Logger

	ctx       context.Context
	overrides Overrides
}

// Overrides are command-line values that take precedence over the config file.
type Overrides struct {
	Backend  string
	LogLevel string
}

// NewApp loads configuration and builds the logger.
func NewApp(overrides Overrides) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	if overrides.Backend != "" {
		cfg.Engine.Backend = config.EngineBackend(overrides.Backend)
	}
	if overrides.LogLevel != "" {
		cfg.Logging.Level = overrides.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	// The global level gates output so a config reload can change it.
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	logger := logging.New(logging.Config{
		Level:      zerolog.TraceLevel,
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     os.Stderr,
	})
	ctx := logging.WithContext(context.Background(), logger)

	logger.Debug().
		Str("config_file", mgr.ConfigFile()).
		Str("backend", string(cfg.Engine.Backend)).
		Msg("configuration loaded")

	return &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		Logger:    logger,
		ctx:       ctx,
		overrides: overrides,
	}, nil
}

// WatchConfig reloads the log level when the config file changes. A level
// given on the command line wins and disables the reload.
func (a *App) WatchConfig() error {
	if a.overrides.LogLevel != "" {
		return nil
	}
	if err := a.Manager.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	a.Manager.OnConfigChange(func(cfg *config.Config) {
		level := logging.ParseLevel(cfg.Logging.Level)
		zerolog.SetGlobalLevel(level)
		a.Logger.Info().Str("level", level.String()).Msg("log level reloaded")
	})
	return nil
}

// Context returns a context carrying the application logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Backend returns the configured engine backend.
func (a *App) Backend() (Backend, error) {
	b, ok := backends[a.Config.Engine.Backend]
	if !ok {
		return Backend{}, fmt.Errorf("engine backend %q is not compiled in (available: %v)", a.Config.Engine.Backend, Backends())
	}
	return b, nil
}

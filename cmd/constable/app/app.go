// Package app provides the application context and dependency management
// for the constable CLI. It follows idiomatic Go patterns for CLI
// applications by centralizing configuration, dependency injection, and
// lifecycle management.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/axicon-labs/constable"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/registry"
)

// App represents the constable application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// reconciliation engine, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	engine constable.Engine
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "loading configuration", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Engine returns the reconciliation engine, creating it lazily if needed.
// Without options this is thread-safe and ensures only one instance is
// created; with options a fresh uncached instance is built, layered over
// the configured defaults.
func (a *App) Engine(opts ...constable.Option) (constable.Engine, error) {
	// Custom options always build a fresh instance
	if len(opts) > 0 {
		combined := append(a.buildEngineOptions(), opts...)
		eng, err := constable.New(combined...)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}

	a.mu.RLock()
	if a.engine != nil {
		eng := a.engine
		a.mu.RUnlock()
		return eng, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.engine != nil {
		return a.engine, nil
	}

	eng, err := constable.New(a.buildEngineOptions()...)
	if err != nil {
		return nil, err
	}

	a.engine = eng
	return eng, nil
}

// Registry returns the registry index from the default engine.
// This is a convenience method that handles engine initialization and
// index retrieval in one call.
func (a *App) Registry() (*registry.Index, error) {
	eng, err := a.Engine()
	if err != nil {
		return nil, err
	}
	return eng.Registry(), nil
}

// buildEngineOptions constructs engine options from the app configuration.
func (a *App) buildEngineOptions() []constable.Option {
	var opts []constable.Option

	// The registry file is the only required setting; leaving it unset
	// surfaces the engine's own configuration error.
	if a.config.RegistryFile != "" {
		opts = append(opts, constable.WithRegistryFile(a.config.RegistryFile))
	}

	if a.config.Threshold > 0 {
		opts = append(opts, constable.WithThreshold(a.config.Threshold))
	}

	if a.config.RequireUnique {
		opts = append(opts, constable.WithRequireUnique(true))
	}

	if a.config.NearMisses {
		opts = append(opts, constable.WithNearMisses(true))
	}

	if a.config.SmallIntegerThreshold > 0 {
		opts = append(opts, constable.WithSmallIntegerThreshold(a.config.SmallIntegerThreshold))
	}

	if a.config.ContextRadius > 0 {
		opts = append(opts, constable.WithContextRadius(a.config.ContextRadius))
	}

	if a.config.ReferenceTemplate != "" {
		opts = append(opts, constable.WithReferenceTemplate(a.config.ReferenceTemplate))
	}

	if a.config.BackupDir != "" {
		opts = append(opts, constable.WithBackupDir(a.config.BackupDir))
	}

	if a.config.Workers > 0 {
		opts = append(opts, constable.WithWorkers(a.config.Workers))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a pre-built engine, bypassing lazy initialization.
func WithEngine(engine constable.Engine) Option {
	return func(a *App) error {
		a.engine = engine
		return nil
	}
}

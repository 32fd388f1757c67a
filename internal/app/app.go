package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/certgen/internal/compiler"
	"github.com/specialistvlad/certgen/internal/config"
	"github.com/specialistvlad/certgen/internal/ctxlog"
	"github.com/specialistvlad/certgen/internal/randtoken"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	source   randtoken.Source
	compiler *compiler.Compiler
}

// NewApp is the constructor for the main application. Progress messages go
// to outW and log records to logW. If appConfig names a config file it is
// loaded with loader and merged below the explicit settings.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	cfg := *appConfig
	// The log settings are known before the config file is read, so the
	// loader logs through the final handler.
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if cfg.ConfigPath != "" {
		file, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, &ConfigurationError{Path: cfg.ConfigPath, Err: err}
		}
		cfg.merge(file)
		logger.Debug("Config file merged.", "path", cfg.ConfigPath)
	}
	cfg.applyDefaults()

	source, err := newSource(&cfg)
	if err != nil {
		return nil, &ConfigurationError{Path: cfg.ConfigPath, Err: err}
	}

	comp := compiler.New(cfg.CompilerCommand)
	comp.Args = cfg.CompilerArgs

	logger.Debug("Application configured.",
		"template", cfg.TemplatePath,
		"context", cfg.ContextDir,
		"compiler", cfg.CompilerCommand,
		"deterministic", cfg.StaticColors || cfg.Seed != nil,
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   &cfg,
		source:   source,
		compiler: comp,
	}, nil
}

// newSource picks the random source: an explicit seed wins over
// --static-colors, which wins over entropy.
func newSource(cfg *Config) (randtoken.Source, error) {
	switch {
	case cfg.Seed != nil:
		return randtoken.New(*cfg.Seed, cfg.Palette)
	case cfg.StaticColors:
		return randtoken.New(randtoken.StaticSeed, cfg.Palette)
	default:
		return randtoken.NewFromEntropy(cfg.Palette)
	}
}

// Config returns the effective configuration after merging and defaults.
func (a *App) Config() Config {
	return *a.config
}

package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/certgen/internal/compiler"
	"github.com/specialistvlad/certgen/internal/config"
)

const (
	DefaultTemplatePath = "./main.typ"
	DefaultContextDir   = "./context"
	DefaultLogFormat    = "text"
	DefaultLogLevel     = "info"
)

// Config holds all the necessary configuration for an App instance to run.
// Empty strings and nil slices mean "not set"; the config file and then the
// built-in defaults fill them in.
type Config struct {
	InputFile string // roster CSV
	OutputDir string

	TemplatePath    string
	ContextDir      string
	StaticColors    bool
	Seed            *uint64
	Palette         []string
	CompilerCommand string
	CompilerArgs    []string

	ConfigPath string // optional HCL file
	LogFormat  string
	LogLevel   string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputFile == "" {
		return nil, errors.New("input file is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("output directory is a required configuration field and cannot be empty")
	}

	if cfg.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(cfg.LogFormat)
		if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
			return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(cfg.LogLevel)
		switch cfg.LogLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
		}
	}

	return &cfg, nil
}

// merge fills every unset field of c from f. Explicit values in c win.
func (c *Config) merge(f *config.File) {
	if f == nil {
		return
	}
	if c.TemplatePath == "" && f.Template != nil {
		c.TemplatePath = *f.Template
	}
	if c.ContextDir == "" && f.Context != nil {
		c.ContextDir = *f.Context
	}
	if !c.StaticColors && f.StaticColors != nil {
		c.StaticColors = *f.StaticColors
	}
	if c.Seed == nil && f.Seed != nil {
		seed := *f.Seed
		c.Seed = &seed
	}
	if c.Palette == nil {
		c.Palette = f.Palette
	}
	if f.Compiler != nil {
		if c.CompilerCommand == "" && f.Compiler.Command != nil {
			c.CompilerCommand = *f.Compiler.Command
		}
		if c.CompilerArgs == nil {
			c.CompilerArgs = f.Compiler.Args
		}
	}
}

func (c *Config) applyDefaults() {
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}
	if c.ContextDir == "" {
		c.ContextDir = DefaultContextDir
	}
	if c.CompilerCommand == "" {
		c.CompilerCommand = compiler.DefaultCommand
	}
	if c.CompilerArgs == nil {
		c.CompilerArgs = append([]string{}, compiler.DefaultArgs...)
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

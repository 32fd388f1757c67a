package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/certgen/internal/batch"
	"github.com/specialistvlad/certgen/internal/ctxlog"
	"github.com/specialistvlad/certgen/internal/roster"
)

// Run generates one certificate per roster row. The first failing row ends
// the run with its error.
func (a *App) Run(ctx context.Context) (*batch.Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	template, err := os.ReadFile(a.config.TemplatePath)
	if err != nil {
		return nil, &ConfigurationError{Path: a.config.TemplatePath, Err: err}
	}
	a.logger.Debug("Template loaded.", "path", a.config.TemplatePath, "bytes", len(template))

	rows, err := roster.Open(a.config.InputFile)
	if err != nil {
		return nil, &ConfigurationError{Path: a.config.InputFile, Err: err}
	}
	defer rows.Close()
	a.logger.Debug("Roster opened.", "path", a.config.InputFile, "columns", rows.Header())

	runner := &batch.Runner{
		Template:   string(template),
		Source:     a.source,
		Compiler:   a.compiler,
		ContextDir: a.config.ContextDir,
		OutputDir:  a.config.OutputDir,
		Out:        a.outW,
	}
	summary, err := runner.Run(ctx, rows)
	if err != nil {
		return summary, fmt.Errorf("certificate generation failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return summary, nil
}

// Package batch drives certificate generation for a whole roster, one row at
// a time. The first failing row stops the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/certgen/internal/ctxlog"
	"github.com/specialistvlad/certgen/internal/placeholder"
	"github.com/specialistvlad/certgen/internal/randtoken"
	"github.com/specialistvlad/certgen/internal/roster"
)

// NameColumn identifies a row in progress output and names its output file.
const NameColumn = "name"

// RowIterator yields roster rows until it returns io.EOF.
type RowIterator interface {
	Next() (roster.Row, error)
}

// DocumentCompiler compiles generated source into a document at outputPath.
type DocumentCompiler interface {
	Compile(ctx context.Context, contextDir, source, outputPath string) error
}

// Runner holds everything needed to generate one batch.
type Runner struct {
	Template   string
	Table      placeholder.Table // nil means placeholder.DefaultTable
	Source     randtoken.Source
	Compiler   DocumentCompiler
	ContextDir string
	OutputDir  string
	Out        io.Writer // progress lines; nil discards them
}

// Summary describes a finished batch.
type Summary struct {
	Rows    int
	Outputs []string
}

// OutputFileName derives the document file name for a participant,
// e.g. "Jane Doe" becomes "Jane_Doe_cert.pdf".
func OutputFileName(name string) string {
	return strings.ReplaceAll(name+"_cert.pdf", " ", "_")
}

// Run generates a document for every row from rows.
func (r *Runner) Run(ctx context.Context, rows RowIterator) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	table := r.Table
	if table == nil {
		table = placeholder.DefaultTable
	}

	summary := &Summary{}
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, err
		}

		name, ok := row.Lookup(NameColumn)
		if !ok {
			return summary, fmt.Errorf("row %d: %w", n, &placeholder.MissingFieldError{Column: NameColumn})
		}

		fmt.Fprintf(out, "Generating certificate for %s...\n", name)
		logger.Info("Generating certificate.", "row", n, "name", name)

		source, err := table.Substitute(r.Template, row, r.Source)
		if err != nil {
			return summary, fmt.Errorf("row %d (%s): %w", n, name, err)
		}

		output := filepath.Join(r.OutputDir, OutputFileName(name))
		if err := r.Compiler.Compile(ctx, r.ContextDir, source, output); err != nil {
			return summary, fmt.Errorf("row %d (%s): %w", n, name, err)
		}
		logger.Debug("Certificate written.", "row", n, "output", output)

		summary.Rows++
		summary.Outputs = append(summary.Outputs, output)
	}

	fmt.Fprintln(out, "All done!")
	logger.Info("Batch finished.", "certificates", summary.Rows)
	return summary, nil
}

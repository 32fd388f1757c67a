package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/certgen/internal/app"
	"github.com/specialistvlad/certgen/internal/placeholder"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `
certgen - Generate certificates from a CSV roster and a Typst template.

Every row of INPUT_FILE fills in the placeholders of the template, and the
result is compiled with the Typst compiler into OUTPUT_DIR/<name>_cert.pdf
(spaces in the name become underscores). The context directory is copied
next to the generated source, so the template can import styles and assets.

Usage:
  certgen [options] INPUT_FILE OUTPUT_DIR

Arguments:
  INPUT_FILE
    CSV file with one row per participant. The header row names the columns.
  OUTPUT_DIR
    Directory the certificates are written to. Created if missing.

Placeholders:
`

const usageFooter = `
Each random placeholder gets a fresh value per occurrence. Use
--static-colors to get the same colors and offsets for the same CSV file.

Options:
`

func printUsage(w io.Writer, flagSet *flag.FlagSet) {
	fmt.Fprint(w, usageHeader)
	for _, e := range placeholder.DefaultTable {
		fmt.Fprintf(w, "  %-24s %s\n", e.Token, e.Rule.Describe())
	}
	fmt.Fprint(w, usageFooter)
	flagSet.PrintDefaults()
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Options may appear before, between or after the positional arguments.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("certgen", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { printUsage(output, flagSet) }

	templateFlag := flagSet.String("template", "", "Path to the Typst template. (default \""+app.DefaultTemplatePath+"\")")
	contextFlag := flagSet.String("context", "", "Directory copied next to the template during compilation. (default \""+app.DefaultContextDir+"\")")
	staticColorsFlag := flagSet.Bool("static-colors", false, "Generate the same color/bubble size combo given the same CSV file.")
	seedFlag := flagSet.Uint64("seed", 0, "Seed for the random placeholders. Implies reproducible output.")
	compilerFlag := flagSet.String("compiler", "", "Compiler executable. (default \"typst\")")
	configFlag := flagSet.String("config", "", "Optional HCL config file.")
	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var positionals []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		rest = flagSet.Args()
		if len(rest) == 0 {
			break
		}
		positionals = append(positionals, rest[0])
		rest = rest[1:]
	}
	slog.Debug("Arguments parsed successfully.", "positionals", positionals)

	if len(positionals) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if len(positionals) != 2 {
		return nil, false, &ExitError{
			Code:    2,
			Message: fmt.Sprintf("expected INPUT_FILE and OUTPUT_DIR, got %d argument(s): %s", len(positionals), strings.Join(positionals, " ")),
		}
	}

	cfg := app.Config{
		InputFile:       positionals[0],
		OutputDir:       positionals[1],
		TemplatePath:    *templateFlag,
		ContextDir:      *contextFlag,
		StaticColors:    *staticColorsFlag,
		CompilerCommand: *compilerFlag,
		ConfigPath:      *configFlag,
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
	}
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seed := *seedFlag
			cfg.Seed = &seed
		}
	})

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

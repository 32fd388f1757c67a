// Package compiler turns generated template source into a finished document
// by running an external compiler (Typst by default) inside a throwaway
// working directory.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/certgen/internal/ctxlog"
	"github.com/specialistvlad/certgen/internal/fsutil"
)

const (
	// DefaultCommand is the compiler executable looked up in $PATH.
	DefaultCommand = "typst"
	// DefaultSourceName is unlikely to collide with a file from the context directory.
	DefaultSourceName = "this_is_the_compiler_target_hopefully_not_in_the_context.typ"
)

// DefaultArgs are passed before the source and output paths.
var DefaultArgs = []string{"compile"}

// CompilationError reports a compiler run that failed to start or exited
// with a non-zero status.
type CompilationError struct {
	Command  []string
	ExitCode int // -1 when the process never ran to completion
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("compiler %q failed", strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s with exit code %d", msg, e.ExitCode)
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Compiler runs Command Args... <source> <output> for every document.
type Compiler struct {
	Command    string
	Args       []string
	SourceName string
}

// New returns a Compiler for command with the default arguments. An empty
// command selects DefaultCommand.
func New(command string) *Compiler {
	if command == "" {
		command = DefaultCommand
	}
	args := make([]string, len(DefaultArgs))
	copy(args, DefaultArgs)
	return &Compiler{Command: command, Args: args, SourceName: DefaultSourceName}
}

// Compile stages contextDir plus source in a temporary directory, then
// compiles it to outputPath. The temporary directory is removed before
// Compile returns. If compilation fails, no file is left at outputPath
// unless one was already there.
func (c *Compiler) Compile(ctx context.Context, contextDir, source, outputPath string) error {
	logger := ctxlog.FromContext(ctx)

	workDir, err := os.MkdirTemp("", "certgen-*")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("Failed to remove working directory.", "dir", workDir, "error", err)
		}
	}()

	if err := fsutil.CopyDir(contextDir, workDir); err != nil {
		return fmt.Errorf("failed to copy context directory %s: %w", contextDir, err)
	}

	name := c.SourceName
	if name == "" {
		name = DefaultSourceName
	}
	sourcePath := filepath.Join(workDir, name)
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write compiler source: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	_, statErr := os.Stat(outputPath)
	preexisting := statErr == nil

	argv := append(append([]string{}, c.Args...), sourcePath, outputPath)
	cmd := exec.CommandContext(ctx, c.Command, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running compiler.", "command", c.Command, "args", argv, "work_dir", workDir)
	runErr := cmd.Run()
	if runErr == nil {
		logger.Debug("Compiler finished.", "output", outputPath, "stderr", stderr.String())
		return nil
	}

	if !preexisting {
		if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to remove partial output.", "output", outputPath, "error", err)
		}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &CompilationError{
		Command:  append([]string{c.Command}, argv...),
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      runErr,
	}
}

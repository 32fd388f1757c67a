package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/certgen/internal/config"
	"github.com/specialistvlad/certgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader implements config.Loader for HCL files.
type Loader struct {
	// Environ supplies the variables exposed as `env`. Defaults to os.Environ.
	Environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a Loader backed by the process environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load parses, evaluates and translates the HCL file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed fileSchema
	diags = gohcl.DecodeBody(hclFile.Body, l.evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	file, err := translate(&parsed, path)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logger.Debug("Config file loaded.", "path", path)
	return file, nil
}

// evalContext exposes the environment as an object so that a missing
// variable is reported as an unsupported attribute.
func (l *Loader) evalContext() *hcl.EvalContext {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	vars := make(map[string]cty.Value)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func translate(s *fileSchema, path string) (*config.File, error) {
	base := filepath.Dir(path)
	f := &config.File{
		Path:         path,
		Template:     resolve(base, s.Template),
		Context:      resolve(base, s.Context),
		StaticColors: s.StaticColors,
		Palette:      s.Palette,
	}

	if s.Seed != nil {
		if *s.Seed < 0 {
			return nil, fmt.Errorf("seed must not be negative, got %d", *s.Seed)
		}
		seed := uint64(*s.Seed)
		f.Seed = &seed
	}
	if s.Palette != nil && len(s.Palette) == 0 {
		return nil, fmt.Errorf("palette must contain at least one color")
	}
	if s.Compiler != nil {
		if s.Compiler.Command != nil && *s.Compiler.Command == "" {
			return nil, fmt.Errorf("compiler command must not be empty")
		}
		f.Compiler = &config.Compiler{Command: s.Compiler.Command, Args: s.Compiler.Args}
	}
	return f, nil
}

func resolve(base string, p *string) *string {
	if p == nil || filepath.IsAbs(*p) {
		return p
	}
	joined := filepath.Join(base, *p)
	return &joined
}

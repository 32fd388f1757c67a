package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/certgen/internal/config"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "certgen.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_AllAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
template      = "templates/main.typ"
context       = "/abs/context"
static_colors = true
seed          = 42
palette       = ["#111111", "#222222"]

compiler {
  command = env.TYPST_BIN
  args    = ["compile", "--root", "."]
}
`)
	loader := &Loader{Environ: func() []string { return []string{"TYPST_BIN=/opt/typst/bin/typst", "EMPTY="} }}

	// --- Act ---
	got, err := loader.Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	want := &config.File{
		Path:         path,
		Template:     ptr(filepath.Join(filepath.Dir(path), "templates", "main.typ")),
		Context:      ptr("/abs/context"),
		StaticColors: ptr(true),
		Seed:         ptr(uint64(42)),
		Palette:      []string{"#111111", "#222222"},
		Compiler: &config.Compiler{
			Command: ptr("/opt/typst/bin/typst"),
			Args:    []string{"compile", "--root", "."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "")
	got, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	if diff := cmp.Diff(&config.File{Path: path}, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "syntax error", content: "template = \"a\"\ncompiler {", errMsg: "failed to parse"},
		{name: "unknown attribute", content: `colour = "red"`, errMsg: "failed to decode"},
		{name: "wrong type", content: `static_colors = "maybe"`, errMsg: "failed to decode"},
		{name: "missing env var", content: "compiler {\n command = env.NOPE_NOT_SET\n}", errMsg: "failed to decode"},
		{name: "duplicate compiler block", content: "compiler {}\ncompiler {}", errMsg: "failed to decode"},
		{name: "negative seed", content: `seed = -1`, errMsg: "seed must not be negative"},
		{name: "empty command", content: "compiler {\n command = \"\"\n}", errMsg: "compiler command must not be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tc.content)
			loader := &Loader{Environ: func() []string { return nil }}

			_, err := loader.Load(context.Background(), path)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}

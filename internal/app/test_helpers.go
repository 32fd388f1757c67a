package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/specialistvlad/certgen/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Workspace is an on-disk fixture: a template, a roster, a context directory
// and a fake compiler script, run through /bin/sh, that copies its source to
// the output path.
type Workspace struct {
	Dir       string
	Template  string
	Roster    string
	Context   string
	Output    string
	Compiler  string // script path, passed as the first compiler argument
	FailNames string // file holding a name that makes the fake compiler fail
}

// fakeCompilerScript copies the generated source to the output, failing with
// a diagnostic when the source contains the word in $FAIL_ON_FILE.
const fakeCompilerScript = `#!/bin/sh
src="$1"; out="$2"
test -f "$(dirname "$src")/style.typ" || { echo "error: context missing" >&2; exit 2; }
fail_on_file="%s"
if [ -s "$fail_on_file" ] && grep -q "$(cat "$fail_on_file")" "$src"; then
  echo "error: cannot compile $src" >&2
  exit 1
fi
cat "$src" > "$out"
`

// NewWorkspace writes a Workspace with the given template and roster CSV.
func NewWorkspace(t *testing.T, template, rosterCSV string) *Workspace {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the fake compiler is a shell script")
	}

	dir := t.TempDir()
	ws := &Workspace{
		Dir:       dir,
		Template:  filepath.Join(dir, "main.typ"),
		Roster:    filepath.Join(dir, "roster.csv"),
		Context:   filepath.Join(dir, "context"),
		Output:    filepath.Join(dir, "out"),
		Compiler:  filepath.Join(dir, "fake-typst"),
		FailNames: filepath.Join(dir, "fail-on.txt"),
	}

	mustWrite(t, ws.Template, template, 0o644)
	mustWrite(t, ws.Roster, rosterCSV, 0o644)
	mustWrite(t, filepath.Join(ws.Context, "style.typ"), "#let accent = red", 0o644)
	mustWrite(t, ws.Compiler, fmt.Sprintf(fakeCompilerScript, ws.FailNames), 0o644)
	return ws
}

// FailOn makes the fake compiler fail for sources containing word.
func (w *Workspace) FailOn(t *testing.T, word string) {
	t.Helper()
	mustWrite(t, w.FailNames, word, 0o644)
}

// Config returns an app Config pointing at the workspace.
func (w *Workspace) Config() *Config {
	return &Config{
		InputFile:       w.Roster,
		OutputDir:       w.Output,
		TemplatePath:    w.Template,
		ContextDir:      w.Context,
		CompilerCommand: "/bin/sh",
		CompilerArgs:    []string{w.Compiler},
		LogLevel:        "debug",
	}
}

// CompilerBlock returns an HCL compiler block that runs the fake compiler.
func (w *Workspace) CompilerBlock() string {
	return fmt.Sprintf("compiler {\n  command = \"/bin/sh\"\n  args    = [%q]\n}\n", w.Compiler)
}

// SetupAppTest creates a new app instance for system testing.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	testApp, err := NewApp(out, logBuffer, appConfig, hcl.NewLoader())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("CERTGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}

func mustWrite(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/certgen/internal/app"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"--template", "tpl/main.typ",
				"--context=ctx",
				"--static-colors",
				"--seed=9",
				"--compiler", "/usr/bin/typst",
				"--config", "certgen.hcl",
				"--log-level=debug",
				"--log-format=json",
				"roster.csv", "out",
			},
			expectedConfig: &app.Config{
				InputFile:       "roster.csv",
				OutputDir:       "out",
				TemplatePath:    "tpl/main.typ",
				ContextDir:      "ctx",
				StaticColors:    true,
				Seed:            ptr(uint64(9)),
				CompilerCommand: "/usr/bin/typst",
				ConfigPath:      "certgen.hcl",
				LogLevel:        "debug",
				LogFormat:       "json",
			},
		},
		{
			name: "Positionals only leave optional fields unset",
			args: []string{"roster.csv", "out"},
			expectedConfig: &app.Config{
				InputFile: "roster.csv",
				OutputDir: "out",
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name: "Flags after and between positionals",
			args: []string{"roster.csv", "--static-colors", "out", "-template", "x.typ"},
			expectedConfig: &app.Config{
				InputFile:    "roster.csv",
				OutputDir:    "out",
				TemplatePath: "x.typ",
				StaticColors: true,
				LogLevel:     "info",
				LogFormat:    "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "{{issued_to}}")
				require.Contains(t, output, "column 'certificate_location'")
				require.Contains(t, output, "random jiggle")
				require.Contains(t, output, "-static-colors")
			},
		},
		{
			name:       "No arguments triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
			},
		},
		{
			name:      "Single positional is an error",
			args:      []string{"roster.csv"},
			expectErr: true,
		},
		{
			name:      "Three positionals is an error",
			args:      []string{"a", "b", "c"},
			expectErr: true,
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "a.csv", "out"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "a.csv", "out"},
			expectErr: true,
		},
		{
			name:      "Unknown flag returns an error",
			args:      []string{"--colour", "a.csv", "out"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

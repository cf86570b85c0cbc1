package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ensurenodefaults/internal/app"
	"github.com/specialistvlad/ensurenodefaults/internal/fsutil"
	"github.com/specialistvlad/ensurenodefaults/internal/report"
)

func TestParse(t *testing.T) {
	t.Parallel()

	defaultManifest, err := fsutil.DefaultManifestPath()
	require.NoError(t, err)

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"ensure-no-default-features",
				"--manifest-path", "/test/Cargo.toml",
				"-e", "serde,tokio",
				"--format=json",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				ManifestPath: "/test/Cargo.toml",
				Exceptions:   []string{"serde", "tokio"},
				Format:       report.FormatJSON,
				LogLevel:     "debug",
				LogFormat:    "json",
			},
		},
		{
			name: "Defaults",
			args: []string{"ensure-no-default-features"},
			expectedConfig: &app.Config{
				ManifestPath: defaultManifest,
				Format:       report.FormatText,
				LogLevel:     "warn",
				LogFormat:    "text",
			},
		},
		{
			name: "Repeated and spaced exceptions",
			args: []string{"ensure-no-default-features", "--manifest-path", "Cargo.toml", "--exceptions", "serde, tokio", "-e", "log"},
			expectedConfig: &app.Config{
				ManifestPath: "Cargo.toml",
				Exceptions:   []string{"serde", "tokio", "log"},
				Format:       report.FormatText,
				LogLevel:     "warn",
				LogFormat:    "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "ensure-no-default-features")
			},
		},
		{
			name:       "Subcommand help triggers clean exit",
			args:       []string{"ensure-no-default-features", "--help"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "--manifest-path")
				require.Contains(t, output, "--exceptions")
			},
		},
		{
			name:      "No subcommand",
			args:      nil,
			expectErr: "a subcommand is required",
		},
		{
			name:      "Unknown flag",
			args:      []string{"ensure-no-default-features", "--this-is-not-a-valid-flag"},
			expectErr: "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:      "Unknown subcommand",
			args:      []string{"check"},
			expectErr: "unknown command",
		},
		{
			name:      "Positional arguments are rejected",
			args:      []string{"ensure-no-default-features", "Cargo.toml"},
			expectErr: "unknown command",
		},
		{
			name:      "Invalid format",
			args:      []string{"ensure-no-default-features", "--format", "xml"},
			expectErr: "invalid format 'xml'",
		},
		{
			name:      "Invalid log level",
			args:      []string{"ensure-no-default-features", "--log-level", "trace"},
			expectErr: "invalid log-level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			var out bytes.Buffer

			// --- Act ---
			config, shouldExit, err := Parse(tc.args, &out)

			// --- Assert ---
			if tc.expectErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, ExitFailure, exitErr.Code)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if diff := cmp.Diff(tc.expectedConfig, config); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ConfigFileMerge(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nodefaults.hcl")
	content := `
manifest_path = "Cargo.toml"
exceptions    = ["tokio"]
format        = "yaml"
log_level     = "info"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	// --- Act ---
	config, shouldExit, err := Parse([]string{
		"ensure-no-default-features",
		"--config", configPath,
		"-e", "serde",
		"--log-level", "error",
	}, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	want := &app.Config{
		ManifestPath: filepath.Join(dir, "Cargo.toml"),
		Exceptions:   []string{"serde", "tokio"},
		Format:       report.FormatYAML,
		LogLevel:     "error",
		LogFormat:    "text",
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"ensure-no-default-features", "--config", filepath.Join(t.TempDir(), "missing.hcl")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestParse_Version(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"--version"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), Version)
}

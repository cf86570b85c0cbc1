package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/ensurenodefaults/internal/app"
	"github.com/specialistvlad/ensurenodefaults/internal/fsutil"
	"github.com/specialistvlad/ensurenodefaults/internal/report"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const (
	// ExitViolations means the check ran and found violations.
	ExitViolations = 1
	// ExitFailure means the check could not run: bad usage, unreadable or
	// malformed manifests.
	ExitFailure = 2
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly (help or version
// was printed), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var config *app.Config
	root := newRootCommand(func(c *app.Config) { config = c })
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
	}

	if config == nil {
		slog.Debug("No check requested, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func newRootCommand(onConfig func(*app.Config)) *cobra.Command {
	root := &cobra.Command{
		Use:           "cargo-ensure-no-default-features",
		Short:         "Eliminate superfluous features in a Rust workspace",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return &ExitError{
				Code:    ExitFailure,
				Message: fmt.Sprintf("a subcommand is required\n\n%s", cmd.UsageString()),
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(newCheckCommand(onConfig))
	return root
}

func newCheckCommand(onConfig func(*app.Config)) *cobra.Command {
	var (
		manifestPath string
		exceptions   []string
		configPath   string
		format       string
		logLevel     string
		logFormat    string
	)

	cmd := &cobra.Command{
		Use:   "ensure-no-default-features",
		Short: "Ensure all dependencies have default-features = false",
		Long: `Checks every dependency declared in the workspace manifest and its members
([workspace.dependencies], [dependencies], [dev-dependencies] and
[build-dependencies]) and reports each one that does not set
default-features = false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			cfg := app.Config{
				ManifestPath: manifestPath,
				Exceptions:   splitExceptions(exceptions),
				Format:       report.Format(strings.ToLower(format)),
				LogLevel:     strings.ToLower(logLevel),
				LogFormat:    strings.ToLower(logFormat),
			}

			if configPath != "" {
				fc, err := app.LoadConfigFile(configPath)
				if err != nil {
					return &ExitError{Code: ExitFailure, Message: err.Error()}
				}
				mergeFileConfig(&cfg, fc, flags.Changed)
			}

			if cfg.ManifestPath == "" {
				path, err := fsutil.DefaultManifestPath()
				if err != nil {
					return &ExitError{Code: ExitFailure, Message: err.Error()}
				}
				cfg.ManifestPath = path
			}

			config, err := app.NewConfig(cfg)
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			onConfig(config)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&manifestPath, "manifest-path", "", "Path to Cargo.toml (default: Cargo.toml in the current directory)")
	flags.StringSliceVarP(&exceptions, "exceptions", "e", nil, "Comma-separated list of dependencies to exclude from the default-features check")
	flags.StringVar(&configPath, "config", "", "Path to an HCL config file")
	flags.StringVar(&format, "format", string(report.FormatText), "Report format. Options: 'text', 'json' or 'yaml'.")
	flags.StringVar(&logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	return cmd
}

// mergeFileConfig applies config file values for every flag the user did not
// set explicitly. Exceptions from both sources are combined.
func mergeFileConfig(cfg *app.Config, fc *app.FileConfig, changed func(string) bool) {
	if fc.ManifestPath != nil && !changed("manifest-path") {
		cfg.ManifestPath = *fc.ManifestPath
	}
	if fc.Format != nil && !changed("format") {
		cfg.Format = report.Format(strings.ToLower(*fc.Format))
	}
	if fc.LogLevel != nil && !changed("log-level") {
		cfg.LogLevel = strings.ToLower(*fc.LogLevel)
	}
	if fc.LogFormat != nil && !changed("log-format") {
		cfg.LogFormat = strings.ToLower(*fc.LogFormat)
	}
	cfg.Exceptions = append(cfg.Exceptions, splitExceptions(fc.Exceptions)...)
}

// splitExceptions trims whitespace left over from "a, b" style lists and
// drops empty entries.
func splitExceptions(raw []string) []string {
	var out []string
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

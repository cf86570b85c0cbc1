// Command cargo-ensure-no-default-features is a cargo subcommand that checks
// that every dependency of a Rust workspace sets default-features = false.
//
//	cargo install cargo-ensure-no-default-features
//	cargo ensure-no-default-features --manifest-path Cargo.toml -e tokio,serde_json
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/ensurenodefaults/internal/app"
	"github.com/specialistvlad/ensurenodefaults/internal/cli"
	"github.com/specialistvlad/ensurenodefaults/internal/workspace"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	checkApp := app.NewApp(outW, errW, config, workspace.NewLoader())
	verdict, err := checkApp.Run(context.Background())
	if err != nil {
		return &cli.ExitError{Code: cli.ExitFailure, Message: "❌ " + err.Error()}
	}
	if !verdict.Passed() {
		// The report has already been written.
		return &cli.ExitError{Code: cli.ExitViolations}
	}
	return nil
}

package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ensurenodefaults/internal/compliance"
	"github.com/specialistvlad/ensurenodefaults/internal/ctxlog"
	"github.com/specialistvlad/ensurenodefaults/internal/report"
)

// Run loads the manifests, evaluates every declaration and writes the report.
// A returned error means the check could not run; violations are reported
// through the Verdict instead.
func (a *App) Run(ctx context.Context) (compliance.Verdict, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "manifest_path", a.config.ManifestPath)

	decls, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return compliance.Verdict{}, err
	}

	exceptions := compliance.NewExceptionSet(a.config.Exceptions...)
	verdict := compliance.Evaluate(decls, exceptions)
	a.logger.Debug("Declarations evaluated.", "declarations", len(decls), "exceptions", exceptions.Len(), "violations", verdict.Len())

	// Unused exceptions are reported on passing runs only.
	if verdict.Passed() {
		for _, name := range compliance.UnusedExceptions(decls, exceptions) {
			a.logger.Warn("Exception does not match any dependency.", "exception", name)
		}
	}

	w := a.outW
	if !verdict.Passed() {
		w = a.errW
	}
	if err := report.Write(w, verdict, a.config.Format); err != nil {
		return verdict, fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "passed", verdict.Passed())
	return verdict, nil
}

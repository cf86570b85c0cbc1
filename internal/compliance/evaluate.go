package compliance

import (
	"github.com/specialistvlad/ensurenodefaults/internal/manifest"
)

// Verdict is the outcome of one evaluation. The zero value is a pass.
type Verdict struct {
	violations []Violation
}

// Passed reports whether no violations were found.
func (v Verdict) Passed() bool {
	return len(v.violations) == 0
}

// Len returns the number of violations.
func (v Verdict) Len() int {
	return len(v.violations)
}

// Violations returns a copy of the violations in discovery order.
func (v Verdict) Violations() []Violation {
	out := make([]Violation, len(v.violations))
	copy(out, v.violations)
	return out
}

// Compliant reports whether a single declaration passes the check.
func Compliant(d manifest.Declaration, exceptions ExceptionSet) bool {
	return d.DefaultFeaturesDisabled() || exceptions.Contains(d.Name)
}

// Evaluate checks every declaration in order and collects a Violation for
// each one that is not compliant. It has no side effects.
func Evaluate(decls []manifest.Declaration, exceptions ExceptionSet) Verdict {
	var verdict Verdict
	for _, d := range decls {
		if Compliant(d, exceptions) {
			continue
		}
		verdict.violations = append(verdict.violations, newViolation(d))
	}
	return verdict
}

// UnusedExceptions returns, in sorted order, the exception names that do not
// match any declaration. They usually point at a typo or a stale entry.
func UnusedExceptions(decls []manifest.Declaration, exceptions ExceptionSet) []string {
	seen := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		seen[d.Name] = struct{}{}
	}

	var unused []string
	for _, name := range exceptions.Names() {
		if _, ok := seen[name]; !ok {
			unused = append(unused, name)
		}
	}
	return unused
}

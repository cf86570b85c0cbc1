package manifest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// MalformedError reports a manifest whose shape does not match what Cargo
// accepts for dependency tables, or a workspace reference that cannot be
// resolved. It is always fatal for the whole evaluation.
type MalformedError struct {
	Manifest string
	Path     cty.Path
	// Line and Column are only set for TOML syntax errors.
	Line   int
	Column int
	Reason string
}

// Error renders the single diagnostic line shown to the user.
func (e *MalformedError) Error() string {
	var b strings.Builder
	b.WriteString("malformed manifest ")
	b.WriteString(e.Manifest)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(FormatPath(e.Path))
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func malformed(manifest string, path cty.Path, format string, args ...any) *MalformedError {
	return &MalformedError{
		Manifest: manifest,
		Path:     path.Copy(),
		Reason:   fmt.Sprintf(format, args...),
	}
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FormatPath renders a key path the way it would be written as a dotted TOML
// key, e.g. `workspace.dependencies.serde` or `target."cfg(unix)"`.
func FormatPath(path cty.Path) string {
	var b strings.Builder
	for _, step := range path {
		switch s := step.(type) {
		case cty.GetAttrStep:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			if bareKey.MatchString(s.Name) {
				b.WriteString(s.Name)
			} else {
				b.WriteString(strconv.Quote(s.Name))
			}
		case cty.IndexStep:
			if s.Key.Type().Equals(cty.Number) {
				fmt.Fprintf(&b, "[%s]", s.Key.AsBigFloat().Text('f', -1))
			} else {
				fmt.Fprintf(&b, "[%q]", s.Key.AsString())
			}
		}
	}
	return b.String()
}

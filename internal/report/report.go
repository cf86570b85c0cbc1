// Package report renders a compliance.Verdict for humans or machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ensurenodefaults/internal/compliance"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'text', 'json', or 'yaml'", s)
	}
}

const successLine = "✅ All required dependencies have default-features = false"

// document is the structured form shared by the JSON and YAML encoders.
type document struct {
	Passed     bool        `json:"passed" yaml:"passed"`
	Violations []violation `json:"violations" yaml:"violations"`
}

type violation struct {
	Name     string `json:"name" yaml:"name"`
	Package  string `json:"package" yaml:"package"`
	Table    string `json:"table" yaml:"table"`
	Syntax   string `json:"syntax" yaml:"syntax"`
	Reason   string `json:"reason" yaml:"reason"`
	Manifest string `json:"manifest" yaml:"manifest"`
	Message  string `json:"message" yaml:"message"`
}

// Write renders verdict to w in the given format.
func Write(w io.Writer, verdict compliance.Verdict, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, verdict)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(verdict))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(verdict)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format '%s'", format)
	}
}

func writeText(w io.Writer, verdict compliance.Verdict) error {
	renderer := lipgloss.NewRenderer(w)

	if verdict.Passed() {
		ok := renderer.NewStyle().Foreground(lipgloss.Color("2"))
		_, err := fmt.Fprintln(w, ok.Render(successLine))
		return err
	}

	header := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	name := renderer.NewStyle().Bold(true)

	_, err := fmt.Fprintf(w, "%s\n\n", header.Render(fmt.Sprintf("❌ Found %d dependencies without default-features = false:", verdict.Len())))
	if err != nil {
		return err
	}
	for _, v := range verdict.Violations() {
		if _, err := fmt.Fprintf(w, "  - %s\n", name.Render(v.String())); err != nil {
			return err
		}
	}
	return nil
}

func newDocument(verdict compliance.Verdict) document {
	doc := document{Passed: verdict.Passed(), Violations: []violation{}}
	for _, v := range verdict.Violations() {
		doc.Violations = append(doc.Violations, violation{
			Name:     v.Name,
			Package:  v.Package,
			Table:    v.Table.String(),
			Syntax:   v.Syntax.String(),
			Reason:   v.Reason.String(),
			Manifest: v.Manifest,
			Message:  v.String(),
		})
	}
	return doc
}

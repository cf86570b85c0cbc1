package compliance

import (
	"fmt"

	"github.com/specialistvlad/ensurenodefaults/internal/manifest"
)

// Reason explains why a declaration failed the check.
type Reason int

const (
	ReasonVersionString Reason = iota
	ReasonMissing
	ReasonEnabled
	ReasonInvalidValue
)

func (r Reason) String() string {
	switch r {
	case ReasonVersionString:
		return "uses simple version string, should be a table with default-features = false"
	case ReasonMissing:
		return "missing default-features = false"
	case ReasonEnabled:
		return "has default-features = true (must be false)"
	case ReasonInvalidValue:
		return "default-features has unexpected value (must be boolean false)"
	default:
		return "unknown reason"
	}
}

// Violation is one reported finding. It is created by Evaluate only.
type Violation struct {
	Name     string
	Package  string
	Table    manifest.Table
	Syntax   manifest.Syntax
	Reason   Reason
	Manifest string
}

func newViolation(d manifest.Declaration) Violation {
	v := Violation{
		Name:     d.Name,
		Package:  d.Package,
		Table:    d.Table,
		Syntax:   d.Syntax,
		Manifest: d.Manifest,
	}

	switch {
	case d.Syntax == manifest.SyntaxVersion:
		v.Reason = ReasonVersionString
	case d.DefaultFeatures == manifest.FeaturesEnabled:
		v.Reason = ReasonEnabled
	case d.DefaultFeatures == manifest.FeaturesInvalid:
		v.Reason = ReasonInvalidValue
	default:
		v.Reason = ReasonMissing
	}
	return v
}

// String renders the violation as one human-readable line, e.g.
//
//	'serde' in package app [dependencies]: missing default-features = false
func (v Violation) String() string {
	owner := "package " + v.Package
	if v.Package == manifest.WorkspaceRoot {
		owner = "the workspace"
	}
	if v.Syntax == manifest.SyntaxWorkspace {
		return fmt.Sprintf("'%s' in %s [%s]: %s (inherited from [workspace.dependencies])", v.Name, owner, v.Table, v.Reason)
	}
	return fmt.Sprintf("'%s' in %s [%s]: %s", v.Name, owner, v.Table, v.Reason)
}

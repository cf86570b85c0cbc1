// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Declaration, the normalized form of one dependency entry,
// together with the small enums that describe where it came from and how it
// was written.
package manifest

import "github.com/zclconf/go-cty/cty"

// WorkspaceRoot is the owning-package sentinel for entries declared by the
// workspace itself rather than by a package.
const WorkspaceRoot = "(workspace)"

// Table identifies the dependency table an entry was found in.
type Table int

const (
	TableDependencies Table = iota
	TableDevDependencies
	TableBuildDependencies
	TableWorkspaceDependencies
)

// packageTables are the per-package tables, in scan order.
var packageTables = []Table{TableDependencies, TableDevDependencies, TableBuildDependencies}

func (t Table) String() string {
	switch t {
	case TableDependencies:
		return "dependencies"
	case TableDevDependencies:
		return "dev-dependencies"
	case TableBuildDependencies:
		return "build-dependencies"
	case TableWorkspaceDependencies:
		return "workspace.dependencies"
	default:
		return "unknown"
	}
}

// path is the key path of the table from the manifest root.
func (t Table) path() cty.Path {
	if t == TableWorkspaceDependencies {
		return cty.GetAttrPath("workspace").GetAttr("dependencies")
	}
	return cty.GetAttrPath(t.String())
}

// Syntax identifies how an entry was written.
type Syntax int

const (
	// SyntaxVersion is a bare version string: `serde = "1.0"`.
	SyntaxVersion Syntax = iota
	// SyntaxTable is an inline or dotted table: `serde = { version = "1.0" }`.
	SyntaxTable
	// SyntaxWorkspace is an inherited reference: `serde = { workspace = true }`.
	SyntaxWorkspace
)

func (s Syntax) String() string {
	switch s {
	case SyntaxVersion:
		return "version string"
	case SyntaxTable:
		return "table"
	case SyntaxWorkspace:
		return "workspace reference"
	default:
		return "unknown"
	}
}

// FeatureSetting is what the manifest says about default-features.
type FeatureSetting int

const (
	FeaturesUnset FeatureSetting = iota
	FeaturesEnabled
	FeaturesDisabled
	// FeaturesInvalid means the key holds something other than a boolean.
	FeaturesInvalid
)

func (f FeatureSetting) String() string {
	switch f {
	case FeaturesUnset:
		return "unset"
	case FeaturesEnabled:
		return "true"
	case FeaturesDisabled:
		return "false"
	case FeaturesInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Declaration is one dependency entry found in a manifest. Values are built
// once by Build and never modified afterwards.
type Declaration struct {
	// Name is the declared key, which differs from CrateName for renamed
	// dependencies. Exceptions and reports always refer to Name.
	Name      string
	CrateName string

	Package  string
	Table    Table
	Syntax   Syntax
	Manifest string

	// DefaultFeatures is resolved: for SyntaxWorkspace it is copied from the
	// workspace-level entry, for SyntaxVersion it is always FeaturesUnset.
	DefaultFeatures FeatureSetting
}

// DefaultFeaturesDisabled reports whether the entry literally sets
// default-features = false.
func (d Declaration) DefaultFeaturesDisabled() bool {
	return d.DefaultFeatures == FeaturesDisabled
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package manifest turns Cargo manifests into a flat, format-agnostic list of
// dependency declarations. Its core purpose is semantic extraction: the raw
// TOML is decoded into a generic cty.Value tree, and every dependency entry in
// that tree is normalized into a Declaration regardless of how it was written.
//
// # Core Concepts
//
//   - Document: One parsed manifest. It pairs the file path with the generic
//     key/value tree and exposes the few workspace-level facts the loader needs
//     (package name, member patterns, exclusions).
//
//   - Declaration: A single dependency entry. It records where the entry was
//     found (owning package and dependency table), which syntax variant was
//     used, and the resolved state of its default-features flag.
//
//   - MalformedError: The only failure mode of this package. It points at the
//     manifest file and the dotted key path of the offending entry.
//
// # Syntax Variants
//
// A dependency can be declared three ways, and each maps to exactly one Syntax:
//
//	serde = "1.0"                                          # SyntaxVersion
//	serde = { version = "1.0", default-features = false }  # SyntaxTable
//	serde = { workspace = true }                           # SyntaxWorkspace
//
// A version string has no place to put the flag, so it is never treated as
// disabling default features. A workspace reference copies the flag of the
// matching entry in [workspace.dependencies]; anything written next to
// `workspace = true` in the member manifest is ignored.
//
// # Discovery Order
//
// Build visits [workspace.dependencies] first, then the root package's own
// tables, then each member in the order the caller supplies. Inside a table
// entries are visited in key order, so the resulting slice is identical across
// runs on unchanged input.
package manifest

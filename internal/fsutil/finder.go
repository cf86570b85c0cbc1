// Package fsutil provides file system helpers for locating Cargo manifests.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ManifestFileName is the file name of a Cargo manifest.
const ManifestFileName = "Cargo.toml"

// DefaultManifestPath returns the manifest in the current working directory.
func DefaultManifestPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return filepath.Join(wd, ManifestFileName), nil
}

// ExpandMembers resolves workspace.members patterns relative to rootDir and
// returns the manifest path of every member package, in pattern order with
// each pattern's matches sorted. Paths under an exclude entry, duplicates and
// the workspace root itself are skipped.
//
// Directories matched by a glob that hold no manifest are ignored; an explicit
// member path without a manifest is an error.
func ExpandMembers(rootDir string, members, excludes []string) ([]string, error) {
	root := filepath.Clean(rootDir)

	excluded := make([]string, 0, len(excludes))
	for _, ex := range excludes {
		excluded = append(excluded, filepath.Join(root, filepath.FromSlash(ex)))
	}

	seen := make(map[string]struct{})
	var manifests []string
	for _, pattern := range members {
		glob := isGlob(pattern)

		dirs := []string{filepath.Join(root, filepath.FromSlash(pattern))}
		if glob {
			if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
				return nil, fmt.Errorf("invalid workspace member pattern '%s'", pattern)
			}
			matches, err := doublestar.FilepathGlob(dirs[0])
			if err != nil {
				return nil, fmt.Errorf("invalid workspace member pattern '%s': %w", pattern, err)
			}
			sort.Strings(matches)
			dirs = matches
		}

		for _, dir := range dirs {
			dir = filepath.Clean(dir)
			if dir == root || isExcluded(dir, excluded) {
				continue
			}
			if _, ok := seen[dir]; ok {
				continue
			}

			manifest := filepath.Join(dir, ManifestFileName)
			info, err := os.Stat(manifest)
			if err != nil || info.IsDir() {
				if glob {
					continue
				}
				return nil, fmt.Errorf("workspace member '%s' has no %s in %s", pattern, ManifestFileName, dir)
			}

			seen[dir] = struct{}{}
			manifests = append(manifests, manifest)
		}
	}
	return manifests, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func isExcluded(dir string, excluded []string) bool {
	for _, ex := range excluded {
		if dir == ex || strings.HasPrefix(dir, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

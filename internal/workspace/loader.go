// Package workspace reads a root Cargo manifest and the manifests of its
// workspace members from disk and hands them to the manifest builder.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/ensurenodefaults/internal/ctxlog"
	"github.com/specialistvlad/ensurenodefaults/internal/fsutil"
	"github.com/specialistvlad/ensurenodefaults/internal/manifest"
)

// maxParallelReads bounds the number of member manifests read at once.
const maxParallelReads = 8

// Loader loads every dependency declaration of a workspace.
type Loader struct {
	readFile func(name string) ([]byte, error)
}

// NewLoader returns a Loader that reads from the local file system.
func NewLoader() *Loader {
	return &Loader{readFile: os.ReadFile}
}

// Load reads the manifest at manifestPath and, when it declares a workspace,
// every member manifest, then builds the flat declaration list.
func (l *Loader) Load(ctx context.Context, manifestPath string) ([]manifest.Declaration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading root manifest.", "path", manifestPath)

	root, err := l.parse(manifestPath)
	if err != nil {
		return nil, err
	}

	isWorkspace, err := root.IsWorkspace()
	if err != nil {
		return nil, err
	}

	var members []*manifest.Document
	if isWorkspace {
		patterns, err := root.Members()
		if err != nil {
			return nil, err
		}
		excludes, err := root.Excludes()
		if err != nil {
			return nil, err
		}

		paths, err := fsutil.ExpandMembers(filepath.Dir(manifestPath), patterns, excludes)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace members of %s: %w", manifestPath, err)
		}
		logger.Debug("Workspace members resolved.", "patterns", patterns, "members", paths)

		members, err = l.parseAll(ctx, paths)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Debug("Manifest declares no workspace, checking the package alone.")
	}

	decls, err := manifest.Build(root, members)
	if err != nil {
		return nil, err
	}
	logger.Debug("Dependency declarations built.", "count", len(decls), "members", len(members))
	return decls, nil
}

// parseAll reads member manifests concurrently. The result keeps the order of
// paths regardless of completion order.
func (l *Loader) parseAll(ctx context.Context, paths []string) ([]*manifest.Document, error) {
	docs := make([]*manifest.Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := l.parse(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (l *Loader) parse(path string) (*manifest.Document, error) {
	content, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return manifest.Parse(path, content)
}

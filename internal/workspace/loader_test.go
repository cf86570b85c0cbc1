package workspace

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ensurenodefaults/internal/ctxlog"
	"github.com/specialistvlad/ensurenodefaults/internal/manifest"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), &buf
}

func TestLoad_Workspace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	rootManifest := writeFile(t, root, "Cargo.toml", `
[workspace]
members = ["crates/*"]
exclude = ["crates/old"]

[workspace.dependencies]
log = { version = "0.4", default-features = false }
`)
	writeFile(t, root, "crates/beta/Cargo.toml", "[package]\nname = \"beta\"\n\n[dependencies]\nlog = { workspace = true }\n")
	writeFile(t, root, "crates/alpha/Cargo.toml", "[package]\nname = \"alpha\"\n\n[dev-dependencies]\nserde = \"1\"\n")
	writeFile(t, root, "crates/old/Cargo.toml", "not even toml [")
	ctx, logs := testContext(t)

	// --- Act ---
	decls, err := NewLoader().Load(ctx, rootManifest)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, decls, 3)
	assert.Equal(t, "log", decls[0].Name)
	assert.Equal(t, manifest.WorkspaceRoot, decls[0].Package)
	assert.Equal(t, "alpha", decls[1].Package)
	assert.Equal(t, manifest.TableDevDependencies, decls[1].Table)
	assert.Equal(t, "beta", decls[2].Package)
	assert.True(t, decls[2].DefaultFeaturesDisabled())
	assert.Equal(t, filepath.Join(root, "crates", "beta", "Cargo.toml"), decls[2].Manifest)
	assert.Contains(t, logs.String(), "Workspace members resolved.")
}

func TestLoad_SinglePackage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "Cargo.toml", "[package]\nname = \"solo\"\n\n[dependencies]\nserde = \"1\"\n")
	ctx, _ := testContext(t)

	decls, err := NewLoader().Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "solo", decls[0].Package)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing root manifest", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "Cargo.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed member", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := writeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"m\"]\n")
		writeFile(t, root, "m/Cargo.toml", "[package]\nname = \"m\"\n\n[dependencies]\nlog = { workspace = true }\n")
		ctx, _ := testContext(t)

		_, err := NewLoader().Load(ctx, path)
		var merr *manifest.MalformedError
		require.True(t, errors.As(err, &merr))
		assert.Equal(t, filepath.Join(root, "m", "Cargo.toml"), merr.Manifest)
	})

	t.Run("explicit member without manifest", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := writeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"missing\"]\n")
		ctx, _ := testContext(t)

		_, err := NewLoader().Load(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to resolve workspace members")
	})

	t.Run("unreadable member", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		path := writeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"m\"]\n")
		member := writeFile(t, root, "m/Cargo.toml", "[package]\nname = \"m\"\n")
		ctx, _ := testContext(t)

		loader := &Loader{readFile: func(name string) ([]byte, error) {
			if name == member {
				return nil, os.ErrPermission
			}
			return os.ReadFile(name)
		}}
		_, err := loader.Load(ctx, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrPermission))
	})
}

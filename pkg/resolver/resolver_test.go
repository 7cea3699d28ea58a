package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func TestResolveTopLevel(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "save", "save_backup")

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "save"), got)

	got, ok = resolver.Resolve(filesystem.NewOS(), root, "save_backup", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "save_backup"), got)
}

func TestResolveCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "SAVE")

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "SAVE"), got)

	_, ok = resolver.Resolve(filesystem.NewOS(), root, "save", false)
	assert.False(t, ok, "exact matching must not fold case")
}

func TestResolveMatchesFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "save"), []byte("not a dir"), 0644))

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "save"), got)
}

func TestResolveMissing(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "data/maps")

	_, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	assert.False(t, ok)

	_, ok = resolver.Resolve(filesystem.NewOS(), filepath.Join(root, "nope"), "save", true)
	assert.False(t, ok)

	_, ok = resolver.Resolve(filesystem.NewOS(), root, "", true)
	assert.False(t, ok)
}

func TestResolvePrefersShallowerMatch(t *testing.T) {
	root := t.TempDir()
	// "a_mods" sorts before "save_backup", so a plain depth-first walk would
	// return the nested entry first.
	mkdirs(t, root, "a_mods/save_backup", "save_backup")

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "save_backup", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "save_backup"), got)
}

// Pins the whole-subtree search: with no top-level "save", an entry of that
// name nested inside the backup content is what gets resolved.
func TestResolveSearchesWholeSubtree(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "save_backup/profiles/save")

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "save_backup", "profiles", "save"), got)
}

func TestResolveDoesNotDescendIntoSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	mkdirs(t, outside, "deep/save")
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}

	_, ok := resolver.Resolve(filesystem.NewOS(), root, "save", true)
	assert.False(t, ok)

	got, ok := resolver.Resolve(filesystem.NewOS(), root, "LINKED", true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "linked"), got)
}

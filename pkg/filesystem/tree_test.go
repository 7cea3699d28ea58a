package filesystem_test

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCopyTree(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")

	writeFile(t, filepath.Join(src, "hero.pax"), "level 42")
	writeFile(t, filepath.Join(src, "chars", "seraphim.pax"), "level 7")
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty"), 0755))

	require.NoError(t, filesystem.CopyTree(fsys, src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "hero.pax"))
	require.NoError(t, err)
	assert.Equal(t, "level 42", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "chars", "seraphim.pax"))
	require.NoError(t, err)
	assert.Equal(t, "level 7", string(data))

	assert.True(t, filesystem.IsRealDir(fsys, filepath.Join(dst, "empty")))
}

func TestCopyTreeKeepsInnerSymlinks(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "real.txt"), "x")
	if err := os.Symlink("real.txt", filepath.Join(src, "alias.txt")); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}

	dst := filepath.Join(root, "dst")
	require.NoError(t, filesystem.CopyTree(fsys, src, dst))

	target, err := os.Readlink(filepath.Join(dst, "alias.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real.txt", target)
}

func TestCopyTreeRefusesExistingDestination(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.Mkdir(src, 0755))
	require.NoError(t, os.Mkdir(dst, 0755))

	err := filesystem.CopyTree(fsys, src, dst)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestMove(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	src := filepath.Join(root, "save")
	dst := filepath.Join(root, "save_backup")
	writeFile(t, filepath.Join(src, "slot1.pax"), "data")

	require.NoError(t, filesystem.Move(fsys, src, dst))

	assert.False(t, filesystem.Exists(fsys, src))
	data, err := os.ReadFile(filepath.Join(dst, "slot1.pax"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestPredicates(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	dir := filepath.Join(root, "dir")
	file := filepath.Join(root, "file")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, file, "x")

	assert.True(t, filesystem.Exists(fsys, dir))
	assert.False(t, filesystem.Exists(fsys, filepath.Join(root, "missing")))
	assert.True(t, filesystem.IsRealDir(fsys, dir))
	assert.False(t, filesystem.IsRealDir(fsys, file))
	assert.True(t, filesystem.IsDir(fsys, dir))

	empty, err := filesystem.IsEmptyDir(fsys, dir)
	require.NoError(t, err)
	assert.True(t, empty)

	link := filepath.Join(root, "link")
	if err := os.Symlink(dir, link); err == nil {
		assert.False(t, filesystem.IsRealDir(fsys, link))
		assert.True(t, filesystem.IsDir(fsys, link))
	}
}

func TestIsTransient(t *testing.T) {
	assert.False(t, filesystem.IsTransient(nil))
	assert.True(t, filesystem.IsTransient(&os.PathError{Op: "rename", Path: "x", Err: syscall.EBUSY}))
	assert.False(t, filesystem.IsTransient(fmt.Errorf("wrapped: %w", os.ErrNotExist)))
	assert.True(t, filesystem.IsPermission(&os.PathError{Op: "open", Path: "x", Err: os.ErrPermission}))
}

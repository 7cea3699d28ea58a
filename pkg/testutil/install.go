package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/types"
)

// TestInstall is a game installation directory built for a test.
type TestInstall struct {
	Root string // parent of the installation, usable for override targets
	Name string
	Dir  string
}

// SetupTestInstall creates an empty installation directory named name.
func SetupTestInstall(t *testing.T, name string) *TestInstall {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	return &TestInstall{Root: root, Name: name, Dir: dir}
}

// Entry returns an unvalidated registry entry for the installation.
func (ti *TestInstall) Entry() types.GameEntry {
	return types.GameEntry{Name: ti.Name, Path: ti.Dir}
}

// AddExecutable drops a dummy executable into the installation.
func (ti *TestInstall) AddExecutable(t *testing.T, name string) string {
	t.Helper()
	return CreateFile(t, ti.Dir, name, "MZ")
}

// AddSaveFile writes a save file below rel (e.g. "save" or "save_backup").
func (ti *TestInstall) AddSaveFile(t *testing.T, rel, name, content string) string {
	t.Helper()
	return CreateFile(t, filepath.Join(ti.Dir, rel), name, content)
}

// AddDir creates an empty directory below the installation.
func (ti *TestInstall) AddDir(t *testing.T, rel string) string {
	t.Helper()
	return CreateDir(t, ti.Dir, rel)
}

// Path joins rel onto the installation directory.
func (ti *TestInstall) Path(rel string) string {
	return filepath.Join(ti.Dir, rel)
}

// AddTarget creates an alternate save directory beside the installation,
// holding a single marker file so tests can tell targets apart.
func (ti *TestInstall) AddTarget(t *testing.T, name string) string {
	t.Helper()

	dir := CreateDir(t, ti.Root, name)
	CreateFile(t, dir, "which.txt", name)
	return dir
}

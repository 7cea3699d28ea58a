package testutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/testutil"
)

func TestFaultFSFailsSelectedPath(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.Fail(testutil.OpMkdir, filepath.Join(dir, "a/"), boom)

	err := fsys.Mkdir(filepath.Join(dir, "a"), 0755)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, fsys.Mkdir(filepath.Join(dir, "b"), 0755))
	assert.Equal(t, 2, fsys.Calls(testutil.OpMkdir))
}

func TestFaultFSAnyPathAndHeal(t *testing.T) {
	dir := t.TempDir()
	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.Fail(testutil.OpWriteFile, testutil.AnyPath, os.ErrPermission)

	err := fsys.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0644)
	assert.ErrorIs(t, err, os.ErrPermission)

	fsys.Heal()
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0644))
	testutil.AssertFileContent(t, filepath.Join(dir, "x"), "x")
}

func TestEnvironmentSetsDirectories(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	assert.True(t, testutil.DirExists(env.ConfigDir))
	assert.True(t, testutil.DirExists(env.StateDir))
	assert.Equal(t, env.ConfigDir, os.Getenv("SAVELINK_CONFIG_DIR"))

	install := env.AddInstall("Sacred", "Sacred.exe")
	assert.FileExists(t, install.Path("Sacred.exe"))
	assert.Equal(t, install.Dir, install.Entry().Path)
}

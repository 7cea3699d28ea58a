package registry_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/registry"
	"github.com/arthur-debert/savelink/pkg/testutil"
	"github.com/arthur-debert/savelink/pkg/types"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")

	reg, err := registry.Load(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.Empty(t, reg.Games())
	assert.Empty(t, reg.SaveDirs())
	assert.Equal(t, path, reg.Path())
}

func TestLoadParsesDocument(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "registry.toml", `
save_dirs = ["/saves/b", "/saves/a"]

[[games]]
name = "Sacred Gold"
path = "/games/Sacred Gold/"
save_path = "/games/Sacred Gold/save"
backup_path = "/games/Sacred Gold/save_backup"
valid = true
`)

	reg, err := registry.Load(filesystem.NewOS(), path)
	require.NoError(t, err)

	games := reg.Games()
	require.Len(t, games, 1)
	assert.Equal(t, types.GameEntry{
		Name:       "Sacred Gold",
		Path:       filepath.Clean("/games/Sacred Gold"),
		SavePath:   "/games/Sacred Gold/save",
		BackupPath: "/games/Sacred Gold/save_backup",
		Valid:      true,
	}, games[0])
	assert.Equal(t, []string{"/saves/a", "/saves/b"}, reg.SaveDirs())
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := testutil.CreateFile(t, t.TempDir(), "registry.toml", "[[games]\nname=")

	_, err := registry.Load(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.toml")
	fsys := filesystem.NewOS()

	reg, err := registry.Load(fsys, path)
	require.NoError(t, err)
	require.NoError(t, reg.AddGame(types.GameEntry{Name: "Sacred", Path: "/games/sacred"}))
	reg.AddSaveDirs("/saves/one")
	require.NoError(t, reg.Save())
	testutil.AssertNoFile(t, path+".tmp")

	again, err := registry.Load(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, reg.Games(), again.Games())
	assert.Equal(t, []string{"/saves/one"}, again.SaveDirs())
}

func TestSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.Fail(testutil.OpRename, path, fmt.Errorf("read-only"))

	reg, err := registry.Load(fsys, path)
	require.NoError(t, err)
	err = reg.Save()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigSave))
	testutil.AssertNoFile(t, path+".tmp")
}

func TestGameLookup(t *testing.T) {
	reg := registry.NewMemory(
		types.GameEntry{Name: "Sacred", Path: "/games/sacred"},
		types.GameEntry{Name: "Sacred Gold", Path: "/games/gold"},
	)

	g, ok := reg.Game("/games/sacred/")
	require.True(t, ok)
	assert.Equal(t, "Sacred", g.Name)

	g, ok = reg.FindGame("sacred gold")
	require.True(t, ok)
	assert.Equal(t, filepath.Clean("/games/gold"), g.Path)

	g, ok = reg.FindGame("/games/gold")
	require.True(t, ok)
	assert.Equal(t, "Sacred Gold", g.Name)

	_, ok = reg.FindGame("Diablo")
	assert.False(t, ok)
}

func TestAddRemoveUpdateGames(t *testing.T) {
	reg := registry.NewMemory()
	entry := types.GameEntry{Name: "Sacred", Path: "/games/sacred"}

	require.NoError(t, reg.AddGame(entry))
	err := reg.AddGame(types.GameEntry{Name: "Other", Path: "/games/sacred/"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	entry.SavePath = "/games/sacred/save"
	entry.Valid = true
	reg.UpdateGames(entry, types.GameEntry{Name: "Ghost", Path: "/games/ghost"})

	games := reg.Games()
	require.Len(t, games, 1)
	assert.True(t, games[0].Valid)
	assert.Equal(t, "/games/sacred/save", games[0].SavePath)

	removed, err := reg.RemoveGame("/games/sacred")
	require.NoError(t, err)
	assert.Equal(t, "Sacred", removed.Name)
	assert.Empty(t, reg.Games())

	_, err = reg.RemoveGame("/games/sacred")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSaveDirLibrary(t *testing.T) {
	reg := registry.NewMemory()

	added := reg.AddSaveDirs("/saves/Speedrun", "/saves/hardcore", "/saves/hardcore/", "")
	assert.Equal(t, []string{"/saves/Speedrun", "/saves/hardcore"}, added)
	assert.Empty(t, reg.AddSaveDirs("/saves/hardcore"))
	assert.Equal(t, []string{"/saves/Speedrun", "/saves/hardcore"}, reg.SaveDirs())

	assert.Equal(t, []string{"/saves/Speedrun"}, reg.FilterSaveDirs("speed"))
	assert.Len(t, reg.FilterSaveDirs("  "), 2)
	assert.Empty(t, reg.FilterSaveDirs("casual"))

	assert.Equal(t, 1, reg.RemoveSaveDirs("/saves/hardcore", "/saves/unknown"))
	assert.Equal(t, []string{"/saves/Speedrun"}, reg.SaveDirs())
}

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/paths"
)

// TestEnvironment isolates savelink's own directories for one test.
type TestEnvironment struct {
	Root      string
	ConfigDir string
	StateDir  string
	GamesDir  string
	Paths     *paths.Paths

	t *testing.T
}

// NewTestEnvironment creates config, state and games directories under a
// fresh temp dir and points the SAVELINK_* variables at them.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
		GamesDir:  filepath.Join(root, "games"),
		t:         t,
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(paths.EnvHome, filepath.Join(root, "home"))

	env.Paths = paths.NewWithDirs(env.ConfigDir, env.StateDir)
	require.NoError(t, env.Paths.EnsureDirs())
	CreateDir(t, root, "games")

	return env
}

// AddInstall creates a game installation under GamesDir with the given
// executable, or none when exe is empty.
func (e *TestEnvironment) AddInstall(name, exe string) *TestInstall {
	e.t.Helper()

	dir := CreateDir(e.t, e.GamesDir, name)
	ti := &TestInstall{Root: e.GamesDir, Name: name, Dir: dir}
	if exe != "" {
		ti.AddExecutable(e.t, exe)
	}
	return ti
}

// WriteSettings writes settings.toml into the config directory.
func (e *TestEnvironment) WriteSettings(content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.ConfigDir, paths.SettingsFileName, content)
}

package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/config"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/testutil"
	"github.com/arthur-debert/savelink/pkg/types"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.True(t, cfg.History.Persist)
	assert.Equal(t, []string{"symlink", "junction", "copy"}, cfg.Links.Mechanisms)
	assert.Equal(t, "save", cfg.Games.SaveDirName)
	assert.Equal(t, "save_backup", cfg.Games.BackupDirName)
	assert.Equal(t, []string{"Sacred.exe", "Sacred Gold.exe"}, cfg.Games.Executables)
	assert.True(t, cfg.Games.CaseInsensitive)
	assert.Equal(t, 5*time.Second, cfg.Lock.Timeout)

	mechs, err := cfg.Mechanisms()
	require.NoError(t, err)
	assert.Equal(t, []types.Mechanism{types.MechanismSymlink, types.MechanismJunction, types.MechanismCopy}, mechs)
}

func TestSettingsFileOverridesDefaults(t *testing.T) {
	path := testutil.CreateFile(t, t.TempDir(), "settings.toml", `
[history]
max_entries = 10

[links]
mechanisms = ["copy"]

[games]
executables = []
`)

	cfg, err := config.Load(config.Options{SettingsPath: path, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.History.MaxEntries)
	assert.True(t, cfg.History.Persist, "untouched keys keep their defaults")
	assert.Equal(t, []string{"copy"}, cfg.Links.Mechanisms)
	assert.Empty(t, cfg.Games.Executables)
}

func TestMissingSettingsFileIsIgnored(t *testing.T) {
	cfg, err := config.Load(config.Options{
		SettingsPath: filepath.Join(t.TempDir(), "settings.toml"),
		SkipEnv:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.History.MaxEntries)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := testutil.CreateFile(t, t.TempDir(), "settings.toml", "[history]\nmax_entries = 10\n")
	t.Setenv("SAVELINK_HISTORY_MAX_ENTRIES", "20")
	t.Setenv("SAVELINK_HISTORY_PERSIST", "false")
	t.Setenv("SAVELINK_LINKS_MECHANISMS", "junction,copy")
	t.Setenv("SAVELINK_LOCK_TIMEOUT", "250ms")

	cfg, err := config.Load(config.Options{SettingsPath: path})
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.History.MaxEntries)
	assert.False(t, cfg.History.Persist)
	assert.Equal(t, []string{"junction", "copy"}, cfg.Links.Mechanisms)
	assert.Equal(t, 250*time.Millisecond, cfg.Lock.Timeout)
}

func TestOverridesWinOverEverything(t *testing.T) {
	t.Setenv("SAVELINK_HISTORY_PERSIST", "true")

	cfg, err := config.Load(config.Options{
		Overrides: map[string]interface{}{"history.persist": false},
	})
	require.NoError(t, err)
	assert.False(t, cfg.History.Persist)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{"non-positive history", "[history]\nmax_entries = 0\n"},
		{"unknown mechanism", "[links]\nmechanisms = [\"hardlink\"]\n"},
		{"same directory names", "[games]\nsave_dir_name = \"Save\"\nbackup_dir_name = \"save\"\n"},
		{"empty directory name", "[games]\nsave_dir_name = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, t.TempDir(), "settings.toml", tt.settings)
			_, err := config.Load(config.Options{SettingsPath: path, SkipEnv: true})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		})
	}
}

func TestMalformedSettings(t *testing.T) {
	path := testutil.CreateFile(t, t.TempDir(), "settings.toml", "[history\n")

	_, err := config.Load(config.Options{SettingsPath: path, SkipEnv: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for savelink
	EnvConfigDir = "SAVELINK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for savelink
	EnvStateDir = "SAVELINK_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File and directory names inside the savelink directories. These are part
// of the on-disk layout and are not configurable.
const (
	AppDirName       = "savelink"
	RegistryFileName = "registry.toml"
	SettingsFileName = "settings.toml"
	HistoryFileName  = "history.toml"
	LockFileName     = "savelink.lock"
	LogFileName      = "savelink.log"
)

// Paths resolves the locations of savelink's own files.
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves directories from the environment and XDG defaults.
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// NewWithDirs uses explicit directories, bypassing the environment.
func NewWithDirs(configDir, stateDir string) *Paths {
	return &Paths{configDir: configDir, stateDir: stateDir}
}

func (p *Paths) ConfigDir() string    { return p.configDir }
func (p *Paths) StateDir() string     { return p.stateDir }
func (p *Paths) RegistryPath() string { return filepath.Join(p.configDir, RegistryFileName) }
func (p *Paths) SettingsPath() string { return filepath.Join(p.configDir, SettingsFileName) }
func (p *Paths) HistoryPath() string  { return filepath.Join(p.stateDir, HistoryFileName) }
func (p *Paths) LockPath() string     { return filepath.Join(p.stateDir, LockFileName) }
func (p *Paths) LogFilePath() string  { return filepath.Join(p.stateDir, LogFileName) }

// EnsureDirs creates the config and state directories.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.configDir, p.stateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user forms are left alone
	return path
}

// SanitizePath expands ~ and cleans the path.
func SanitizePath(path string) string {
	path = strings.TrimSpace(ExpandHome(path))
	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}
	return cleaned
}

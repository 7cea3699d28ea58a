package types

// GameEntry is one registered application installation.
//
// Path is the immutable installation root owned by the registry. SavePath,
// BackupPath and Valid are derived and recomputed on every establish pass.
// When Valid is true BackupPath is a real directory and SavePath is either
// that directory, a link to it, or a link to an override target.
type GameEntry struct {
	Name       string `toml:"name" json:"name" yaml:"name"`
	Path       string `toml:"path" json:"path" yaml:"path"`
	SavePath   string `toml:"save_path,omitempty" json:"save_path,omitempty" yaml:"save_path,omitempty"`
	BackupPath string `toml:"backup_path,omitempty" json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Valid      bool   `toml:"valid" json:"valid" yaml:"valid"`
}

// ID returns the stable identifier of the entry, which is its path.
func (g GameEntry) ID() string {
	return g.Path
}

// Invalidate clears the derived fields.
func (g GameEntry) Invalidate() GameEntry {
	g.SavePath = ""
	g.BackupPath = ""
	g.Valid = false
	return g
}

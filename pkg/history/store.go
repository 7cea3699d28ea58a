package history

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Snapshot is the persisted state of a History.
type Snapshot struct {
	Position   int                   `toml:"position" json:"position" yaml:"position"`
	Operations []types.LinkOperation `toml:"operations" json:"operations" yaml:"operations"`
}

// Store persists history snapshots between runs.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

type nopStore struct{}

// NopStore returns a Store that keeps nothing; history lives only as long
// as the process.
func NopStore() Store {
	return nopStore{}
}

func (nopStore) Load() (Snapshot, error) { return Snapshot{Position: -1}, nil }
func (nopStore) Save(Snapshot) error     { return nil }

// IsPersistent reports whether s writes anything.
func IsPersistent(s Store) bool {
	_, nop := s.(nopStore)
	return !nop
}

type fileStore struct {
	fs   types.FS
	path string
}

// NewFileStore returns a Store backed by a TOML file at path.
func NewFileStore(fsys types.FS, path string) Store {
	return &fileStore{fs: fsys, path: path}
}

func (s *fileStore) Load() (Snapshot, error) {
	data, err := s.fs.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Snapshot{Position: -1}, nil
	}
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, errors.ErrHistoryStore, "cannot read history file %s", s.path)
	}

	snap := Snapshot{Position: -1}
	if err := toml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrapf(err, errors.ErrHistoryStore, "cannot parse history file %s", s.path)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file and renames it into place.
func (s *fileStore) Save(snap Snapshot) error {
	data, err := toml.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryStore, "cannot encode history")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrHistoryStore, "cannot create %s", filepath.Dir(s.path))
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrHistoryStore, "cannot write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrHistoryStore, "cannot replace %s", s.path)
	}
	return nil
}

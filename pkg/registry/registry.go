package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
)

type document struct {
	SaveDirs []string          `toml:"save_dirs"`
	Games    []types.GameEntry `toml:"games"`
}

// Store is a thread-safe game registry.
type Store struct {
	mu   sync.RWMutex
	doc  document
	fs   types.FS
	path string
}

// NewMemory creates a registry that is never written anywhere.
func NewMemory(games ...types.GameEntry) *Store {
	s := &Store{}
	for _, g := range games {
		g.Path = cleanPath(g.Path)
		s.doc.Games = append(s.doc.Games, g)
	}
	return s
}

// Load reads the registry at path. A missing file yields an empty registry
// that will be created on the first Save.
func Load(fsys types.FS, path string) (*Store, error) {
	s := &Store{fs: fsys, path: path}

	data, err := fsys.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read registry %s", path)
	}
	if err := toml.Unmarshal(data, &s.doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot parse registry %s", path)
	}

	for i := range s.doc.Games {
		s.doc.Games[i].Path = cleanPath(s.doc.Games[i].Path)
	}
	sort.Strings(s.doc.SaveDirs)
	return s, nil
}

// Path returns the backing file, or "" for a memory registry.
func (s *Store) Path() string {
	return s.path
}

// Save writes the registry to a temporary file and renames it into place.
func (s *Store) Save() error {
	if s.fs == nil {
		return nil
	}

	s.mu.RLock()
	data, err := toml.Marshal(s.doc)
	s.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "cannot encode registry")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot create %s", filepath.Dir(s.path))
	}
	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot replace %s", s.path)
	}
	return nil
}

// Games returns a copy of every entry in registration order.
func (s *Store) Games() []types.GameEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.GameEntry(nil), s.doc.Games...)
}

// Game looks an entry up by installation path.
func (s *Store) Game(path string) (types.GameEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(path); i >= 0 {
		return s.doc.Games[i], true
	}
	return types.GameEntry{}, false
}

// FindGame resolves a user reference: an installation path first, then a
// case-insensitive name.
func (s *Store) FindGame(nameOrPath string) (types.GameEntry, bool) {
	if g, ok := s.Game(nameOrPath); ok {
		return g, true
	}
	if abs, err := filepath.Abs(nameOrPath); err == nil {
		if g, ok := s.Game(abs); ok {
			return g, true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.doc.Games {
		if strings.EqualFold(g.Name, strings.TrimSpace(nameOrPath)) {
			return g, true
		}
	}
	return types.GameEntry{}, false
}

// AddGame registers entry. Paths must be unique.
func (s *Store) AddGame(entry types.GameEntry) error {
	entry.Path = cleanPath(entry.Path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(entry.Path) >= 0 {
		return errors.Newf(errors.ErrAlreadyExists, "game already registered: %s", entry.Path).
			WithDetail("path", entry.Path)
	}
	s.doc.Games = append(s.doc.Games, entry)
	return nil
}

// RemoveGame unregisters the game at path.
func (s *Store) RemoveGame(path string) (types.GameEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(path)
	if i < 0 {
		return types.GameEntry{}, errors.Newf(errors.ErrNotFound, "game not registered: %s", path)
	}
	removed := s.doc.Games[i]
	s.doc.Games = append(s.doc.Games[:i], s.doc.Games[i+1:]...)
	return removed, nil
}

// UpdateGames replaces stored entries with the given ones, matched by path.
// Entries that are not registered are ignored.
func (s *Store) UpdateGames(entries ...types.GameEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if i := s.index(e.Path); i >= 0 {
			e.Path = s.doc.Games[i].Path
			s.doc.Games[i] = e
		}
	}
}

// AddSaveDirs adds directories to the library and returns the ones that
// were not known yet.
func (s *Store) AddSaveDirs(dirs ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.doc.SaveDirs))
	for _, d := range s.doc.SaveDirs {
		known[d] = true
	}

	var added []string
	for _, d := range dirs {
		d = cleanPath(d)
		if d == "" || known[d] {
			continue
		}
		known[d] = true
		added = append(added, d)
		s.doc.SaveDirs = append(s.doc.SaveDirs, d)
	}
	sort.Strings(s.doc.SaveDirs)
	return added
}

// RemoveSaveDirs drops directories from the library and returns how many
// were removed.
func (s *Store) RemoveSaveDirs(dirs ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		drop[cleanPath(d)] = true
	}

	kept := s.doc.SaveDirs[:0]
	for _, d := range s.doc.SaveDirs {
		if !drop[d] {
			kept = append(kept, d)
		}
	}
	removed := len(s.doc.SaveDirs) - len(kept)
	s.doc.SaveDirs = kept
	return removed
}

// SaveDirs returns the sorted library.
func (s *Store) SaveDirs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.doc.SaveDirs...)
}

// FilterSaveDirs returns library entries containing term, ignoring case.
// An empty term matches everything.
func (s *Store) FilterSaveDirs(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.SaveDirs()
	}

	var out []string
	for _, d := range s.SaveDirs() {
		if strings.Contains(strings.ToLower(d), term) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) index(path string) int {
	path = cleanPath(path)
	for i, g := range s.doc.Games {
		if g.Path == path {
			return i
		}
	}
	return -1
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

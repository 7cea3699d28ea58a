package manager

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/paths"
)

// AddSaveDirs adds dir to the save directory library. With recursive, every
// terminal directory below dir (one without subdirectories) is added
// instead. Directories already in the library are skipped; the new ones
// are returned.
func (m *Manager) AddSaveDirs(dir string, recursive bool) ([]string, error) {
	var added []string
	err := m.mutate("add save dirs", func() error {
		abs, err := paths.ValidateDirectoryPath(dir, m.platform.OS, true)
		if err != nil {
			return err
		}

		candidates := []string{abs}
		if recursive {
			candidates, err = m.terminalDirs(abs)
			if err != nil {
				return errors.Wrapf(err, errors.ErrValidation, "cannot scan %s", abs)
			}
		}

		added = m.registry.AddSaveDirs(candidates...)
		m.logger.Info().Int("added", len(added)).Str("root", abs).Msg("Save directories added")
		return m.saveRegistry()
	})
	return added, err
}

func (m *Manager) terminalDirs(root string) ([]string, error) {
	entries, err := m.fs.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var out []string
	hasSub := false
	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		hasSub = true
		sub, err := m.terminalDirs(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	if !hasSub {
		out = append(out, root)
	}
	return out, nil
}

// RemoveSaveDirs removes directories from the library.
func (m *Manager) RemoveSaveDirs(dirs ...string) (int, error) {
	var removed int
	err := m.mutate("remove save dirs", func() error {
		cleaned := make([]string, 0, len(dirs))
		for _, d := range dirs {
			if abs, err := filepath.Abs(d); err == nil {
				d = abs
			}
			cleaned = append(cleaned, d)
		}
		removed = m.registry.RemoveSaveDirs(cleaned...)
		return m.saveRegistry()
	})
	return removed, err
}

// SaveDirs lists the library, optionally filtered by a substring.
func (m *Manager) SaveDirs(filter string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.FilterSaveDirs(filter)
}

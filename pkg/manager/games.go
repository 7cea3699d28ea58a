package manager

import (
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/engine"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Inspection is the full status of one game.
type Inspection struct {
	Game    types.GameEntry `json:"game" yaml:"game"`
	Display string          `json:"display" yaml:"display"`
	Link    types.LinkInfo  `json:"link" yaml:"link"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Games returns the registered games as last stored.
func (m *Manager) Games() []types.GameEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Games()
}

// Game resolves a user reference (path or name) to a registered game.
func (m *Manager) Game(ref string) (types.GameEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(ref)
}

func (m *Manager) find(ref string) (types.GameEntry, error) {
	game, ok := m.registry.FindGame(ref)
	if !ok {
		return types.GameEntry{}, errors.Newf(errors.ErrNotFound, "no game registered as %q", ref)
	}
	return game, nil
}

// AddGame validates and establishes the installation at dir and registers
// it. Nothing is registered when establishing fails. An empty name defaults
// to the directory's base name.
func (m *Manager) AddGame(name, dir string) (types.GameEntry, error) {
	var added types.GameEntry
	err := m.mutate("add game", func() error {
		abs, err := paths.ValidateDirectoryPath(dir, m.platform.OS, true)
		if err != nil {
			return err
		}
		if err := CheckInstallation(m.fs, abs, m.cfg.Games.Executables); err != nil {
			return err
		}
		if existing, ok := m.registry.Game(abs); ok {
			return errors.Newf(errors.ErrAlreadyExists, "this directory is already registered as %q", existing.Name).
				WithDetail("path", abs)
		}

		if name == "" {
			name = filepath.Base(abs)
		}
		name, err = paths.SanitizeGameName(name)
		if err != nil {
			return err
		}

		entry, err := m.engine.Establish(types.GameEntry{Name: name, Path: abs})
		if err != nil {
			return err
		}
		if err := m.registry.AddGame(entry); err != nil {
			return err
		}
		added = entry
		m.logger.Info().Str("game", name).Str("path", abs).Msg("Game added")
		return m.saveRegistry()
	})
	return added, err
}

// RemoveGame unregisters a game. Its installation is left as it is.
func (m *Manager) RemoveGame(ref string) (types.GameEntry, error) {
	var removed types.GameEntry
	err := m.mutate("remove game", func() error {
		game, err := m.find(ref)
		if err != nil {
			return err
		}
		if removed, err = m.registry.RemoveGame(game.Path); err != nil {
			return err
		}
		m.logger.Info().Str("game", game.Name).Msg("Game removed")
		return m.saveRegistry()
	})
	return removed, err
}

// Establish re-validates one game and stores the derived fields.
func (m *Manager) Establish(ref string) (types.GameEntry, error) {
	var result types.GameEntry
	err := m.mutate("establish", func() error {
		game, err := m.find(ref)
		if err != nil {
			return err
		}
		result, err = m.establish(game)
		if saveErr := m.saveRegistry(); err == nil {
			err = saveErr
		}
		return err
	})
	return result, err
}

func (m *Manager) establish(game types.GameEntry) (types.GameEntry, error) {
	entry, err := m.engine.Establish(game)
	m.registry.UpdateGames(entry)
	return entry, err
}

// EstablishAll re-validates every game. Failures are reported per game and
// do not stop the batch.
func (m *Manager) EstablishAll() ([]engine.Outcome, error) {
	var outcomes []engine.Outcome
	err := m.mutate("establish all", func() error {
		outcomes = m.engine.EstablishAll(m.registry.Games())
		for _, o := range outcomes {
			m.registry.UpdateGames(o.Entry)
		}
		return m.saveRegistry()
	})
	return outcomes, err
}

// DisplayTarget reports "default", "invalid" or the override path.
func (m *Manager) DisplayTarget(ref string) (string, error) {
	var display string
	err := m.mutate("display target", func() error {
		game, err := m.find(ref)
		if err != nil {
			return err
		}
		var entry types.GameEntry
		entry, display = m.engine.DisplayTarget(game)
		m.registry.UpdateGames(entry)
		return m.saveRegistry()
	})
	return display, err
}

// Inspect reports a game's link mechanism and target.
func (m *Manager) Inspect(ref string) (Inspection, error) {
	var result Inspection
	err := m.mutate("inspect", func() error {
		game, err := m.find(ref)
		if err != nil {
			return err
		}
		entry, estErr := m.establish(game)
		result.Game = entry
		if estErr != nil {
			result.Display = engine.DisplayInvalid
			result.Error = estErr.Error()
			return m.saveRegistry()
		}

		_, result.Display = m.engine.DisplayTarget(entry)
		result.Link = m.links.Inspect(entry.SavePath)
		return m.saveRegistry()
	})
	return result, err
}

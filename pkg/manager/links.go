package manager

import (
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/history"
	"github.com/arthur-debert/savelink/pkg/linker"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Change is the outcome of a rebind or a replay.
type Change struct {
	Operation types.LinkOperation `json:"operation" yaml:"operation"`

	// Applied is false when nothing changed: the link already pointed at
	// the target, there was nothing to replay, or the operation no longer
	// validates (see Operation.InvalidReason).
	Applied bool `json:"applied" yaml:"applied"`
}

// Override points a game's save link at target and records the change.
func (m *Manager) Override(ref, target string) (Change, error) {
	var change Change
	err := m.mutate("override", func() error {
		abs, err := paths.ValidateDirectoryPath(target, m.platform.OS, true)
		if err != nil {
			return err
		}
		change, err = m.rebind(ref, types.OperationOverride, abs)
		return err
	})
	return change, err
}

// Reset points a game's save link back at its backup directory.
func (m *Manager) Reset(ref string) (Change, error) {
	var change Change
	err := m.mutate("reset", func() error {
		var err error
		change, err = m.rebind(ref, types.OperationReset, "")
		return err
	})
	return change, err
}

func (m *Manager) rebind(ref string, kind types.OperationKind, target string) (Change, error) {
	game, err := m.find(ref)
	if err != nil {
		return Change{}, err
	}
	entry, err := m.establish(game)
	if err != nil {
		_ = m.saveRegistry()
		return Change{}, err
	}
	if kind == types.OperationReset {
		target = entry.BackupPath
	}

	previous := m.currentTarget(entry)
	if linker.SamePath(previous, target) {
		m.logger.Info().Str("game", entry.Name).Str("target", target).Msg("Save link already points at target")
		return Change{Operation: history.NewOperation(kind, entry, previous, target)}, m.saveRegistry()
	}

	if err := m.engine.Rebind(entry.SavePath, target); err != nil {
		return Change{}, err
	}

	op := history.NewOperation(kind, entry, previous, target)
	if err := m.history.Record(op); err != nil {
		return Change{Operation: op, Applied: true}, err
	}
	return Change{Operation: op, Applied: true}, m.saveRegistry()
}

func (m *Manager) currentTarget(entry types.GameEntry) string {
	info := m.links.Inspect(entry.SavePath)
	if info.Mechanism.IsLink() && info.Target != "" {
		return info.Target
	}
	return entry.SavePath
}

// Undo reverts the operation at the history cursor.
func (m *Manager) Undo() (Change, error) {
	return m.replay("undo", true)
}

// Redo re-applies the operation after the history cursor.
func (m *Manager) Redo() (Change, error) {
	return m.replay("redo", false)
}

func (m *Manager) replay(name string, undo bool) (Change, error) {
	var change Change
	err := m.mutate(name, func() error {
		i := m.history.Position()
		if !undo {
			i++
		}
		ops := m.history.Operations()
		if i >= 0 && i < len(ops) {
			m.refreshGame(ops[i].GameID)
		}

		var err error
		if undo {
			change.Operation, change.Applied, err = m.history.Undo()
		} else {
			change.Operation, change.Applied, err = m.history.Redo()
		}
		if saveErr := m.saveRegistry(); err == nil {
			err = saveErr
		}
		return err
	})
	return change, err
}

// refreshGame re-establishes a game so its stored save path is current.
func (m *Manager) refreshGame(id string) {
	game, ok := m.registry.Game(id)
	if !ok {
		return
	}
	if _, err := m.establish(game); err != nil {
		m.logger.Warn().Err(err).Str("game", game.Name).Msg("Game is not valid")
	}
}

// HistoryReport re-validates the log and returns it with its summary.
func (m *Manager) HistoryReport() ([]types.LinkOperation, history.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history.ValidateAll()
	return m.history.Operations(), m.history.Summary()
}

// CleanupInvalid drops operations that no longer validate.
func (m *Manager) CleanupInvalid() (int, error) {
	var removed int
	err := m.mutate("clean history", func() error {
		var err error
		removed, err = m.history.CleanupInvalid()
		return err
	})
	return removed, err
}

// ClearHistory empties the log.
func (m *Manager) ClearHistory() error {
	return m.mutate("clear history", func() error {
		return m.history.Clear()
	})
}

// SyncCopy refreshes a game whose save link fell back to a copy.
func (m *Manager) SyncCopy(ref string) (types.LinkInfo, error) {
	var info types.LinkInfo
	err := m.mutate("sync copy", func() error {
		game, err := m.find(ref)
		if err != nil {
			return err
		}
		entry, err := m.establish(game)
		if err != nil {
			return err
		}
		if err := m.links.SyncCopy(entry.SavePath); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "cannot sync %s", entry.Name)
		}
		info = m.links.Inspect(entry.SavePath)
		return nil
	})
	return info, err
}

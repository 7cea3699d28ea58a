// Package engine owns the save/backup invariant of a game installation.
//
// After a successful Establish the installation holds a real backup
// directory with the authoritative save data, and a save entry that is a
// directory link to it (or to an override target). Structural conflicts are
// reported through the returned entry, never by panicking, so callers can
// validate many installations in one pass.
package engine

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/linker"
	"github.com/arthur-debert/savelink/pkg/resolver"
	"github.com/arthur-debert/savelink/pkg/types"
)

const (
	DefaultSaveDirName   = "save"
	DefaultBackupDirName = "save_backup"

	// DisplayDefault is reported when the save link points at the backup.
	DisplayDefault = "default"
	// DisplayInvalid is reported when the installation cannot be established.
	DisplayInvalid = "invalid"
)

// Options configures an Engine.
type Options struct {
	FS     types.FS
	Links  *linker.Strategy
	Logger zerolog.Logger

	SaveDirName   string
	BackupDirName string
	CaseSensitive bool
}

// Engine establishes and rebinds save links.
type Engine struct {
	fs              types.FS
	links           *linker.Strategy
	logger          zerolog.Logger
	saveName        string
	backupName      string
	caseInsensitive bool
}

// Outcome is the result of establishing one entry in a batch.
type Outcome struct {
	Entry types.GameEntry
	Err   error
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		fs:              opts.FS,
		links:           opts.Links,
		logger:          opts.Logger,
		saveName:        opts.SaveDirName,
		backupName:      opts.BackupDirName,
		caseInsensitive: !opts.CaseSensitive,
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	if e.saveName == "" {
		e.saveName = DefaultSaveDirName
	}
	if e.backupName == "" {
		e.backupName = DefaultBackupDirName
	}
	return e
}

// Links returns the link strategy used by the engine.
func (e *Engine) Links() *linker.Strategy {
	return e.links
}

// Establish brings entry's installation into the save/backup layout.
//
// The returned entry always carries Name and Path. On success SavePath and
// BackupPath are set and Valid is true; on failure the derived fields are
// cleared and the error explains why.
func (e *Engine) Establish(entry types.GameEntry) (types.GameEntry, error) {
	log := e.logger.With().Str("game", entry.Name).Str("path", entry.Path).Logger()
	entry = entry.Invalidate()

	saveDir, backupDir := e.locate(entry.Path)
	log.Debug().Str("save", saveDir).Str("backup", backupDir).Msg("Resolved save directories")

	if err := e.establish(saveDir, backupDir); err != nil {
		log.Warn().Err(err).Msg("Game directory is not valid")
		return entry, err
	}

	entry.SavePath = saveDir
	entry.BackupPath = backupDir
	entry.Valid = true
	log.Debug().Msg("Game directory established")
	return entry, nil
}

func (e *Engine) locate(root string) (string, string) {
	saveDir, ok := resolver.Resolve(e.fs, root, e.saveName, e.caseInsensitive)
	if !ok {
		saveDir = filepath.Join(root, e.saveName)
	}
	backupDir, ok := resolver.Resolve(e.fs, root, e.backupName, e.caseInsensitive)
	if !ok {
		backupDir = filepath.Join(root, e.backupName)
	}
	return saveDir, backupDir
}

func (e *Engine) establish(saveDir, backupDir string) error {
	save := e.links.Inspect(saveDir)
	saveIsLink := save.Exists && save.Mechanism.IsLink()
	saveIsDir := save.Exists && save.Mechanism == types.MechanismDirectory

	if save.Exists && !saveIsLink && !saveIsDir {
		return errors.Newf(errors.ErrGameDirectory, "save path exists but is not a directory or link: %s", saveDir).
			WithDetail("save", saveDir)
	}

	backupExists := filesystem.Exists(e.fs, backupDir)
	if backupExists && !filesystem.IsRealDir(e.fs, backupDir) {
		return errors.Newf(errors.ErrGameDirectory, "backup path exists but is not a real directory: %s", backupDir).
			WithDetail("backup", backupDir)
	}

	if save.Exists && backupExists && saveIsDir {
		empty, err := filesystem.IsEmptyDir(e.fs, saveDir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrGameDirectory, "cannot read save directory: %s", saveDir)
		}
		if !empty {
			return errors.Newf(errors.ErrGameDirectory,
				"save directory is not empty while a backup directory exists: %s", saveDir).
				WithDetails(map[string]interface{}{"save": saveDir, "backup": backupDir})
		}
		if err := e.fs.Remove(saveDir); err != nil {
			return errors.Wrapf(err, errors.ErrGameDirectory, "cannot remove empty save directory: %s", saveDir)
		}
		e.logger.Debug().Str("save", saveDir).Msg("Removed empty save directory")
		save.Exists = false
	}

	if !backupExists {
		if !save.Exists || saveIsLink {
			if err := e.fs.MkdirAll(backupDir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrGameDirectory, "cannot create backup directory: %s", backupDir)
			}
			e.logger.Info().Str("backup", backupDir).Msg("Created backup directory")
		} else {
			if err := filesystem.Move(e.fs, saveDir, backupDir); err != nil {
				return errors.Wrapf(err, errors.ErrGameDirectory, "cannot move save data to %s", backupDir)
			}
			e.logger.Info().Str("from", saveDir).Str("to", backupDir).Msg("Moved save data to backup directory")
			save.Exists = false
		}
	}

	if !save.Exists {
		if _, err := e.links.Create(saveDir, backupDir, false); err != nil {
			return errors.Wrapf(err, errors.ErrGameDirectory, "cannot link %s to %s", saveDir, backupDir)
		}
	}

	return nil
}

// EstablishAll establishes every entry, continuing past failures.
func (e *Engine) EstablishAll(entries []types.GameEntry) []Outcome {
	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		updated, err := e.Establish(entry)
		outcomes = append(outcomes, Outcome{Entry: updated, Err: err})
	}
	return outcomes
}

// Rebind points the save link at link to target. target must be an existing
// real directory; this is checked before anything is touched. A real save
// directory is never deleted to make room: it holds data, not a link.
func (e *Engine) Rebind(link, target string) error {
	if !filesystem.IsRealDir(e.fs, target) {
		return errors.Newf(errors.ErrValidation, "target is not an existing directory: %s", target).
			WithDetail("target", target)
	}

	current := e.links.Inspect(link)
	if current.Exists && !current.Mechanism.IsLink() {
		return errors.Newf(errors.ErrNotALink, "refusing to replace %s: it is a %s, not a link", link, current.Mechanism).
			WithDetail("link", link)
	}

	if _, err := e.links.Rebind(link, target, true); err != nil {
		return err
	}

	if !e.links.PointsAt(link, target) {
		return errors.Newf(errors.ErrLinkCreation, "link %s does not point at %s after rebind", link, target)
	}

	e.logger.Info().Str("link", link).Str("target", target).Msg("Rebound save link")
	return nil
}

// DisplayTarget re-establishes entry and reports where its save link
// points: DisplayDefault, DisplayInvalid or the absolute target path.
func (e *Engine) DisplayTarget(entry types.GameEntry) (types.GameEntry, string) {
	entry, err := e.Establish(entry)
	if err != nil {
		return entry, DisplayInvalid
	}

	target := entry.SavePath
	if info := e.links.Inspect(entry.SavePath); info.Mechanism.IsLink() && info.Target != "" {
		target = info.Target
	}
	if linker.SamePath(target, entry.BackupPath) {
		return entry, DisplayDefault
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	return entry, target
}

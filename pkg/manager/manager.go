// Package manager is the application service behind the command line. It
// wires the registry, engine, link strategy and history together and
// serializes every mutation, within the process with a mutex and across
// processes with a lock file.
package manager

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/savelink/pkg/config"
	"github.com/arthur-debert/savelink/pkg/engine"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/history"
	"github.com/arthur-debert/savelink/pkg/linker"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/platform"
	"github.com/arthur-debert/savelink/pkg/registry"
	"github.com/arthur-debert/savelink/pkg/types"
)

const lockRetryDelay = 50 * time.Millisecond

// Options configures a Manager. Only Config is required; everything else
// defaults to the real host and in-memory stores.
type Options struct {
	Config   *config.Config
	FS       types.FS
	Platform *platform.Info
	Logger   zerolog.Logger

	Registry     *registry.Store
	HistoryStore history.Store

	// LockPath enables cross-process locking when set.
	LockPath string

	// Junctions overrides the platform junction implementation.
	Junctions linker.Junctioner
}

// Manager coordinates all savelink operations.
type Manager struct {
	mu sync.Mutex

	cfg      *config.Config
	fs       types.FS
	platform platform.Info
	logger   zerolog.Logger

	registry     *registry.Store
	historyStore history.Store
	history      *history.History
	links        *linker.Strategy
	engine       *engine.Engine
	lock         *flock.Flock
}

// Open builds a Manager backed by the files under p.
func Open(cfg *config.Config, p *paths.Paths, logger zerolog.Logger) (*Manager, error) {
	if err := p.EnsureDirs(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSave, "cannot create savelink directories")
	}

	fsys := filesystem.NewOS()
	reg, err := registry.Load(fsys, p.RegistryPath())
	if err != nil {
		return nil, err
	}

	store := history.NopStore()
	if cfg.History.Persist {
		store = history.NewFileStore(fsys, p.HistoryPath())
	}

	return New(Options{
		Config:       cfg,
		FS:           fsys,
		Logger:       logger,
		Registry:     reg,
		HistoryStore: store,
		LockPath:     p.LockPath(),
	})
}

// New builds a Manager from explicit collaborators.
func New(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	mechanisms, err := cfg.Mechanisms()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:          cfg,
		fs:           opts.FS,
		logger:       logging.Component(opts.Logger, "manager"),
		registry:     opts.Registry,
		historyStore: opts.HistoryStore,
	}
	if m.fs == nil {
		m.fs = filesystem.NewOS()
	}
	if opts.Platform != nil {
		m.platform = *opts.Platform
	} else {
		m.platform = platform.Detect(opts.Logger)
	}
	if m.registry == nil {
		m.registry = registry.NewMemory()
	}
	if m.historyStore == nil {
		m.historyStore = history.NopStore()
	}
	if opts.LockPath != "" {
		m.lock = flock.New(opts.LockPath)
	}

	m.links = linker.New(linker.Options{
		FS:        m.fs,
		Platform:  m.platform,
		Logger:    logging.Component(opts.Logger, "linker"),
		Preferred: mechanisms,
		Junctions: opts.Junctions,
	})
	m.engine = engine.New(engine.Options{
		FS:            m.fs,
		Links:         m.links,
		Logger:        logging.Component(opts.Logger, "engine"),
		SaveDirName:   cfg.Games.SaveDirName,
		BackupDirName: cfg.Games.BackupDirName,
		CaseSensitive: !cfg.Games.CaseInsensitive,
	})

	if err := m.loadHistory(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) loadHistory() error {
	h, err := history.New(history.Options{
		Registry:   m.registry,
		FS:         m.fs,
		Rebinder:   m.engine,
		Store:      m.historyStore,
		MaxEntries: m.cfg.History.MaxEntries,
		Logger:     logging.Component(m.logger, "history"),
	})
	if err != nil {
		return err
	}
	m.history = h
	return nil
}

// Platform returns the detected host capabilities.
func (m *Manager) Platform() platform.Info {
	return m.platform
}

// Mechanisms returns the link mechanisms in the order they will be tried.
func (m *Manager) Mechanisms() []types.Mechanism {
	return m.links.Mechanisms()
}

// Close releases the lock file handle.
func (m *Manager) Close() error {
	if m.lock == nil {
		return nil
	}
	return m.lock.Close()
}

// mutate runs fn with exclusive access to the registry, the history and
// the installations. With a lock file, state written by other processes
// is reloaded first.
func (m *Manager) mutate(op string, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	done := logging.LogOperationStart(m.logger, op)
	defer done()

	if m.lock != nil {
		if err := m.acquire(); err != nil {
			return err
		}
		defer func() {
			if err := m.lock.Unlock(); err != nil {
				m.logger.Warn().Err(err).Msg("Failed to release lock")
			}
		}()
		if err := m.reload(); err != nil {
			return err
		}
	}

	return fn()
}

func (m *Manager) acquire() error {
	timeout := m.cfg.Lock.Timeout
	if timeout <= 0 {
		locked, err := m.lock.TryLock()
		if err != nil {
			return errors.Wrap(err, errors.ErrLocked, "failed to acquire lock")
		}
		if !locked {
			return errors.Newf(errors.ErrLocked, "another savelink process holds %s", m.lock.Path())
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := m.lock.TryLockContext(ctx, lockRetryDelay)
	if !locked {
		e := errors.Newf(errors.ErrLocked, "another savelink process holds %s", m.lock.Path()).
			WithDetail("timeout", timeout.String())
		if err != nil {
			e.Wrapped = err
		}
		return e
	}
	return nil
}

func (m *Manager) reload() error {
	// the in-memory history keeps pointing at the old registry otherwise
	defer func() { m.history.SetRegistry(m.registry) }()

	if path := m.registry.Path(); path != "" {
		reg, err := registry.Load(m.fs, path)
		if err != nil {
			return err
		}
		m.registry = reg
	}
	if !history.IsPersistent(m.historyStore) {
		return nil
	}
	return m.loadHistory()
}

// saveRegistry persists the registry, logging rather than failing when the
// filesystem change it describes has already happened.
func (m *Manager) saveRegistry() error {
	if err := m.registry.Save(); err != nil {
		m.logger.Error().Err(err).Msg("Failed to save registry")
		return err
	}
	return nil
}

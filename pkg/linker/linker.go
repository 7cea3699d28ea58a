package linker

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/platform"
	"github.com/arthur-debert/savelink/pkg/types"
)

// DefaultMechanisms is the preference order used when none is configured.
var DefaultMechanisms = []types.Mechanism{
	types.MechanismSymlink,
	types.MechanismJunction,
	types.MechanismCopy,
}

// Options configures a Strategy.
type Options struct {
	FS       types.FS
	Platform platform.Info
	Logger   zerolog.Logger

	// Preferred is the mechanism order to try. Entries the platform cannot
	// support are dropped. Copy is always appended as the last resort.
	Preferred []types.Mechanism

	// Junctions overrides the platform junction implementation.
	Junctions Junctioner
}

// Attempt records the outcome of trying one mechanism.
type Attempt struct {
	Mechanism types.Mechanism `json:"mechanism" yaml:"mechanism"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result describes a successful link creation.
type Result struct {
	Mechanism types.Mechanism `json:"mechanism" yaml:"mechanism"`
	Link      string          `json:"link" yaml:"link"`
	Target    string          `json:"target" yaml:"target"`
	Attempts  []Attempt       `json:"attempts" yaml:"attempts"`
}

// Strategy creates directory links with the best mechanism available.
type Strategy struct {
	fs         types.FS
	platform   platform.Info
	logger     zerolog.Logger
	junctions  Junctioner
	mechanisms []types.Mechanism
}

// New creates a Strategy for the given host.
func New(opts Options) *Strategy {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	junctions := opts.Junctions
	if junctions == nil {
		junctions = defaultJunctioner(opts.Logger)
	}
	preferred := opts.Preferred
	if len(preferred) == 0 {
		preferred = DefaultMechanisms
	}

	s := &Strategy{
		fs:        fsys,
		platform:  opts.Platform,
		logger:    opts.Logger,
		junctions: junctions,
	}
	s.mechanisms = s.supported(preferred)

	s.logger.Debug().
		Str("os", s.platform.OS).
		Interface("mechanisms", s.mechanisms).
		Msg("Link strategy initialized")
	return s
}

func (s *Strategy) supported(preferred []types.Mechanism) []types.Mechanism {
	seen := make(map[types.Mechanism]bool)
	var out []types.Mechanism
	for _, m := range append(append([]types.Mechanism{}, preferred...), types.MechanismCopy) {
		if seen[m] {
			continue
		}
		seen[m] = true
		switch m {
		case types.MechanismSymlink:
			if !s.platform.CanSymlink {
				continue
			}
		case types.MechanismJunction:
			if !s.platform.SupportsJunction {
				continue
			}
		case types.MechanismCopy:
		default:
			continue
		}
		out = append(out, m)
	}
	return out
}

// Mechanisms returns the order in which mechanisms will be tried.
func (s *Strategy) Mechanisms() []types.Mechanism {
	return append([]types.Mechanism(nil), s.mechanisms...)
}

// Create makes link point at target. An existing entry at link is an error
// unless force is set, in which case it is removed first. All validation runs
// before anything on disk is touched.
func (s *Strategy) Create(link, target string, force bool) (Result, error) {
	link, target, err := s.validate(link, target)
	if err != nil {
		return Result{}, err
	}

	if filesystem.Exists(s.fs, link) {
		if !force {
			return Result{}, errors.Newf(errors.ErrAlreadyExists, "link path already exists: %s", link).
				WithDetail("link", link)
		}
		if err := s.Remove(link); err != nil {
			return Result{}, err
		}
	}

	return s.create(link, target)
}

// Rebind replaces whatever is at link with a link to target.
func (s *Strategy) Rebind(link, target string, force bool) (Result, error) {
	s.logger.Info().Str("link", link).Str("target", target).Msg("Rebinding link")

	link, target, err := s.validate(link, target)
	if err != nil {
		return Result{}, err
	}

	if filesystem.Exists(s.fs, link) {
		if err := s.Remove(link); err != nil {
			return Result{}, err
		}
	}

	return s.Create(link, target, force)
}

func (s *Strategy) validate(link, target string) (string, string, error) {
	if err := paths.ValidateLinkPath(link, s.platform.OS); err != nil {
		return "", "", err
	}
	if err := paths.ValidatePath(target); err != nil {
		return "", "", err
	}

	absLink, err := filepath.Abs(link)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrValidation, "invalid link path: %s", link)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrValidation, "invalid target path: %s", target)
	}
	if err := paths.ValidatePathLength(absTarget, s.platform.OS); err != nil {
		return "", "", err
	}

	info, err := s.fs.Stat(absTarget)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrValidation, "target directory does not exist: %s", absTarget)
	}
	if !info.IsDir() {
		return "", "", errors.Newf(errors.ErrValidation, "target is not a directory: %s", absTarget)
	}

	parent := filepath.Dir(absLink)
	if !filesystem.IsDir(s.fs, parent) {
		return "", "", errors.Newf(errors.ErrValidation, "parent directory does not exist: %s", parent)
	}

	return absLink, absTarget, nil
}

func (s *Strategy) create(link, target string) (Result, error) {
	result := Result{Link: link, Target: target}

	var lastErr error
	for _, m := range s.mechanisms {
		err := s.createWith(m, link, target)
		if err == nil {
			result.Mechanism = m
			result.Attempts = append(result.Attempts, Attempt{Mechanism: m})
			s.logger.Info().
				Str("mechanism", string(m)).
				Str("link", link).
				Str("target", target).
				Msg("Created directory link")
			return result, nil
		}

		if filesystem.IsPermission(err) {
			err = errors.Wrapf(err, errors.ErrPermission, "insufficient rights for %s", m)
		}
		s.logger.Debug().Err(err).Str("mechanism", string(m)).Msg("Link mechanism failed")
		result.Attempts = append(result.Attempts, Attempt{Mechanism: m, Error: err.Error()})
		lastErr = err
		s.clearResidue(m, link)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no link mechanism available")
	}
	s.logger.Error().Err(lastErr).Str("link", link).Msg("Failed to create directory link using any method")

	return result, errors.Wrap(lastErr, errors.ErrLinkCreation,
		"failed to create directory link using any method").
		WithDetails(map[string]interface{}{
			"link":     link,
			"target":   target,
			"attempts": result.Attempts,
		})
}

func (s *Strategy) createWith(m types.Mechanism, link, target string) error {
	switch m {
	case types.MechanismSymlink:
		return s.fs.Symlink(target, link)
	case types.MechanismJunction:
		return s.junctions.Create(link, target)
	case types.MechanismCopy:
		return s.createCopy(link, target)
	}
	return fmt.Errorf("unknown link mechanism: %s", m)
}

// clearResidue removes anything a failed attempt left at link so the next
// mechanism starts from a clean slate.
func (s *Strategy) clearResidue(m types.Mechanism, link string) {
	if !filesystem.Exists(s.fs, link) {
		return
	}
	var err error
	switch m {
	case types.MechanismJunction:
		err = s.junctions.Remove(link)
	case types.MechanismCopy:
		err = s.fs.RemoveAll(link)
	default:
		err = s.fs.Remove(link)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("link", link).Msg("Failed to clear residue of failed link attempt")
	}
}

// Remove deletes whatever sits at link using the rule for its mechanism.
// Symlinks are unlinked, junctions removed without touching the target,
// copies and plain directories deleted recursively, anything else removed
// as is. A missing link is not an error.
func (s *Strategy) Remove(link string) error {
	info := s.Inspect(link)
	if !info.Exists {
		return nil
	}

	var err error
	switch info.Mechanism {
	case types.MechanismSymlink:
		err = s.fs.Remove(link)
	case types.MechanismJunction:
		err = s.junctions.Remove(link)
	case types.MechanismCopy, types.MechanismDirectory:
		err = s.fs.RemoveAll(link)
	default:
		err = s.fs.Remove(link)
	}
	if err != nil {
		code := errors.ErrLinkRemoval
		if filesystem.IsPermission(err) {
			code = errors.ErrPermission
		}
		return errors.Wrapf(err, code, "failed to remove existing link: %s", link).
			WithDetail("mechanism", string(info.Mechanism))
	}

	s.logger.Debug().Str("link", link).Str("mechanism", string(info.Mechanism)).Msg("Removed link")
	return nil
}

package manager

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
)

// CheckInstallation verifies that dir looks like a game installation: a
// real directory (not a link) holding one of executables at its top level,
// compared without case. An empty executables list accepts any directory.
func CheckInstallation(fsys types.FS, dir string, executables []string) error {
	info, err := fsys.Lstat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrValidation, "cannot access %s", dir)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return errors.Newf(errors.ErrValidation, "symbolic links are not supported: %s", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrValidation, "not a directory: %s", dir)
	}
	if len(executables) == 0 {
		return nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrValidation, "cannot read %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, exe := range executables {
			if strings.EqualFold(entry.Name(), exe) {
				return nil
			}
		}
	}

	return errors.Newf(errors.ErrValidation, "%s not found in %s", strings.Join(executables, " or "), filepath.Base(dir)).
		WithDetails(map[string]interface{}{"path": dir, "executables": executables})
}

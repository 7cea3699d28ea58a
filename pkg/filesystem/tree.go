package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/arthur-debert/savelink/pkg/types"
)

// Exists reports whether name exists without following a final symlink.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsRealDir reports whether name is a directory and not a link to one.
func IsRealDir(fsys types.FS, name string) bool {
	info, err := fsys.Lstat(name)
	if err != nil {
		return false
	}
	return info.IsDir() && info.Mode()&fs.ModeSymlink == 0
}

// IsDir reports whether name resolves to a directory, following links.
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsEmptyDir reports whether the directory at name has no entries.
func IsEmptyDir(fsys types.FS, name string) (bool, error) {
	entries, err := fsys.ReadDir(name)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// CopyTree copies the directory src to dst, which must not exist yet.
// Symlinks inside the tree are recreated, not followed.
func CopyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("copy source is not a directory: %s", src)
	}
	if Exists(fsys, dst) {
		return &fs.PathError{Op: "copy", Path: dst, Err: fs.ErrExist}
	}
	return copyDir(fsys, src, dst, info.Mode().Perm())
}

func copyDir(fsys types.FS, src, dst string, perm fs.FileMode) error {
	if err := fsys.Mkdir(dst, perm|0700); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		info, err := fsys.Lstat(from)
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(from)
			if err != nil {
				return err
			}
			if err := fsys.Symlink(target, to); err != nil {
				return err
			}
		case info.IsDir():
			if err := copyDir(fsys, from, to, info.Mode().Perm()); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			data, err := fsys.ReadFile(from)
			if err != nil {
				return err
			}
			if err := fsys.WriteFile(to, data, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			// sockets, devices and other irregular entries are not save data
		}
	}

	return nil
}

// MoveOptions returns the retry policy applied to renames. Game clients and
// virus scanners briefly hold handles on save files, which surfaces as
// EBUSY or, on Windows, sharing violations.
func MoveOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(3),
		retry.Delay(50 * time.Millisecond),
		retry.MaxDelay(500 * time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsTransient),
		retry.LastErrorOnly(true),
	}
}

// Move renames src to dst. When the rename crosses devices it falls back to
// copying the tree and removing the source.
func Move(fsys types.FS, src, dst string) error {
	err := retry.Do(func() error {
		return fsys.Rename(src, dst)
	}, MoveOptions()...)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := CopyTree(fsys, src, dst); err != nil {
		_ = fsys.RemoveAll(dst)
		return fmt.Errorf("cross-device move of %s failed: %w", src, err)
	}
	return fsys.RemoveAll(src)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EBUSY) {
		return true
	}
	return isSharingViolation(err)
}

// IsPermission reports whether err is a permission failure.
func IsPermission(err error) bool {
	return errors.Is(err, os.ErrPermission)
}

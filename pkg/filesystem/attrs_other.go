//go:build !windows

package filesystem

import (
	"path/filepath"
	"strings"
)

// Hide is a no-op outside Windows; a leading dot already hides the file.
func Hide(name string) error {
	return nil
}

// IsHidden reports whether name is a dot file.
func IsHidden(name string) (bool, error) {
	return strings.HasPrefix(filepath.Base(name), "."), nil
}

func isSharingViolation(err error) bool {
	return false
}

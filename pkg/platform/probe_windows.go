//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

// probeSymlink creates and removes a throwaway directory symlink. Privilege
// and developer-mode checks both reduce to whether this call succeeds.
func probeSymlink() bool {
	dir, err := os.MkdirTemp("", "savelink-probe-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		return false
	}
	return os.Symlink(target, filepath.Join(dir, "link")) == nil
}

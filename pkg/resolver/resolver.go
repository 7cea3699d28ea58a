// Package resolver locates named entries anywhere below an installation root.
//
// The search covers the whole subtree, not just the root's immediate
// children. That means a file called "save" buried inside relocated save
// data can win over a missing top-level directory; callers that re-resolve
// after moving data around should keep this in mind.
package resolver

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/savelink/pkg/types"
)

// Resolve searches the subtree rooted at root for a file or directory whose
// base name matches name and returns the first match.
//
// Order: every directory's own entries are checked (in ReadDir order) before
// any of its subdirectories is entered, so shallower matches win over deeper
// ones inside the same branch. Symlinked directories and junctions are matched
// by name but never descended into. Unreadable directories are skipped.
func Resolve(fsys types.FS, root, name string, caseInsensitive bool) (string, bool) {
	if name == "" {
		return "", false
	}
	return search(fsys, root, name, caseInsensitive)
}

func search(fsys types.FS, dir, name string, caseInsensitive bool) (string, bool) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var subdirs []string
	for _, entry := range entries {
		if matches(entry.Name(), name, caseInsensitive) {
			return filepath.Join(dir, entry.Name()), true
		}
		if entry.IsDir() && entry.Type()&(fs.ModeSymlink|fs.ModeIrregular) == 0 {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
		}
	}

	for _, sub := range subdirs {
		if found, ok := search(fsys, sub, name, caseInsensitive); ok {
			return found, true
		}
	}
	return "", false
}

func matches(candidate, name string, caseInsensitive bool) bool {
	if caseInsensitive {
		return strings.EqualFold(candidate, name)
	}
	return candidate == name
}

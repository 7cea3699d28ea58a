package types

import (
	"io/fs"
)

// FS is the filesystem interface required for savelink operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// Registry is the view of the game registry the core services need.
type Registry interface {
	// Games returns a snapshot of every registered entry.
	Games() []GameEntry

	// Game looks an entry up by its installation path.
	Game(path string) (GameEntry, bool)
}

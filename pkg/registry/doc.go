// Package registry stores the registered game installations and the library
// of alternate save directories.
//
// The registry is persisted as TOML:
//
//	save_dirs = ["/data/saves/hardcore", "/data/saves/speedrun"]
//
//	[[games]]
//	name = "Sacred Gold"
//	path = "/games/Sacred Gold"
//	save_path = "/games/Sacred Gold/save"
//	backup_path = "/games/Sacred Gold/save_backup"
//	valid = true
//
// A game is identified by its installation path. Mutations only change the
// in-memory state; call Save to write it out.
package registry

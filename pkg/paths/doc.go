// Package paths provides centralized path handling for savelink.
//
// It resolves the XDG locations savelink keeps its files in and validates
// user-supplied paths and names against the limits of the host platform.
//
// # Environment Variables
//
//   - SAVELINK_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/savelink)
//   - SAVELINK_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/savelink)
//
// # Layout
//
//   - Config: registry.toml (games and save directories), settings.toml
//   - State: history.toml (undo/redo log), savelink.lock, savelink.log
//
// # Validation
//
// Validation never touches the filesystem beyond Stat calls, so a failure
// never leaves partial state behind:
//
//	if err := paths.ValidateLinkPath(link, runtime.GOOS); err != nil {
//	    return err // VALIDATION or SYSTEM_LIMIT
//	}
package paths

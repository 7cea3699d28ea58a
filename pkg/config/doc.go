// Package config loads savelink's settings.
//
// Sources are merged in order, later ones winning:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. settings.toml in the config directory, when present
//  3. SAVELINK_* environment variables, e.g. SAVELINK_HISTORY_MAX_ENTRIES
//  4. explicit overrides passed by the caller (command-line flags)
package config

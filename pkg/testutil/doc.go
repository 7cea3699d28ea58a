// Package testutil provides helpers shared by savelink's tests.
//
// Key components:
//   - file helpers: create, read and assert on real files under t.TempDir()
//   - TestInstall: declarative builder for a game installation directory
//   - FaultFS: wraps a types.FS and fails chosen operations on chosen paths
//   - TestEnvironment: isolated config and state directories for a test
//
// Tests that need symbolic links should call RequireSymlinks first so they
// skip cleanly on hosts that cannot create them.
package testutil

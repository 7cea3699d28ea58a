// Package platform detects which directory-link mechanisms the host and the
// current process can use.
package platform

import (
	"runtime"

	"github.com/rs/zerolog"
)

// Info describes the host as far as link creation is concerned.
type Info struct {
	// OS is runtime.GOOS, or an override used by tests.
	OS string

	// CanSymlink is true when the process may create symbolic links. On
	// Windows this needs administrator rights or developer mode.
	CanSymlink bool

	// SupportsJunction is true where directory junctions exist (Windows).
	SupportsJunction bool
}

// IsWindows reports whether the info describes a Windows host.
func (i Info) IsWindows() bool {
	return i.OS == "windows"
}

// Detect probes the running host.
func Detect(logger zerolog.Logger) Info {
	info := Info{
		OS:               runtime.GOOS,
		CanSymlink:       probeSymlink(),
		SupportsJunction: runtime.GOOS == "windows",
	}

	logger.Debug().
		Str("os", info.OS).
		Bool("canSymlink", info.CanSymlink).
		Bool("junctions", info.SupportsJunction).
		Msg("Platform detected")

	if info.IsWindows() && !info.CanSymlink {
		logger.Info().Msg("Symbolic links unavailable; enable Developer Mode or run as Administrator. Falling back to junctions")
	}

	return info
}

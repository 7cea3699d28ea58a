package history

import (
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Reasons attached to operations that no longer validate.
const (
	ReasonGameMissing     = "Game no longer exists"
	ReasonBothMissing     = "Both target directories no longer exist"
	ReasonPreviousMissing = "Previous target directory no longer exists"
	ReasonNewMissing      = "New target directory no longer exists"
)

// Check reports whether op can still be replayed against the current
// registry and filesystem, and why not when it cannot. It has no side
// effects.
func Check(op types.LinkOperation, registry types.Registry, fsys types.FS) (bool, string) {
	if _, ok := registry.Game(op.GameID); !ok {
		return false, ReasonGameMissing
	}

	prev := filesystem.IsDir(fsys, op.PreviousTarget)
	next := filesystem.IsDir(fsys, op.NewTarget)
	switch {
	case !prev && !next:
		return false, ReasonBothMissing
	case !prev:
		return false, ReasonPreviousMissing
	case !next:
		return false, ReasonNewMissing
	}
	return true, ""
}

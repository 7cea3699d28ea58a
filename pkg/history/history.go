package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/types"
)

// DefaultMaxEntries caps the log when no limit is configured.
const DefaultMaxEntries = 50

// Rebinder points a save link at a new target.
type Rebinder interface {
	Rebind(link, target string) error
}

// Options configures a History.
type Options struct {
	Registry   types.Registry
	FS         types.FS
	Rebinder   Rebinder
	Store      Store
	MaxEntries int
	Logger     zerolog.Logger
}

// History is the undo/redo log. It is not safe for concurrent use; callers
// serialize mutations.
type History struct {
	ops      []types.LinkOperation
	position int
	max      int

	registry types.Registry
	fs       types.FS
	rebinder Rebinder
	store    Store
	logger   zerolog.Logger
}

// Summary describes the log for display.
type Summary struct {
	Total    int  `json:"total" yaml:"total"`
	Position int  `json:"position" yaml:"position"`
	Valid    int  `json:"valid" yaml:"valid"`
	Invalid  int  `json:"invalid" yaml:"invalid"`
	CanUndo  bool `json:"can_undo" yaml:"can_undo"`
	CanRedo  bool `json:"can_redo" yaml:"can_redo"`
}

// New creates a History and loads any persisted state from the store.
func New(opts Options) (*History, error) {
	h := &History{
		position: -1,
		max:      opts.MaxEntries,
		registry: opts.Registry,
		fs:       opts.FS,
		rebinder: opts.Rebinder,
		store:    opts.Store,
		logger:   opts.Logger,
	}
	if h.max <= 0 {
		h.max = DefaultMaxEntries
	}
	if h.fs == nil {
		h.fs = filesystem.NewOS()
	}
	if h.store == nil {
		h.store = NopStore()
	}

	snap, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	h.ops = snap.Operations
	h.position = snap.Position
	h.trim()
	if h.position < -1 {
		h.position = -1
	}
	if h.position > len(h.ops)-1 {
		h.position = len(h.ops) - 1
	}

	h.logger.Debug().Int("operations", len(h.ops)).Int("position", h.position).Msg("History loaded")
	return h, nil
}

// SetRegistry replaces the registry operations are validated against.
func (h *History) SetRegistry(r types.Registry) {
	h.registry = r
}

// NewOperation builds an operation for a rebind of game's save link.
func NewOperation(kind types.OperationKind, game types.GameEntry, previous, next string) types.LinkOperation {
	return types.LinkOperation{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Kind:           kind,
		GameID:         game.ID(),
		GameName:       game.Name,
		PreviousTarget: previous,
		NewTarget:      next,
		IsValid:        true,
	}
}

// Record appends op after the cursor, discarding the redo tail.
func (h *History) Record(op types.LinkOperation) error {
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}
	op.IsValid = true
	op.InvalidReason = ""

	h.ops = append(h.ops[:h.position+1], op)
	h.position = len(h.ops) - 1
	h.trim()

	h.logger.Info().
		Str("id", op.ID).
		Str("kind", string(op.Kind)).
		Str("game", op.GameName).
		Str("to", op.NewTarget).
		Msg("Recorded link operation")
	return h.persist()
}

// trim drops the oldest entries beyond the cap, keeping the cursor on the
// same operation.
func (h *History) trim() {
	if over := len(h.ops) - h.max; over > 0 {
		h.ops = append([]types.LinkOperation(nil), h.ops[over:]...)
		h.position -= over
		if h.position < -1 {
			h.position = -1
		}
	}
}

func (h *History) CanUndo() bool { return h.position >= 0 }
func (h *History) CanRedo() bool { return h.position < len(h.ops)-1 }
func (h *History) Position() int { return h.position }
func (h *History) Len() int      { return len(h.ops) }

// Operations returns a copy of the log, oldest first.
func (h *History) Operations() []types.LinkOperation {
	return append([]types.LinkOperation(nil), h.ops...)
}

// Validate refreshes the validity of the operation at index i in place and
// reports it. The game name is refreshed when the game was renamed.
func (h *History) Validate(i int) bool {
	if i < 0 || i >= len(h.ops) {
		return false
	}
	op := &h.ops[i]

	ok, reason := Check(*op, h.registry, h.fs)
	op.IsValid = ok
	op.InvalidReason = reason
	if game, found := h.registry.Game(op.GameID); found && game.Name != "" && game.Name != op.GameName {
		op.GameName = game.Name
	}

	if !ok {
		h.logger.Debug().Str("id", op.ID).Str("reason", reason).Msg("Operation no longer valid")
	}
	return ok
}

// ValidateAll refreshes every operation and returns how many are valid.
func (h *History) ValidateAll() int {
	valid := 0
	for i := range h.ops {
		if h.Validate(i) {
			valid++
		}
	}
	return valid
}

// Undo rebinds the game of the operation at the cursor back to its previous
// target and moves the cursor back. applied is false, with a nil error, when
// there is nothing to undo or the operation no longer validates; the
// returned operation then carries the reason. A failed rebind returns the
// error and leaves the cursor where it was.
func (h *History) Undo() (op types.LinkOperation, applied bool, err error) {
	if !h.CanUndo() {
		return types.LinkOperation{}, false, nil
	}
	return h.replay(h.position, true)
}

// Redo is the mirror of Undo for the operation after the cursor.
func (h *History) Redo() (op types.LinkOperation, applied bool, err error) {
	if !h.CanRedo() {
		return types.LinkOperation{}, false, nil
	}
	return h.replay(h.position+1, false)
}

func (h *History) replay(i int, undo bool) (types.LinkOperation, bool, error) {
	valid := h.Validate(i)
	op := h.ops[i]
	if !valid {
		if err := h.persist(); err != nil {
			h.logger.Warn().Err(err).Msg("Could not persist history validation")
		}
		return op, false, nil
	}

	game, _ := h.registry.Game(op.GameID)
	if game.SavePath == "" {
		return op, false, errors.Newf(errors.ErrGameDirectory,
			"game %s has no established save link", game.Name).WithDetail("game", game.Path)
	}

	target, action := op.NewTarget, "redo"
	if undo {
		target, action = op.PreviousTarget, "undo"
	}

	if err := h.rebinder.Rebind(game.SavePath, target); err != nil {
		h.logger.Error().Err(err).Str("id", op.ID).Str("action", action).Msg("Replay failed")
		return op, false, err
	}

	if undo {
		h.position--
	} else {
		h.position++
	}
	h.logger.Info().Str("id", op.ID).Str("action", action).Str("target", target).Msg("Replayed link operation")
	return op, true, h.persist()
}

// CleanupInvalid re-validates every operation, drops the invalid ones and
// returns how many were removed. The cursor is clamped to the new length.
func (h *History) CleanupInvalid() (int, error) {
	kept := h.ops[:0:0]
	for i := range h.ops {
		if h.Validate(i) {
			kept = append(kept, h.ops[i])
		}
	}

	removed := len(h.ops) - len(kept)
	h.ops = kept
	h.position = max(min(h.position, len(kept)-1), -1)

	if removed > 0 {
		h.logger.Info().Int("removed", removed).Msg("Removed invalid operations from history")
	}
	return removed, h.persist()
}

// Clear empties the log.
func (h *History) Clear() error {
	h.ops = nil
	h.position = -1
	h.logger.Info().Msg("History cleared")
	return h.persist()
}

// Summary counts operations by validity without re-validating.
func (h *History) Summary() Summary {
	s := Summary{
		Total:    len(h.ops),
		Position: h.position,
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
	}
	for _, op := range h.ops {
		if op.IsValid {
			s.Valid++
		} else {
			s.Invalid++
		}
	}
	return s
}

func (h *History) persist() error {
	return h.store.Save(Snapshot{Position: h.position, Operations: h.ops})
}

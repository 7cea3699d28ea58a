package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/history"
	"github.com/arthur-debert/savelink/pkg/testutil"
	"github.com/arthur-debert/savelink/pkg/types"
)

type fakeRegistry map[string]types.GameEntry

func (r fakeRegistry) Games() []types.GameEntry {
	var out []types.GameEntry
	for _, g := range r {
		out = append(out, g)
	}
	return out
}

func (r fakeRegistry) Game(path string) (types.GameEntry, bool) {
	g, ok := r[path]
	return g, ok
}

// fakeRebinder tracks where each link points.
type fakeRebinder struct {
	targets map[string]string
	err     error
}

func (f *fakeRebinder) Rebind(link, target string) error {
	if f.err != nil {
		return f.err
	}
	f.targets[link] = target
	return nil
}

type fixture struct {
	game     types.GameEntry
	registry fakeRegistry
	rebinder *fakeRebinder
	backup   string
	a, b     string
	root     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	game := types.GameEntry{
		Name:       "Sacred",
		Path:       testutil.CreateDir(t, root, "Sacred"),
		SavePath:   filepath.Join(root, "Sacred", "save"),
		BackupPath: testutil.CreateDir(t, root, "Sacred/save_backup"),
		Valid:      true,
	}
	return &fixture{
		game:     game,
		registry: fakeRegistry{game.Path: game},
		rebinder: &fakeRebinder{targets: map[string]string{game.SavePath: game.BackupPath}},
		backup:   game.BackupPath,
		a:        testutil.CreateDir(t, root, "a"),
		b:        testutil.CreateDir(t, root, "b"),
		root:     root,
	}
}

func (f *fixture) history(t *testing.T, store history.Store) *history.History {
	t.Helper()

	h, err := history.New(history.Options{
		Registry: f.registry,
		FS:       filesystem.NewOS(),
		Rebinder: f.rebinder,
		Store:    store,
	})
	require.NoError(t, err)
	return h
}

// rebind performs and records a rebind the way callers do.
func (f *fixture) rebind(t *testing.T, h *history.History, target string) types.LinkOperation {
	t.Helper()

	previous := f.rebinder.targets[f.game.SavePath]
	require.NoError(t, f.rebinder.Rebind(f.game.SavePath, target))
	op := history.NewOperation(types.OperationOverride, f.game, previous, target)
	require.NoError(t, h.Record(op))
	return op
}

func (f *fixture) current() string {
	return f.rebinder.targets[f.game.SavePath]
}

func TestEmptyHistory(t *testing.T) {
	h := newFixture(t).history(t, nil)

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, -1, h.Position())

	op, applied, err := h.Undo()
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, op.ID)

	_, applied, err = h.Redo()
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestRecordCapsHistory(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	var ids []string
	for i := 0; i < 60; i++ {
		op := history.NewOperation(types.OperationOverride, f.game, f.a, f.b)
		op.GameName = fmt.Sprintf("op-%d", i)
		require.NoError(t, h.Record(op))
		ids = append(ids, h.Operations()[h.Position()].ID)
	}

	assert.Equal(t, 50, h.Len())
	assert.Equal(t, 49, h.Position())
	assert.Equal(t, ids[10], h.Operations()[0].ID)
	assert.Equal(t, ids[59], h.Operations()[49].ID)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestRecordConfigurableCap(t *testing.T) {
	f := newFixture(t)
	h, err := history.New(history.Options{Registry: f.registry, Rebinder: f.rebinder, MaxEntries: 3})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Record(history.NewOperation(types.OperationOverride, f.game, f.a, f.b)))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Position())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	f.rebind(t, h, f.a)
	f.rebind(t, h, f.b)
	require.Equal(t, f.b, f.current())

	op, applied, err := h.Undo()
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, f.b, op.NewTarget)
	assert.Equal(t, f.a, f.current())
	assert.Equal(t, 0, h.Position())
	assert.True(t, h.CanRedo())

	_, applied, err = h.Redo()
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, f.b, f.current())
	assert.Equal(t, 1, h.Position())

	// back to the backup
	_, _, err = h.Undo()
	require.NoError(t, err)
	_, _, err = h.Undo()
	require.NoError(t, err)
	assert.Equal(t, f.backup, f.current())
	assert.Equal(t, -1, h.Position())
	assert.False(t, h.CanUndo())
}

func TestRecordDiscardsRedoTail(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	f.rebind(t, h, f.a)
	f.rebind(t, h, f.b)
	_, _, err := h.Undo()
	require.NoError(t, err)

	c := testutil.CreateDir(t, f.root, "c")
	f.rebind(t, h, c)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Position())
	assert.False(t, h.CanRedo())
	assert.Equal(t, c, h.Operations()[1].NewTarget)
}

func TestUndoAfterTargetDeleted(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	override := testutil.CreateDir(t, f.root, "override")
	f.rebind(t, h, override)
	require.NoError(t, os.RemoveAll(override))

	op, applied, err := h.Undo()
	require.NoError(t, err)
	assert.False(t, applied)
	assert.False(t, op.IsValid)
	assert.Equal(t, history.ReasonNewMissing, op.InvalidReason)

	assert.Equal(t, 0, h.Position())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, override, f.current())
	assert.Equal(t, history.ReasonNewMissing, h.Operations()[0].InvalidReason)
}

func TestCheckReasons(t *testing.T) {
	f := newFixture(t)
	fsys := filesystem.NewOS()
	gone := filepath.Join(f.root, "gone")

	tests := []struct {
		name   string
		op     types.LinkOperation
		valid  bool
		reason string
	}{
		{"valid", history.NewOperation(types.OperationOverride, f.game, f.a, f.b), true, ""},
		{"game removed", history.NewOperation(types.OperationOverride, types.GameEntry{Path: "/nowhere"}, f.a, f.b), false, history.ReasonGameMissing},
		{"both gone", history.NewOperation(types.OperationOverride, f.game, gone, gone), false, history.ReasonBothMissing},
		{"previous gone", history.NewOperation(types.OperationOverride, f.game, gone, f.b), false, history.ReasonPreviousMissing},
		{"new gone", history.NewOperation(types.OperationReset, f.game, f.a, gone), false, history.ReasonNewMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := history.Check(tt.op, f.registry, fsys)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidateRecoversAndRefreshesName(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)
	f.rebind(t, h, f.a)

	require.NoError(t, os.RemoveAll(f.a))
	assert.False(t, h.Validate(0))

	testutil.CreateDir(t, f.root, "a")
	renamed := f.game
	renamed.Name = "Sacred Gold"
	f.registry[f.game.Path] = renamed

	assert.True(t, h.Validate(0))
	op := h.Operations()[0]
	assert.True(t, op.IsValid)
	assert.Empty(t, op.InvalidReason)
	assert.Equal(t, "Sacred Gold", op.GameName)

	assert.False(t, h.Validate(5))
}

func TestUndoRebindFailureKeepsPosition(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)
	f.rebind(t, h, f.a)

	f.rebinder.err = errors.New(errors.ErrLinkCreation, "all mechanisms failed")
	_, applied, err := h.Undo()
	require.Error(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, h.Position())

	f.rebinder.err = nil
	_, applied, err = h.Undo()
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestUndoWithoutSaveLink(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)
	f.rebind(t, h, f.a)

	unestablished := f.game.Invalidate()
	f.registry[f.game.Path] = unestablished

	_, applied, err := h.Undo()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGameDirectory))
	assert.False(t, applied)
}

func TestCleanupInvalid(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	c := testutil.CreateDir(t, f.root, "c")
	f.rebind(t, h, f.a) // backup -> a
	f.rebind(t, h, f.b) // a -> b
	f.rebind(t, h, c)   // b -> c
	_, _, err := h.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, h.Position())

	require.NoError(t, os.RemoveAll(f.a))

	removed, err := h.CleanupInvalid()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Position())
	assert.Equal(t, c, h.Operations()[0].NewTarget)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	removed, err = h.CleanupInvalid()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 0, h.Position())
}

func TestCleanupInvalidKeepsCursorInRange(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)

	c := testutil.CreateDir(t, f.root, "c")
	f.rebind(t, h, f.a) // backup -> a
	f.rebind(t, h, f.b) // a -> b
	f.rebind(t, h, c)   // b -> c
	_, _, err := h.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, h.Position())

	require.NoError(t, os.RemoveAll(c))

	removed, err := h.CleanupInvalid()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Position())
	assert.False(t, h.CanRedo())
}

func TestSummaryAndClear(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, nil)
	f.rebind(t, h, f.a)
	f.rebind(t, h, f.b)
	require.NoError(t, os.RemoveAll(f.a))
	h.ValidateAll()

	s := h.Summary()
	assert.Equal(t, history.Summary{Total: 2, Position: 1, Valid: 0, Invalid: 2, CanUndo: true}, s)

	require.NoError(t, h.Clear())
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Position())
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "state", "history.toml")
	store := history.NewFileStore(filesystem.NewOS(), path)

	h := f.history(t, store)
	first := f.rebind(t, h, f.a)
	f.rebind(t, h, f.b)
	_, _, err := h.Undo()
	require.NoError(t, err)

	reloaded := f.history(t, store)
	assert.Equal(t, 2, reloaded.Len())
	assert.Equal(t, 0, reloaded.Position())

	op := reloaded.Operations()[0]
	assert.Equal(t, first.ID, op.ID)
	assert.Equal(t, first.GameID, op.GameID)
	assert.Equal(t, types.OperationOverride, op.Kind)
	assert.True(t, first.Timestamp.Equal(op.Timestamp))

	testutil.AssertNoFile(t, path+".tmp")
}

func TestFileStoreErrors(t *testing.T) {
	f := newFixture(t)
	path := testutil.CreateFile(t, f.root, "history.toml", "position = [nonsense")

	_, err := history.New(history.Options{
		Registry: f.registry,
		Store:    history.NewFileStore(filesystem.NewOS(), path),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHistoryStore))

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.Fail(testutil.OpRename, filepath.Join(f.root, "other.toml"), fmt.Errorf("read-only"))
	h, err := history.New(history.Options{
		Registry: f.registry,
		Rebinder: f.rebinder,
		Store:    history.NewFileStore(fsys, filepath.Join(f.root, "other.toml")),
	})
	require.NoError(t, err)

	err = h.Record(history.NewOperation(types.OperationOverride, f.game, f.a, f.b))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHistoryStore))
	testutil.AssertNoFile(t, filepath.Join(f.root, "other.toml.tmp"))
}

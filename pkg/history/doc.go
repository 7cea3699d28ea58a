// Package history keeps the bounded undo/redo log of save-link rebinds.
//
// The log is a sequence of operations plus a cursor. Position -1 means no
// operation of the current sequence is applied. Recording a new operation
// discards everything after the cursor. The log is capped; the oldest
// entries are dropped first.
//
// The filesystem and the registry change behind the log's back, so every
// undo and redo re-validates its operation first. An operation that no
// longer validates stays in the log, with its reason attached, until
// CleanupInvalid is called.
package history

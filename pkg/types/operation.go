package types

import "time"

// OperationKind distinguishes user-chosen targets from returns to the backup.
type OperationKind string

const (
	// OperationOverride rebinds the save link to a user-chosen directory
	OperationOverride OperationKind = "override"

	// OperationReset rebinds the save link back to the backup directory
	OperationReset OperationKind = "reset"
)

// LinkOperation records one successful rebind so it can be undone or redone.
// Only IsValid and InvalidReason change after recording; they are refreshed
// on every validation pass.
type LinkOperation struct {
	ID             string        `toml:"id" json:"id" yaml:"id"`
	Timestamp      time.Time     `toml:"timestamp" json:"timestamp" yaml:"timestamp"`
	Kind           OperationKind `toml:"kind" json:"kind" yaml:"kind"`
	GameID         string        `toml:"game_id" json:"game_id" yaml:"game_id"`
	GameName       string        `toml:"game_name" json:"game_name" yaml:"game_name"`
	PreviousTarget string        `toml:"previous_target" json:"previous_target" yaml:"previous_target"`
	NewTarget      string        `toml:"new_target" json:"new_target" yaml:"new_target"`
	IsValid        bool          `toml:"is_valid" json:"is_valid" yaml:"is_valid"`
	InvalidReason  string        `toml:"invalid_reason,omitempty" json:"invalid_reason,omitempty" yaml:"invalid_reason,omitempty"`
}

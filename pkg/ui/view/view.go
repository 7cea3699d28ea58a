// Package view defines the results commands hand to a renderer. Every
// renderer understands the same set; JSON and YAML encode them as they are.
package view

import (
	"github.com/arthur-debert/savelink/pkg/history"
	"github.com/arthur-debert/savelink/pkg/manager"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Game is one row of a game listing.
type Game struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Display string `json:"display" yaml:"display"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// GameList is the output of list and validate.
type GameList struct {
	Games []Game `json:"games" yaml:"games"`
}

// Inspection is the output of inspect and sync.
type Inspection struct {
	manager.Inspection `yaml:",inline"`
}

// Change is the output of override, reset, undo and redo.
type Change struct {
	Action string `json:"action" yaml:"action"`

	manager.Change `yaml:",inline"`
}

// History is the output of history.
type History struct {
	Operations []types.LinkOperation `json:"operations" yaml:"operations"`
	Summary    history.Summary       `json:"summary" yaml:"summary"`
}

// SaveDirs is the output of the saves commands.
type SaveDirs struct {
	Action string   `json:"action" yaml:"action"`
	Dirs   []string `json:"dirs" yaml:"dirs"`
	Count  int      `json:"count" yaml:"count"`
}

// Version is the output of version.
type Version struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

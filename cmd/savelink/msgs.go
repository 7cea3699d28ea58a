package savelink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Switch a game's save directory between data sets"
	MsgAddShort        = "Register a game installation"
	MsgRemoveShort     = "Unregister a game (its files are left alone)"
	MsgListShort       = "List registered games and where their saves point"
	MsgValidateShort   = "Re-establish every game and report problems"
	MsgInspectShort    = "Show how a game's save directory is linked"
	MsgOverrideShort   = "Point a game's saves at another directory"
	MsgResetShort      = "Point a game's saves back at its backup directory"
	MsgUndoShort       = "Revert the last override or reset"
	MsgRedoShort       = "Re-apply the last undone operation"
	MsgSyncShort       = "Refresh a save directory that is a copy"
	MsgHistoryShort    = "Show the override history"
	MsgHistoryClean    = "Drop operations that are no longer valid"
	MsgHistoryClear    = "Remove every recorded operation"
	MsgSavesShort      = "Manage the library of alternate save directories"
	MsgSavesAddShort   = "Add a directory to the library"
	MsgSavesRmShort    = "Remove directories from the library"
	MsgSavesListShort  = "List the library, optionally filtered"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCleaned        = "Removed %d invalid operations"
	MsgCleared        = "History cleared"
	MsgClearAborted   = "History left unchanged"
	MsgClearQuestion  = "Remove all %d recorded operations?"
	MsgGameAdded      = "Added %s (save directory %s)"
	MsgGameRemoved    = "Removed %s"
	MsgSynced         = "Refreshed %s from %s"
	MsgNoCommandGiven = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagSettings  = "Settings file (default $XDG_CONFIG_HOME/savelink/settings.toml)"
	MsgFlagName      = "Display name (defaults to the directory name)"
	MsgFlagRecursive = "Add every innermost directory below the given one"
	MsgFlagYes       = "Do not ask for confirmation"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/override-long.txt
	msgOverrideLongRaw string
	MsgOverrideLong    = strings.TrimSpace(msgOverrideLongRaw)

	//go:embed msgs/override-example.txt
	msgOverrideExampleRaw string
	MsgOverrideExample    = strings.TrimRight(msgOverrideExampleRaw, "\n")

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/saves-long.txt
	msgSavesLongRaw string
	MsgSavesLong    = strings.TrimSpace(msgSavesLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

package view

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/savelink/pkg/engine"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Styler decorates s with the named style. Plain output passes Plain.
type Styler func(style, s string) string

// Plain is the identity Styler.
func Plain(_, s string) string { return s }

// TimeLayout formats operation timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// DisplayStyle picks the style name for a display target.
func DisplayStyle(display string) string {
	switch display {
	case engine.DisplayDefault:
		return "Default"
	case engine.DisplayInvalid:
		return "Invalid"
	}
	return "Override"
}

// GameRows builds the table for a game listing, header first.
func GameRows(list GameList, style Styler) [][]string {
	rows := [][]string{{"Name", "Save target", "Path"}}
	for _, g := range list.Games {
		display := style(DisplayStyle(g.Display), g.Display)
		if g.Error != "" {
			display += " " + style("Muted", "("+g.Error+")")
		}
		rows = append(rows, []string{style("GameName", g.Name), display, style("Path", g.Path)})
	}
	return rows
}

// HistoryRows builds the table for the operation log, header first. The
// operation at the cursor is marked with an arrow.
func HistoryRows(h History, style Styler) [][]string {
	rows := [][]string{{"", "#", "Time", "Game", "Kind", "From", "To", "Status"}}
	for i, op := range h.Operations {
		cursor := ""
		if i == h.Summary.Position {
			cursor = style("Header", "→")
		}
		status := style("Success", "valid")
		if !op.IsValid {
			status = style("Invalid", op.InvalidReason)
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(i + 1),
			op.Timestamp.Local().Format(TimeLayout),
			style("GameName", op.GameName),
			string(op.Kind),
			style("Path", op.PreviousTarget),
			style("Path", op.NewTarget),
			status,
		})
	}
	return rows
}

// SummaryLine describes the state of the log in one line.
func SummaryLine(s History) string {
	return fmt.Sprintf("%d operations (%d valid, %d invalid), position %d, undo: %s, redo: %s",
		s.Summary.Total, s.Summary.Valid, s.Summary.Invalid, s.Summary.Position+1,
		yesNo(s.Summary.CanUndo), yesNo(s.Summary.CanRedo))
}

// InspectionRows builds a two-column key/value table.
func InspectionRows(in Inspection, style Styler) [][]string {
	rows := [][]string{
		{"Game", style("GameName", in.Game.Name)},
		{"Path", style("Path", in.Game.Path)},
		{"Save target", style(DisplayStyle(in.Display), in.Display)},
	}
	if in.Error != "" {
		return append(rows, []string{"Error", style("Error", in.Error)})
	}

	alive := style("Success", "yes")
	if !in.Link.IsTargetAlive {
		alive = style("Invalid", "no")
	}
	return append(rows,
		[]string{"Save path", style("Path", in.Game.SavePath)},
		[]string{"Backup path", style("Path", in.Game.BackupPath)},
		[]string{"Mechanism", mechanism(in.Link.Mechanism)},
		[]string{"Link target", style("Path", in.Link.Target)},
		[]string{"Target alive", alive},
	)
}

// ChangeLine describes a rebind or a replay in one line.
func ChangeLine(c Change, style Styler) string {
	op := c.Operation
	if !c.Applied {
		switch {
		case op.ID == "":
			return style("Muted", "Nothing to "+c.Action)
		case !op.IsValid:
			return fmt.Sprintf("%s %s: %s", style("Warning", "Skipped invalid operation for"),
				style("GameName", op.GameName), op.InvalidReason)
		default:
			return fmt.Sprintf("%s already points at %s", style("GameName", op.GameName), style("Path", op.NewTarget))
		}
	}

	from, to := op.PreviousTarget, op.NewTarget
	if c.Action == "undo" {
		from, to = to, from
	}
	return fmt.Sprintf("%s %s: %s → %s", style("Success", c.Action), style("GameName", op.GameName),
		style("Path", from), style("Path", to))
}

func mechanism(m types.Mechanism) string {
	if m == types.MechanismNone {
		return "none"
	}
	return string(m)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/savelink/pkg/ui/view"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case view.GameList:
		if len(v.Games) == 0 {
			return r.RenderMessage("No games registered")
		}
		return view.WriteTable(r.output, view.GameRows(v, view.Plain), true)
	case view.History:
		if len(v.Operations) == 0 {
			return r.RenderMessage("History is empty")
		}
		if err := view.WriteTable(r.output, view.HistoryRows(v, view.Plain), true); err != nil {
			return err
		}
		return r.RenderMessage(view.SummaryLine(v))
	case view.Inspection:
		return r.keyValues(view.InspectionRows(v, view.Plain))
	case view.Change:
		return r.RenderMessage(view.ChangeLine(v, view.Plain))
	case view.SaveDirs:
		return r.saveDirs(v)
	case view.Version:
		return r.RenderMessage(fmt.Sprintf("savelink %s (%s, %s)", v.Version, v.Commit, v.Date))
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) keyValues(rows [][]string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(r.output, "%-13s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) saveDirs(v view.SaveDirs) error {
	switch v.Action {
	case "remove":
		return r.RenderMessage(fmt.Sprintf("Removed %d save directories", v.Count))
	case "add":
		if err := r.RenderMessage(fmt.Sprintf("Added %d save directories", v.Count)); err != nil {
			return err
		}
	}
	for _, d := range v.Dirs {
		if err := r.RenderMessage(d); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

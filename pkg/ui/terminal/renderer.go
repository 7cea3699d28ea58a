// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/ui/styles"
	"github.com/arthur-debert/savelink/pkg/ui/view"
)

// Renderer draws styled tables and messages.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func style(name, s string) string {
	if s == "" {
		return s
	}
	return styles.Render(name, s)
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case view.GameList:
		if len(v.Games) == 0 {
			return r.muted("No games registered. Add one with: savelink add <dir>")
		}
		return view.WriteTable(r.output, view.GameRows(v, style), false)
	case view.History:
		if len(v.Operations) == 0 {
			return r.muted("History is empty")
		}
		if err := view.WriteTable(r.output, view.HistoryRows(v, style), false); err != nil {
			return err
		}
		return r.line(styles.Render("Muted", view.SummaryLine(v)))
	case view.Inspection:
		return r.inspection(v)
	case view.Change:
		return r.line(view.ChangeLine(v, style))
	case view.SaveDirs:
		return r.saveDirs(v)
	case view.Version:
		return r.line(fmt.Sprintf("%s %s %s", styles.Render("Header", "savelink"), v.Version,
			styles.Render("Muted", "("+v.Commit+", "+v.Date+")")))
	default:
		return r.line(fmt.Sprintf("%+v", result))
	}
}

func (r *Renderer) inspection(v view.Inspection) error {
	rows := view.InspectionRows(v, style)
	keys := make([]string, len(rows))
	values := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = styles.Render("Muted", row[0])
		values[i] = row[1]
	}

	block := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(2).Render(lipgloss.JoinVertical(lipgloss.Left, keys...)),
		lipgloss.JoinVertical(lipgloss.Left, values...),
	)
	return r.line(block)
}

func (r *Renderer) saveDirs(v view.SaveDirs) error {
	switch v.Action {
	case "remove":
		return r.line(styles.Render("Success", fmt.Sprintf("Removed %d save directories", v.Count)))
	case "add":
		if err := r.line(styles.Render("Success", fmt.Sprintf("Added %d save directories", v.Count))); err != nil {
			return err
		}
	default:
		if len(v.Dirs) == 0 {
			return r.muted("No save directories in the library")
		}
	}
	for _, d := range v.Dirs {
		if err := r.line("  " + style("Path", d)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error with its code
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	return r.line(fmt.Sprintf("%s %s", styles.Render("Code", string(code)), styles.Render("Error", err.Error())))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.line(msg)
}

func (r *Renderer) muted(msg string) error {
	return r.line(styles.Render("Muted", msg))
}

func (r *Renderer) line(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

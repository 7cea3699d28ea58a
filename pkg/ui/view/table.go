package view

import (
	"io"

	"github.com/pterm/pterm"
)

// WriteTable writes rows (header first) as an aligned table. With plain,
// no escape sequences are emitted.
func WriteTable(w io.Writer, rows [][]string, plain bool) error {
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows))
	if plain {
		none := pterm.NewStyle()
		table = table.
			WithStyle(none).
			WithHeaderStyle(none).
			WithSeparatorStyle(none).
			WithHeaderRowSeparatorStyle(none)
	}

	out, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

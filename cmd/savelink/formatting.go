package savelink

import (
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/savelink/pkg/ui"
	"github.com/arthur-debert/savelink/pkg/ui/styles"
)

// helpStyler styles usage headings. Plain output keeps help readable when
// piped or when NO_COLOR is set.
type helpStyler struct {
	styled bool
}

func newHelpStyler(out *os.File) helpStyler {
	return helpStyler{styled: ui.DetectFormat(out) == ui.FormatTerminal}
}

func (h helpStyler) heading(s string) string {
	s = strings.ToUpper(s)
	if !h.styled {
		return s
	}
	return styles.Render("Heading", s)
}

func (h helpStyler) title(s string) string {
	if !h.styled {
		return s
	}
	return styles.Render("GameName", s)
}

func (h helpStyler) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": h.heading,
		"title":   h.title,
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(newHelpStyler(os.Stdout).funcs())
}

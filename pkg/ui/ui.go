// Package ui renders command results as styled terminal tables, plain
// text, JSON or YAML. Results are the types in package view.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/ui/json"
	"github.com/arthur-debert/savelink/pkg/ui/terminal"
	"github.com/arthur-debert/savelink/pkg/ui/text"
	"github.com/arthur-debert/savelink/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders one of the view types
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrValidation, "unknown format: %v", format)
	}
}

// IsStructured reports whether format is meant for machines.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

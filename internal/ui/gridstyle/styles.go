// Package gridstyle provides Lipgloss-based styling for rendered grids.
package gridstyle

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gridmark/pkg/grid"
)

// Styles contains all styled renderers for gridmark terminal output.
type Styles struct {
	// Grid components.
	Border     lipgloss.Style
	HeaderCell lipgloss.Style
	FooterCell lipgloss.Style
	BodyCell   lipgloss.Style
	ErrorBox   lipgloss.Style

	// Surrounding output.
	Title   lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HeaderCell: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		FooterCell: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("7")),
		BodyCell:   lipgloss.NewStyle(),
		ErrorBox:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Title:   lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Border:     plain,
		HeaderCell: plain,
		FooterCell: plain,
		BodyCell:   plain,
		ErrorBox:   plain,
		Title:      plain,
		Dim:        plain,
		Success:    plain,
		Failure:    plain,
	}
}

// RenderStyles projects the grid-drawing subset of the style set.
func (s *Styles) RenderStyles() grid.RenderStyles {
	return grid.RenderStyles{
		Border: s.Border,
		Header: s.HeaderCell,
		Footer: s.FooterCell,
		Cell:   s.BodyCell,
		Error:  s.ErrorBox,
	}
}

// ShouldColor determines whether to colorize output for the given mode
// ("auto", "always", "never") and writer.
func ShouldColor(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

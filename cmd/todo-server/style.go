package main

import "github.com/charmbracelet/lipgloss"

// Nord palette, https://www.nordtheme.com/
var (
	colorSubtle  = lipgloss.Color("#4C566A")
	colorPrimary = lipgloss.Color("#88C0D0")
	colorSuccess = lipgloss.Color("#A3BE8C")
	colorWarning = lipgloss.Color("#EBCB8B")
	colorHigh    = lipgloss.Color("#D08770")
)

// listStyles are the styles of the todos listing.
type listStyles struct {
	Header   lipgloss.Style
	Todo     lipgloss.Style
	TodoDone lipgloss.Style
	Check    lipgloss.Style
	Label    lipgloss.Style
	Estimate lipgloss.Style
	Priority map[string]lipgloss.Style
}

// newListStyles builds the styles for output going through r.
func newListStyles(r *lipgloss.Renderer) listStyles {
	return listStyles{
		Header: r.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Todo: r.NewStyle(),

		TodoDone: r.NewStyle().
			Foreground(colorSubtle).
			Strikethrough(true),

		Check: r.NewStyle().
			Foreground(colorSuccess),

		Label: r.NewStyle().
			Foreground(colorSubtle),

		Estimate: r.NewStyle().
			Foreground(colorWarning),

		Priority: map[string]lipgloss.Style{
			"high":   r.NewStyle().Foreground(colorHigh).Bold(true),
			"medium": r.NewStyle().Foreground(colorWarning),
			"low":    r.NewStyle().Foreground(colorSuccess),
		},
	}
}

func (s listStyles) priority(p string) lipgloss.Style {
	if style, ok := s.Priority[p]; ok {
		return style
	}
	return s.Label
}

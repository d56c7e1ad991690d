package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/boardsync/internal/models"
)

var styles = newPalette(palette{
	brand:   "#E60023",
	created: "#04B575",
	skipped: "#FFA500",
	failed:  "#FF0000",
	muted:   "#626262",
})

type palette struct {
	brand, created, skipped, failed, muted string
}

// Styles holds the [lipgloss.Style] values used by every view.
type Styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	outcome map[models.OutcomeStatus]lipgloss.Style
}

func newPalette(p palette) *Styles {
	return &Styles{
		title: bold(p.brand).MarginBottom(1),
		ok:    bold(p.created),
		err:   bold(p.failed),
		warn:  fg(p.skipped),
		help:  fg(p.muted).Italic(true),
		outcome: map[models.OutcomeStatus]lipgloss.Style{
			models.OutcomeCreated:        fg(p.created),
			models.OutcomeSkippedNoImage: fg(p.skipped),
			models.OutcomeFailed:         fg(p.failed),
		},
	}
}

// Outcome renders s in the color of status.
func (s *Styles) Outcome(status models.OutcomeStatus, text string) string {
	if st, ok := s.outcome[status]; ok {
		return st.Render(text)
	}
	return text
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}

package browser

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/coin-signal/internal/report"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatReturnWithArrow formats a percentage with an arrow for its sign.
func FormatReturnWithArrow(pct float64) string {
	formatted := report.FormatPercent(pct)

	switch {
	case pct > 0:
		return formatted + " ▲"
	case pct < 0:
		return formatted + " ▼"
	default:
		return formatted
	}
}

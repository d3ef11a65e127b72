// Package render formats ledger results for the terminal using lipgloss.
package render

import "github.com/charmbracelet/lipgloss"

var (
	// SuccessColor marks categories within budget.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// ErrorColor marks exceeded budgets.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor marks categories without a budget.
	SubtleColor = lipgloss.Color("#666666")
)

var (
	HeadingStyle  = lipgloss.NewStyle().Bold(true)
	WithinStyle   = lipgloss.NewStyle().Foreground(SuccessColor)
	ExceededStyle = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
	SubtleStyle   = lipgloss.NewStyle().Foreground(SubtleColor)
)

package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("205")
	ColorDim     = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorDone    = lipgloss.Color("42")

	PopupBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	StatusDefaultStyle = lipgloss.NewStyle()
	StatusLoadingStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusDoneStyle    = lipgloss.NewStyle().Foreground(ColorDone)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	HintStyle          = lipgloss.NewStyle().Faint(true)
)

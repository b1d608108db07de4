package views

import (
	"github.com/Cyclone1070/p4bridge/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	sections := []string{}
	if popup := RenderConnectionPopup(s); popup != "" && !s.Loading {
		sections = append(sections, popup)
	}
	sections = append(sections, RenderStatus(s))
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if s.Width == 0 || s.Height == 0 {
		return body
	}
	return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, body)
}

package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

const currentMarker = " (current)"

// RenderConnectionPopup renders the connection selection popup
func RenderConnectionPopup(s models.State) string {
	conns := s.Connections()
	if len(conns) == 0 {
		return ""
	}

	title := "Select Connection:"
	if s.ShowAll {
		title = "Select Connection (all machines):"
	}

	current, hasCurrent := s.Snapshot.Selected()

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(title))
	lines = append(lines, "")

	for i, c := range conns {
		label := c.String()
		if hasCurrent && strings.EqualFold(label, current.String()) {
			label += currentMarker
		}
		if i == s.Index {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Render(fmt.Sprintf("▸ %s", label)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", label))
		}
	}

	lines = append(lines, "")
	lines = append(lines, HintStyle.Render("↑/↓: Navigate  Enter: Select  a: All Machines  r: Refresh  Esc: Cancel"))

	return PopupBoxStyle.Render(strings.Join(lines, "\n"))
}

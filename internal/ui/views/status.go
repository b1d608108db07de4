package views

import (
	"fmt"

	"github.com/Cyclone1070/p4bridge/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var left string
	switch {
	case s.Loading:
		left = StatusLoadingStyle.Render(fmt.Sprintf("%s Discovering connections...", s.Spinner.View()))
	case s.Err != nil:
		left = StatusErrorStyle.Render(fmt.Sprintf("✘ %v", s.Err))
	case len(s.Connections()) == 0:
		left = StatusDefaultStyle.Render("No connections found")
	default:
		left = StatusDoneStyle.Render(fmt.Sprintf("✔ %d connections", len(s.Connections())))
	}

	current := s.Snapshot.Current.String()
	if current == "" {
		return left
	}
	return fmt.Sprintf("%s  %s", left, StatusDefaultStyle.Foreground(ColorDim).Render(current))
}

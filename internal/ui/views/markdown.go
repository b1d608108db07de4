package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
)

// FormatConnectionsMarkdown renders connections as a markdown table with
// the selected one marked.
func FormatConnectionsMarkdown(conns []connection.Connection, selected connection.Connection, hasSelected bool) string {
	var sb strings.Builder
	sb.WriteString("# Connections\n\n")
	if len(conns) == 0 {
		sb.WriteString("_No connections found._\n")
		return sb.String()
	}

	sb.WriteString("| | Port | User | Client |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, c := range conns {
		mark := ""
		if hasSelected && strings.EqualFold(c.String(), selected.String()) {
			mark = "*"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", mark, escapeCell(c.Port), escapeCell(c.User), escapeCell(c.Client))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

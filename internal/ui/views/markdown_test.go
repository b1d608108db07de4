package views

import (
	"testing"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/stretchr/testify/assert"
)

func TestFormatConnectionsMarkdown(t *testing.T) {
	md := FormatConnectionsMarkdown([]connection.Connection{connA, connB}, connB, true)

	assert.Contains(t, md, "| Port | User | Client |")
	assert.Contains(t, md, "|  | p4:1666 | alice | a_ws |")
	assert.Contains(t, md, "| * | p4:1666 | alice | b_ws |")
}

func TestFormatConnectionsMarkdown_Empty(t *testing.T) {
	assert.Contains(t, FormatConnectionsMarkdown(nil, connection.Connection{}, false), "No connections found")
}

func TestFormatConnectionsMarkdown_EscapesPipes(t *testing.T) {
	md := FormatConnectionsMarkdown([]connection.Connection{{Port: "a|b", User: "u", Client: "c"}}, connection.Connection{}, false)
	assert.Contains(t, md, `a\|b`)
}

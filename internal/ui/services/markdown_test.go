package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	width int
}

func (m *mockRenderer) Render(content string, width int) (string, error) {
	m.width = width
	return content, nil
}

func TestRenderMarkdown_ClampsWidth(t *testing.T) {
	r := &mockRenderer{}

	_, err := RenderMarkdown("# hi", 5, r)
	require.NoError(t, err)
	assert.Equal(t, 80, r.width)

	_, err = RenderMarkdown("# hi", 120, r)
	require.NoError(t, err)
	assert.Equal(t, 120, r.width)
}

func TestGlamourRenderer(t *testing.T) {
	out, err := NewGlamourRendererWithStyle("notty").Render("# Connections\n\nalice on perforce", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Connections")
	assert.Contains(t, out, "alice on perforce")
}

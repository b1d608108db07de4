package record

import (
	"testing"

	"github.com/Cyclone1070/p4bridge/internal/p4/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stdout(texts ...string) []output.Line {
	lines := make([]output.Line, len(texts))
	for i, t := range texts {
		lines[i] = output.Line{Text: t, Channel: output.StdOut}
	}
	return lines
}

func TestParse_RecordBoundaries(t *testing.T) {
	for _, marker := range []string{DefaultMarker, ":::"} {
		t.Run(marker, func(t *testing.T) {
			lines := stdout(
				marker+" depotFile //foo/bar.cpp",
				marker+" headRev 4",
				"",
				marker+" depotFile //foo/baz.cpp",
			)

			records := Parser{Marker: marker}.Parse(lines)

			require.Len(t, records, 2)
			assert.Equal(t, "//foo/bar.cpp", records[0].String("depotFile", ""))
			assert.Equal(t, "4", records[0].String("headRev", ""))
			assert.Equal(t, "//foo/baz.cpp", records[1].String("depotFile", ""))
			assert.False(t, records[1].Has("headRev"))
		})
	}
}

func TestParse_SingleNode(t *testing.T) {
	for _, marker := range []string{DefaultMarker, ":::"} {
		t.Run(marker, func(t *testing.T) {
			lines := stdout(
				marker+" depotFile //foo/bar.cpp",
				marker+" headRev 4",
				"",
				marker+" depotFile //foo/baz.cpp",
			)

			records := Parser{Marker: marker, SingleNode: true}.Parse(lines)

			require.Len(t, records, 1)
			assert.Equal(t, "//foo/baz.cpp", records[0].String("depotFile", ""))
			assert.Equal(t, "4", records[0].String("headRev", ""))
		})
	}
}

func TestParse_IgnoresStderrAndEmptyOutput(t *testing.T) {
	lines := []output.Line{
		{Text: "... depotFile //a", Channel: output.StdErr},
		{Text: "//a - no such file(s).", Channel: output.StdErr},
	}
	assert.Empty(t, Parse(lines, false))
	assert.Empty(t, Parse(nil, true))
}

func TestParse_StderrDoesNotSplitRecords(t *testing.T) {
	lines := []output.Line{
		{Text: "... depotFile //a", Channel: output.StdOut},
		{Text: "warning", Channel: output.StdErr},
		{Text: "... headRev 2", Channel: output.StdOut},
	}
	records := Parse(lines, false)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Int("headRev", 0))
}

func TestParse_NestedMarkersAndFlags(t *testing.T) {
	lines := stdout(
		"... depotFile //depot/x.cpp",
		"... ... otherOpen0 bob@bob_ws",
		"... isMapped",
		"... desc fix the   spacing  ",
		"...\tclientFile\t/ws/x.cpp",
	)

	records := Parse(lines, false)

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "bob@bob_ws", r.String("otherOpen0", ""))
	assert.True(t, r.Has("isMapped"))
	assert.Equal(t, "", r.String("isMapped", ""))
	assert.Equal(t, "fix the   spacing  ", r.String("desc", ""))
	assert.Equal(t, "/ws/x.cpp", r.String("clientFile", ""))
}

func TestMatchField_RejectsMalformedLines(t *testing.T) {
	for _, text := range []string{
		"",
		"depotFile //a",
		"...depotFile //a",
		"... ",
		"... a value",
		"... .hidden value",
		"....",
		"//depot/a#4 - edit change 12 (text)",
	} {
		_, _, ok := matchField(text, DefaultMarker)
		assert.False(t, ok, "%q", text)
	}
}

func TestParse_EveryRecordHasFields(t *testing.T) {
	lines := stdout("", "noise", "... a1 x", "noise", "", "... b1 y")
	for _, r := range Parse(lines, false) {
		assert.Greater(t, r.Len(), 0)
	}
}

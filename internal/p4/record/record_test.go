package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_CaseInsensitiveLastWriteWins(t *testing.T) {
	r := New()
	r.Set("depotFile", "//a")
	r.Set("DEPOTFILE", "//b")
	r.Set("headRev", "3")

	v, ok := r.Get("depotfile")
	assert.True(t, ok)
	assert.Equal(t, "//b", v)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Field{{"depotFile", "//b"}, {"headRev", "3"}}, r.Fields())
	assert.Equal(t, map[string]string{"depotFile": "//b", "headRev": "3"}, r.Map())
}

func TestRecord_ZeroValueUsable(t *testing.T) {
	var r Record
	r.Set("a1", "x")
	assert.True(t, r.Has("A1"))

	var nilRecord *Record
	assert.False(t, nilRecord.Has("a1"))
	assert.Equal(t, 0, nilRecord.Len())
	assert.Equal(t, 7, nilRecord.Int("x", 7))
}

func TestRecord_TypedGetters(t *testing.T) {
	r := FromFields(
		Field{"headRev", "4"},
		Field{"fileSize", "9876543210"},
		Field{"padded", " 12 "},
		Field{"bogus", "twelve"},
		Field{"empty", ""},
		Field{"overflow", "99999999999999999999999"},
		Field{"action", "EDIT"},
	)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", r.Int("headRev", -1), 4},
		{"int padded", r.Int("padded", -1), 12},
		{"int missing", r.Int("haveRev", -1), -1},
		{"int malformed", r.Int("bogus", -1), -1},
		{"int empty", r.Int("empty", 5), 5},
		{"int64", r.Int64("fileSize", 0), int64(9876543210)},
		{"int64 overflow", r.Int64("overflow", 1), int64(1)},
		{"string", r.String("headRev", "x"), "4"},
		{"string empty uses default", r.String("empty", "x"), "x"},
		{"string missing uses default", r.String("nope", "x"), "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRecord_IntNeverPanicsOnMalformedInput(t *testing.T) {
	for _, s := range []string{"", " ", "-", "+", "1e3", "0x10", "１２", "12abc", "\x00", "9223372036854775808"} {
		r := FromFields(Field{"n", s})
		assert.NotPanics(t, func() {
			assert.Equal(t, 42, r.Int("n", 42), s)
		})
	}
}

type action string

func TestEnum(t *testing.T) {
	r := FromFields(Field{"action", "EDIT"}, Field{"other", "merge"})

	assert.Equal(t, action("edit"), Enum(r, "action", action(""), "add", "edit", "delete"))
	assert.Equal(t, action("none"), Enum(r, "other", action("none"), "add", "edit"))
	assert.Equal(t, action("none"), Enum(r, "missing", action("none"), "add"))
}

func TestSequence_StopsAtFirstGap(t *testing.T) {
	r := FromFields(
		Field{"View0", "//depot/a/... //ws/a/..."},
		Field{"View1", "//depot/b/... //ws/b/..."},
		Field{"View3", "//depot/d/... //ws/d/..."},
	)

	assert.Equal(t, []string{"//depot/a/... //ws/a/...", "//depot/b/... //ws/b/..."}, r.Sequence("View"))
	assert.Nil(t, r.Sequence("Options"))
}

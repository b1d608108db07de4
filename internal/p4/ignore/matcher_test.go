package ignore

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFileSystem is a local mock implementing FileSystem for testing
type mockFileSystem struct {
	files   map[string][]byte
	readErr map[string]error
	reads   map[string]int
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		files:   make(map[string][]byte),
		readErr: make(map[string]error),
		reads:   make(map[string]int),
	}
}

func (m *mockFileSystem) ReadFile(path string) ([]byte, error) {
	m.reads[path]++
	if err, ok := m.readErr[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX absolute paths")
	}
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{".p4ignore", ".gitignore"}, SplitNames(" .p4ignore ; .gitignore,"))
	assert.Empty(t, SplitNames(""))
}

func TestShouldIgnore(t *testing.T) {
	skipOnWindows(t)
	fs := newMockFileSystem()
	fs.files["/ws/.p4ignore"] = []byte("# build output\n*.obj\n/Intermediate\n\n")
	fs.files["/ws/game/.p4ignore"] = []byte("*.log\n!keep.obj\n")
	m := NewMatcher(".p4ignore", fs)

	tests := []struct {
		path string
		want bool
	}{
		{"/ws/main.cpp", false},
		{"/ws/main.obj", true},
		{"/ws/game/src/x.obj", true},
		{"/ws/Intermediate/a.txt", true},
		{"/ws/game/Intermediate/a.txt", false},
		{"/ws/game/run.log", true},
		{"/ws/run.log", false},
		{"/ws/game/keep.obj", false},
		{"relative/main.obj", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := m.ShouldIgnore(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 1, fs.reads["/ws/.p4ignore"], "ignore files are read once")
}

func TestShouldIgnore_AbsoluteIgnoreFile(t *testing.T) {
	skipOnWindows(t)
	fs := newMockFileSystem()
	fs.files["/ws/ignore.txt"] = []byte("*.tmp\n")
	m := NewMatcher("/ws/ignore.txt", fs)

	got, err := m.ShouldIgnore("/ws/sub/a.tmp")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = m.ShouldIgnore("/elsewhere/a.tmp")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestShouldIgnore_EmptySetting(t *testing.T) {
	m := NewMatcher("", newMockFileSystem())
	assert.True(t, m.Empty())
	got, err := m.ShouldIgnore("/ws/a.obj")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestShouldIgnore_ReadError(t *testing.T) {
	skipOnWindows(t)
	fs := newMockFileSystem()
	fs.files["/ws/.p4ignore"] = []byte("*.obj\n")
	fs.readErr["/ws/sub/.p4ignore"] = os.ErrPermission
	m := NewMatcher(".p4ignore", fs)

	got, err := m.ShouldIgnore("/ws/sub/a.obj")
	assert.True(t, got, "readable files still apply")
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "/ws/sub/.p4ignore", readErr.Path)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestFilter(t *testing.T) {
	skipOnWindows(t)
	fs := newMockFileSystem()
	fs.files["/ws/.p4ignore"] = []byte("*.obj\n")
	m := NewMatcher(".p4ignore", fs)

	kept, ignored, err := m.Filter([]string{"/ws/a.cpp", "/ws/a.obj", "//depot/b.obj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/a.cpp", "//depot/b.obj"}, kept)
	assert.Equal(t, []string{"/ws/a.obj"}, ignored)
}

func TestNewMatcher_PanicsWithoutFS(t *testing.T) {
	assert.Panics(t, func() { NewMatcher(".p4ignore", nil) })
}

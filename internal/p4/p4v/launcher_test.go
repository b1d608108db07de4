package p4v

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLauncher(t *testing.T) (*Launcher, *[]*exec.Cmd) {
	t.Helper()
	log, _ := test.NewNullLogger()
	l := NewLauncher(config.DefaultConfig(), log)
	var started []*exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	l.fs = &mockFS{home: "/home/alice"}
	return l, &started
}

func TestP4VCCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on extension-less executables")
	}

	t.Run("Standalone P4VC Beside CLI", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "p4vc"), []byte("#!/bin/sh\n"), 0o755))
		l, _ := newTestLauncher(t)
		l.lookPath = func(string) (string, error) { return filepath.Join(dir, "p4"), nil }

		program, args := l.P4VCCommand([]string{"timelapse", "//depot/a.txt"})
		assert.Equal(t, "p4vc", program)
		assert.Equal(t, []string{"timelapse", "//depot/a.txt"}, args)
	})

	t.Run("Falls Back To P4V", func(t *testing.T) {
		l, _ := newTestLauncher(t)
		l.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

		program, args := l.P4VCCommand([]string{"revisiongraph", "a.txt"})
		assert.Equal(t, "p4v", program)
		assert.Equal(t, []string{"-p4vc", "revisiongraph", "a.txt"}, args)
	})
}

func TestStartP4VC(t *testing.T) {
	l, started := newTestLauncher(t)
	l.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	require.NoError(t, l.StartP4VC("timelapse", "a.txt"))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"p4v", "-p4vc", "timelapse", "a.txt"}, (*started)[0].Args)
}

func TestStartCompare(t *testing.T) {
	l, started := newTestLauncher(t)

	require.NoError(t, l.StartCompare(CompareParams{LeftFilePath: "a", RightFilePath: "b", LeftDisplayPath: "A"}))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"p4merge", "-nl", "A", "a", "b"}, (*started)[0].Args)

	t.Run("Launch Failure", func(t *testing.T) {
		l.start = func(*exec.Cmd) error { return exec.ErrNotFound }
		err := l.StartCompare(CompareParams{LeftFilePath: "a", RightFilePath: "b"})
		var launchErr *LaunchError
		require.ErrorAs(t, err, &launchErr)
		assert.True(t, errors.Is(err, exec.ErrNotFound))
		assert.Equal(t, "p4merge", launchErr.Program)
	})
}

func TestLauncherSettingsPath(t *testing.T) {
	l, _ := newTestLauncher(t)
	assert.Equal(t, filepath.Join("/home/alice", SettingsDir, SettingsFile), l.SettingsPath())

	l.settings = "/etc/p4v.xml"
	assert.Equal(t, "/etc/p4v.xml", l.SettingsPath())
}

package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/output"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCLI writes a shell script standing in for the real CLI.
func fakeCLI(t *testing.T, body string) *Executor {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake CLI is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "p4")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	cfg := config.DefaultConfig()
	cfg.P4.Executable = path
	log, _ := test.NewNullLogger()
	return NewExecutor(cfg, log)
}

func TestBuildArgs(t *testing.T) {
	cfg := connection.Config{Host: "ws1", Port: "ssl:perforce:1666", Client: "dev_ws", User: "alice", Password: "s3cret"}

	t.Run("Full Order", func(t *testing.T) {
		got := BuildArgs(cfg, "fstat", []string{"//depot/a.txt"}, Options{Input: []string{"x"}, ZTag: true})
		assert.Equal(t, []string{
			"-H", "ws1", "-p", "ssl:perforce:1666", "-c", "dev_ws", "-u", "alice", "-P", "s3cret",
			"-x", "-", "-ztag", "fstat", "//depot/a.txt",
		}, got)
	})

	t.Run("Empty Config And No Input", func(t *testing.T) {
		got := BuildArgs(connection.Config{}, "info", nil, Options{})
		assert.Equal(t, []string{"info"}, got)
	})

	t.Run("Empty Input Does Not Redirect", func(t *testing.T) {
		got := BuildArgs(connection.Config{Port: "1666"}, "add", nil, Options{Input: []string{}})
		assert.Equal(t, []string{"-p", "1666", "add"}, got)
	})
}

func TestFormatCommandLine(t *testing.T) {
	assert.Equal(t, `p4 -c dev_ws where "C:\My Files\a.txt"`,
		FormatCommandLine("p4", []string{"-c", "dev_ws", "where", `C:\My Files\a.txt`}))
	assert.Equal(t, `p4 -u ""`, FormatCommandLine("p4", []string{"-u", ""}))
}

func TestMaskPassword(t *testing.T) {
	args := []string{"-u", "alice", "-P", "s3cret", "info"}
	assert.Equal(t, []string{"-u", "alice", "-P", "********", "info"}, maskPassword(args))
	assert.Equal(t, "s3cret", args[3], "input must not be modified")
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Captures Both Channels", func(t *testing.T) {
		e := fakeCLI(t, `echo "... clientName dev_ws"
echo "warning: stale" >&2
echo "... clientRoot /ws"`)

		res := e.Execute(ctx, connection.Config{}, "info", nil, Options{})

		assert.True(t, res.Success())
		assert.Equal(t, []string{"... clientName dev_ws", "... clientRoot /ws"}, res.StdOut())
		assert.Equal(t, []string{"warning: stale"}, res.StdErr())
		assert.Len(t, res.Output, 3)
	})

	t.Run("Passes Assembled Arguments", func(t *testing.T) {
		e := fakeCLI(t, `echo "$@"`)

		res := e.Execute(ctx, connection.Config{Port: "1666", User: "alice"}, "fstat", []string{"a.txt"}, Options{ZTag: true})

		require.True(t, res.Success())
		assert.Equal(t, []string{"-p 1666 -u alice -ztag fstat a.txt"}, res.StdOut())
	})

	t.Run("Non Zero Exit", func(t *testing.T) {
		e := fakeCLI(t, `echo "no such file" >&2
exit 3`)

		res := e.Execute(ctx, connection.Config{}, "fstat", nil, Options{})

		assert.False(t, res.Success())
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, []string{"no such file"}, res.StdErr())
	})

	t.Run("Missing Executable Yields Exit One", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.P4.Executable = filepath.Join(t.TempDir(), "does-not-exist")
		log, hook := test.NewNullLogger()
		e := NewExecutor(cfg, log)

		res := e.Execute(ctx, connection.Config{}, "info", nil, Options{})

		assert.Equal(t, FailedExitCode, res.ExitCode)
		assert.Empty(t, res.Output)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("Canceled Context Does Not Spawn", func(t *testing.T) {
		marker := filepath.Join(t.TempDir(), "ran")
		e := fakeCLI(t, "touch "+marker)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		res := e.Execute(canceled, connection.Config{}, "info", nil, Options{})

		assert.Equal(t, FailedExitCode, res.ExitCode)
		assert.NoFileExists(t, marker)
	})

	t.Run("Feeds Input Lines", func(t *testing.T) {
		e := fakeCLI(t, `echo "$@"
while IFS= read -r line; do echo "got $line"; done`)

		res := e.Execute(ctx, connection.Config{}, "add", nil, Options{Input: []string{"a b.txt", "c.txt"}})

		require.True(t, res.Success())
		assert.Equal(t, []string{"-x - add", "got a b.txt", "got c.txt"}, res.StdOut())
	})

	t.Run("Final Line Without Newline", func(t *testing.T) {
		e := fakeCLI(t, `printf "first\r\nsecond"`)

		res := e.Execute(ctx, connection.Config{}, "print", nil, Options{})

		assert.Equal(t, []string{"first", "second"}, res.StdOut())
	})

	t.Run("Runs In Config Directory", func(t *testing.T) {
		dir := t.TempDir()
		e := fakeCLI(t, `pwd -P`)

		res := e.Execute(ctx, connection.Config{ConfigDirectory: dir}, "set", nil, Options{})

		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{want}, res.StdOut())
	})

	t.Run("Missing Config Directory Is Ignored", func(t *testing.T) {
		e := fakeCLI(t, `echo ok`)

		res := e.Execute(ctx, connection.Config{ConfigDirectory: "/no/such/dir/anywhere"}, "set", nil, Options{})

		assert.True(t, res.Success())
		assert.Equal(t, []string{"ok"}, res.StdOut())
	})

	t.Run("Exports Ignore Setting", func(t *testing.T) {
		e := fakeCLI(t, `echo "$P4IGNORE"`)

		res := e.Execute(ctx, connection.Config{Ignore: ".p4ignore"}, "add", nil, Options{})

		assert.Equal(t, []string{".p4ignore"}, res.StdOut())
	})
}

func TestExecute_Echo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake CLI is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "p4")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho out\necho err >&2\n"), 0o755))
	cfg := config.DefaultConfig()
	cfg.P4.Executable = path
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.InfoLevel)
	e := NewExecutor(cfg, log)

	res := e.Execute(context.Background(), connection.Config{}, "info", nil, Options{Echo: true})
	require.True(t, res.Success())

	levels := map[string]logrus.Level{}
	for _, entry := range hook.AllEntries() {
		levels[entry.Message] = entry.Level
	}
	assert.Equal(t, logrus.InfoLevel, levels["out"])
	assert.Equal(t, logrus.ErrorLevel, levels["err"])
}

func TestExecute_ConcurrentInvocationsDoNotMix(t *testing.T) {
	e := fakeCLI(t, `i=0
while [ $i -lt 200 ]; do
  echo "$1 $i"
  echo "$1 err $i" >&2
  i=$((i+1))
done`)

	const workers = 8
	results := make([]*Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Execute(context.Background(), connection.Config{}, fmt.Sprintf("job%d", i), nil, Options{})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		prefix := fmt.Sprintf("job%d ", i)
		require.True(t, res.Success())
		assert.Len(t, res.Output, 400)
		next := 0
		for _, line := range res.Output {
			assert.True(t, strings.HasPrefix(line.Text, prefix), "line %q leaked into %s", line.Text, prefix)
			if line.Channel == output.StdOut {
				assert.Equal(t, fmt.Sprintf("%s%d", prefix, next), line.Text)
				next++
			}
		}
		assert.Equal(t, 200, next)
	}
}

func TestNewExecutor_PanicsOnMissingDeps(t *testing.T) {
	log, _ := test.NewNullLogger()
	assert.Panics(t, func() { NewExecutor(nil, log) })
	assert.Panics(t, func() { NewExecutor(config.DefaultConfig(), nil) })
}

func TestLineWriter(t *testing.T) {
	sink := &capture{}
	w := newLineWriter(sink, output.StdOut)

	_, _ = w.Write([]byte("first\r\nsec"))
	_, _ = w.Write([]byte("ond\n"))
	_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
	w.flush()

	assert.Equal(t, []string{"first", "second", "café"}, output.StdOutLines(sink.snapshot()))
}

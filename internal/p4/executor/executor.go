// Package executor runs the version-control CLI as a child process and
// captures its output as ordered, channel-tagged lines.
package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/output"
	"github.com/Cyclone1070/p4bridge/internal/p4/pathutil"
	"github.com/sirupsen/logrus"
)

// FailedExitCode is reported when the process could not be started or
// its outcome could not be determined.
const FailedExitCode = 1

// Options tune a single invocation.
type Options struct {
	// Input lines are fed to the CLI's stdin and "-x -" is added so the
	// CLI reads its file arguments from there. Empty means no redirection.
	Input []string
	// ZTag requests tagged output ("-ztag").
	ZTag bool
	// Echo forwards every captured line to the logger as it arrives.
	Echo bool
}

// Result represents the outcome of one invocation.
type Result struct {
	ExitCode int
	Output   []output.Line
}

// Success reports whether the CLI exited with code 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// StdOut returns the text of stdout lines in arrival order.
func (r *Result) StdOut() []string {
	if r == nil {
		return nil
	}
	return output.StdOutLines(r.Output)
}

// StdErr returns the text of stderr lines in arrival order.
func (r *Result) StdErr() []string {
	if r == nil {
		return nil
	}
	return output.StdErrLines(r.Output)
}

// Executor invokes the CLI. It is safe for concurrent use; every call owns
// its own process and output buffer.
type Executor struct {
	executable string
	echo       bool
	fs         pathutil.FileSystem
	log        logrus.FieldLogger
}

// NewExecutor creates an Executor for the configured CLI executable.
func NewExecutor(cfg *config.Config, log logrus.FieldLogger) *Executor {
	if cfg == nil {
		panic("cfg is required")
	}
	if log == nil {
		panic("log is required")
	}
	return &Executor{
		executable: cfg.P4.Executable,
		echo:       cfg.P4.Echo,
		fs:         pathutil.OSFileSystem{},
		log:        log,
	}
}

// WithFileSystem replaces the filesystem used to probe the working directory.
func (e *Executor) WithFileSystem(fs pathutil.FileSystem) *Executor {
	if fs == nil {
		panic("fs is required")
	}
	cp := *e
	cp.fs = fs
	return &cp
}

// Executable returns the CLI program name or path.
func (e *Executor) Executable() string {
	return e.executable
}

// BuildArgs assembles the CLI argument list:
// [config flags] [-x -] [-ztag] command args...
func BuildArgs(cfg connection.Config, command string, args []string, opts Options) []string {
	argv := cfg.Args()
	if len(opts.Input) > 0 {
		argv = append(argv, "-x", "-")
	}
	if opts.ZTag {
		argv = append(argv, "-ztag")
	}
	if command != "" {
		argv = append(argv, command)
	}
	return append(argv, args...)
}

// Execute runs one CLI command and blocks until it exits. It never returns
// an error: launch failures yield exit code 1 with whatever output was seen.
// ctx is only consulted before the process is started.
func (e *Executor) Execute(ctx context.Context, cfg connection.Config, command string, args []string, opts Options) *Result {
	argv := BuildArgs(cfg, command, args, opts)
	entry := e.log.WithField("command", FormatCommandLine(e.executable, maskPassword(argv)))

	if err := ctx.Err(); err != nil {
		entry.WithError(err).Debug(ErrCanceled.Error())
		return &Result{ExitCode: FailedExitCode}
	}

	cmd := exec.Command(e.executable, argv...)
	if pathutil.DirExists(e.fs, cfg.ConfigDirectory) {
		cmd.Dir = cfg.ConfigDirectory
	}
	if cfg.Ignore != "" {
		cmd.Env = append(os.Environ(), "P4IGNORE="+cfg.Ignore)
	}

	sink := &capture{}
	if opts.Echo || e.echo {
		sink.echo = entry
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return e.failed(entry, &CommandError{Cmd: e.executable, Stage: "stdout", Cause: err}, sink)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return e.failed(entry, &CommandError{Cmd: e.executable, Stage: "stderr", Cause: err}, sink)
	}
	var stdin io.WriteCloser
	if len(opts.Input) > 0 {
		if stdin, err = cmd.StdinPipe(); err != nil {
			return e.failed(entry, &CommandError{Cmd: e.executable, Stage: "stdin", Cause: err}, sink)
		}
	}

	entry.Debug("starting")
	if err := cmd.Start(); err != nil {
		return e.failed(entry, &CommandError{Cmd: e.executable, Stage: "start", Cause: err}, sink)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go e.collect(&wg, stdoutPipe, newLineWriter(sink, output.StdOut))
	go e.collect(&wg, stderrPipe, newLineWriter(sink, output.StdErr))

	if stdin != nil {
		e.feed(entry, stdin, opts.Input)
	}

	wg.Wait()

	exitCode := exitCodeOf(cmd.Wait())
	entry.WithField("exit_code", exitCode).Debug("finished")

	return &Result{ExitCode: exitCode, Output: sink.snapshot()}
}

func (e *Executor) collect(wg *sync.WaitGroup, r io.Reader, w *lineWriter) {
	defer wg.Done()
	_, _ = io.Copy(w, r)
	w.flush()
}

// feed writes input lines to stdin and closes it. A child that exits
// without reading is not an error worth surfacing.
func (e *Executor) feed(entry logrus.FieldLogger, stdin io.WriteCloser, lines []string) {
	for _, line := range lines {
		if _, err := io.WriteString(stdin, line+"\n"); err != nil {
			entry.WithError(err).Debug("stdin closed early")
			break
		}
	}
	if err := stdin.Close(); err != nil {
		entry.WithError(err).Debug("closing stdin")
	}
}

func (e *Executor) failed(entry logrus.FieldLogger, err error, sink *capture) *Result {
	entry.WithError(err).Warn("invocation failed")
	return &Result{ExitCode: FailedExitCode, Output: sink.snapshot()}
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok && ec.ExitCode() >= 0 {
		return ec.ExitCode()
	}
	return FailedExitCode
}

// FormatCommandLine renders program and args as one string. Values that
// are empty or contain whitespace are double-quoted.
func FormatCommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(program))
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	return `"` + s + `"`
}

func maskPassword(args []string) []string {
	out := append([]string(nil), args...)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "-P" {
			out[i+1] = "********"
			i++
		}
	}
	return out
}

package executor

import (
	"errors"
	"fmt"
)

// ErrCanceled is logged when the context is done before the process starts.
var ErrCanceled = errors.New("invocation canceled before start")

// CommandError describes a failure to launch or talk to the CLI process.
// It never crosses the Execute boundary; it is logged and folded into
// exit code 1.
type CommandError struct {
	Cmd   string
	Stage string
	Cause error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Cmd, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }

func (e *CommandError) IOError() bool { return true }

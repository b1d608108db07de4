package p4v

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrUnexpectedRoot is returned when the settings document is not the
// GUI client's application settings.
var ErrUnexpectedRoot = errors.New("not an ApplicationSettings property list")

// SettingsError wraps failures reading or decoding the settings file.
type SettingsError struct {
	Path  string
	Cause error
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("p4v settings %s: %v", e.Path, e.Cause)
}

func (e *SettingsError) Unwrap() error { return e.Cause }

func (e *SettingsError) InvalidInput() bool {
	var syntax *xml.SyntaxError
	return errors.As(e.Cause, &syntax) || errors.Is(e.Cause, ErrUnexpectedRoot)
}

// LaunchError is returned when a GUI helper process cannot be started.
type LaunchError struct {
	Program string
	Cause   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Program, e.Cause)
}

func (e *LaunchError) Unwrap() error { return e.Cause }

func (e *LaunchError) IOError() bool { return true }

// WatchError is returned when the settings file cannot be watched.
type WatchError struct {
	Path  string
	Cause error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("failed to watch %s: %v", e.Path, e.Cause)
}

func (e *WatchError) Unwrap() error { return e.Cause }

func (e *WatchError) IOError() bool { return true }

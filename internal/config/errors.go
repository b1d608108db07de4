package config

import "fmt"

// ReadError is returned when the dotfile exists but cannot be read.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read config %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }

func (e *ReadError) IOError() bool { return true }

// ParseError is returned for malformed dotfiles or values of the wrong type.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) InvalidInput() bool { return true }

// Package output models the channel-tagged lines captured from a CLI invocation.
package output

import "fmt"

// Channel identifies the stream a line was read from.
type Channel int

const (
	StdOut Channel = iota
	StdErr
)

func (c Channel) String() string {
	switch c {
	case StdOut:
		return "StdOut"
	case StdErr:
		return "StdErr"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Line is a single line of captured output.
type Line struct {
	Text    string
	Channel Channel
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %s", l.Channel, l.Text)
}

// Text returns the text of every line on the given channel, in capture order.
func Text(lines []Line, ch Channel) []string {
	var out []string
	for _, l := range lines {
		if l.Channel == ch {
			out = append(out, l.Text)
		}
	}
	return out
}

// StdOutLines is shorthand for lines tagged from stdout, as text.
func StdOutLines(lines []Line) []string {
	return Text(lines, StdOut)
}

// StdErrLines is shorthand for lines tagged from stderr, as text.
func StdErrLines(lines []Line) []string {
	return Text(lines, StdErr)
}

package record

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Cyclone1070/p4bridge/internal/p4/output"
)

// EnvEntry is one line of the CLI's environment report: NAME=value (source).
type EnvEntry struct {
	Name   string
	Value  string
	Source string
}

// ParseEnvironmentEntries reads "name = value" lines, each optionally followed by
// a parenthesised source annotation. Non-matching lines are skipped.
func ParseEnvironmentEntries(lines []output.Line) []EnvEntry {
	var entries []EnvEntry
	for _, line := range lines {
		if line.Channel != output.StdOut {
			continue
		}
		if e, ok := matchEnvironment(line.Text); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseEnvironment collects the environment report into a single record.
func ParseEnvironment(lines []output.Line) *Record {
	r := New()
	for _, e := range ParseEnvironmentEntries(lines) {
		r.Set(e.Name, e.Value)
	}
	return r
}

func matchEnvironment(text string) (EnvEntry, bool) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return EnvEntry{}, false
	}
	name := strings.TrimRightFunc(text[:eq], unicode.IsSpace)
	first, _ := utf8.DecodeRuneInString(name)
	if utf8.RuneCountInString(name) < 2 || !isWordRune(first) || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return EnvEntry{}, false
	}

	value := strings.TrimLeftFunc(text[eq+1:], unicode.IsSpace)
	value, source := splitSource(value)
	return EnvEntry{Name: name, Value: value, Source: source}, true
}

// splitSource separates a trailing " (annotation)" from value. The earliest
// whitespace run followed by "(" that reaches a closing ")" at end of line wins.
func splitSource(value string) (string, string) {
	if !strings.HasSuffix(value, ")") {
		return value, ""
	}
	for i, r := range value {
		if !unicode.IsSpace(r) {
			continue
		}
		j := i
		for j < len(value) {
			c, size := utf8.DecodeRuneInString(value[j:])
			if !unicode.IsSpace(c) {
				break
			}
			j += size
		}
		if j < len(value) && value[j] == '(' && len(value)-j > 2 {
			return value[:i], value[j+1 : len(value)-1]
		}
	}
	return value, ""
}

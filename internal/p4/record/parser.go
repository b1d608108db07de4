package record

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Cyclone1070/p4bridge/internal/p4/output"
)

// DefaultMarker prefixes every field line in the CLI's structured output mode.
const DefaultMarker = "..."

// Parser groups structured output lines into records.
//
// A field line is one or more repetitions of Marker followed by a single
// whitespace character, then a field name, then the value to end of line. Any
// other stdout line closes the current record, unless SingleNode is set, in
// which case every field line lands in one record.
type Parser struct {
	Marker     string
	SingleNode bool
}

// Parse parses lines with the default marker.
func Parse(lines []output.Line, singleNode bool) []*Record {
	return Parser{Marker: DefaultMarker, SingleNode: singleNode}.Parse(lines)
}

// Parse converts the stdout lines of lines into records. Stderr lines are ignored.
func (p Parser) Parse(lines []output.Line) []*Record {
	marker := p.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	var records []*Record
	var current *Record
	for _, line := range lines {
		if line.Channel != output.StdOut {
			continue
		}
		name, value, ok := matchField(line.Text, marker)
		if !ok {
			if !p.SingleNode {
				current = nil
			}
			continue
		}
		if current == nil {
			current = New()
			records = append(records, current)
		}
		current.Set(name, value)
	}
	return records
}

// matchField recognises "<marker> [<marker> ...]<name> <value>".
func matchField(text, marker string) (name, value string, ok bool) {
	rest := text
	repetitions := 0
	for strings.HasPrefix(rest, marker) {
		after := rest[len(marker):]
		r, size := utf8.DecodeRuneInString(after)
		if size == 0 || !unicode.IsSpace(r) {
			break
		}
		rest = after[size:]
		repetitions++
	}
	if repetitions == 0 {
		return "", "", false
	}

	first, size := utf8.DecodeRuneInString(rest)
	if size == 0 || !isWordRune(first) {
		return "", "", false
	}
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	name = rest[:end]
	if utf8.RuneCountInString(name) < 2 {
		return "", "", false
	}
	value = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	return name, value, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

package result

import "strings"

const utf8BOM = "\uFEFF"

// Print is the typed view of "print -q": the file content as lines.
type Print struct {
	*ResultSet
	Lines []string
}

func NewPrint(rs *ResultSet) *Print {
	lines := rs.StdOut()
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], utf8BOM)
	}
	return &Print{ResultSet: rs, Lines: lines}
}

// Content joins Lines with "\n", ending with a newline when non-empty.
func (p *Print) Content() string {
	if len(p.Lines) == 0 {
		return ""
	}
	return strings.Join(p.Lines, "\n") + "\n"
}

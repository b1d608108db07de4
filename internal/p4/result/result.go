// Package result provides typed views over parsed CLI output.
package result

import (
	"github.com/Cyclone1070/p4bridge/internal/p4/output"
	"github.com/Cyclone1070/p4bridge/internal/p4/pathutil"
	"github.com/Cyclone1070/p4bridge/internal/p4/record"
)

// Format selects how stdout is turned into records.
type Format int

const (
	// Tagged output: "... name value" field lines.
	Tagged Format = iota
	// Environment report: "NAME=value (source)" lines, one record.
	Environment
	// Raw output is kept as text only.
	Raw
)

// Schema declares how a command must be invoked and parsed.
type Schema struct {
	ZTag       bool
	SingleNode bool
	Format     Format
}

var (
	FStatSchema     = Schema{ZTag: true}
	WhereSchema     = Schema{ZTag: true}
	InfoSchema      = Schema{ZTag: true}
	SetSchema       = Schema{Format: Environment}
	ClientsSchema   = Schema{ZTag: true}
	BranchSchema    = Schema{ZTag: true, SingleNode: true}
	ReconcileSchema = Schema{ZTag: true}
	ResolveSchema   = Schema{ZTag: true}
	ResolvedSchema  = Schema{ZTag: true}
	IntegSchema     = Schema{ZTag: true}
	PrintSchema     = Schema{Format: Raw}
	CommandSchema   = Schema{}
)

// ResultSet is the parsed outcome of one invocation. It is not modified
// after Parse returns.
type ResultSet struct {
	ExitCode int
	Records  []*record.Record
	Output   []output.Line
}

// Parse builds a ResultSet from an exit code and captured lines.
func Parse(exitCode int, lines []output.Line, s Schema) *ResultSet {
	rs := &ResultSet{ExitCode: exitCode, Output: lines}
	switch s.Format {
	case Tagged:
		rs.Records = record.Parse(lines, s.SingleNode)
	case Environment:
		if env := record.ParseEnvironment(lines); env.Len() > 0 {
			rs.Records = []*record.Record{env}
		}
	}
	return rs
}

// Success reports whether the command exited with code 0.
func (rs *ResultSet) Success() bool {
	return rs != nil && rs.ExitCode == 0
}

// StdOut returns stdout text lines.
func (rs *ResultSet) StdOut() []string {
	if rs == nil {
		return nil
	}
	return output.StdOutLines(rs.Output)
}

// StdErr returns stderr text lines.
func (rs *ResultSet) StdErr() []string {
	if rs == nil {
		return nil
	}
	return output.StdErrLines(rs.Output)
}

func wrap[N any](records []*record.Record, fn func(*record.Record) N) []N {
	nodes := make([]N, 0, len(records))
	for _, r := range records {
		nodes = append(nodes, fn(r))
	}
	return nodes
}

// findNode returns the first node for which any of fields, normalized,
// equals path case-insensitively.
func findNode[N any](nodes []N, path string, fields func(N) []string) (N, bool) {
	var zero N
	if pathutil.Normalize(path) == "" {
		return zero, false
	}
	for _, n := range nodes {
		for _, f := range fields(n) {
			if f != "" && pathutil.Equal(path, f) {
				return n, true
			}
		}
	}
	return zero, false
}

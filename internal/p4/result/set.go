package result

import (
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/record"
)

// Set is the typed view of the environment report ("set").
type Set struct {
	*ResultSet
	env *record.Record
}

func NewSet(rs *ResultSet) *Set {
	s := &Set{ResultSet: rs, env: record.New()}
	if len(rs.Records) > 0 {
		s.env = rs.Records[0]
	}
	return s
}

// Entries returns every reported variable with its source annotation.
func (s *Set) Entries() []record.EnvEntry {
	return record.ParseEnvironmentEntries(s.Output)
}

// Value returns the reported value of name, or "".
func (s *Set) Value(name string) string { return s.env.String(name, "") }

func (s *Set) P4Host() string   { return s.Value("P4HOST") }
func (s *Set) P4User() string   { return s.Value("P4USER") }
func (s *Set) P4Port() string   { return s.Value("P4PORT") }
func (s *Set) P4Client() string { return s.Value("P4CLIENT") }
func (s *Set) P4Config() string { return s.Value("P4CONFIG") }
func (s *Set) P4Editor() string { return s.Value("P4EDITOR") }
func (s *Set) P4Passwd() string { return s.Value("P4PASSWD") }
func (s *Set) P4Ignore() string { return s.Value("P4IGNORE") }

// Config returns the connection fields the environment defines.
func (s *Set) Config() connection.Config {
	return connection.Config{
		Host:   s.P4Host(),
		User:   s.P4User(),
		Port:   s.P4Port(),
		Client: s.P4Client(),
	}
}

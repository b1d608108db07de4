package catalog

import (
	"slices"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"golang.org/x/text/cases"
)

// key is the case-insensitive dedup key of a connection.
func key(c connection.Connection) string {
	return cases.Fold().String(c.String())
}

// orderedSet keeps the first connection seen for each key.
type orderedSet struct {
	seen  map[string]struct{}
	items []connection.Connection
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(c connection.Connection) bool {
	k := key(c)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// sorted returns the items ordered case-insensitively by canonical string.
func (s *orderedSet) sorted() []connection.Connection {
	out := slices.Clone(s.items)
	slices.SortStableFunc(out, func(a, b connection.Connection) int {
		if c := compareFold(a.String(), b.String()); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
	return out
}

func compareFold(a, b string) int {
	folder := cases.Fold()
	return strings.Compare(folder.String(a), folder.String(b))
}

package result

import "github.com/Cyclone1070/p4bridge/internal/p4/record"

// WhereNode is one mapping reported by "where". The CLI's "path" is the
// local file and "clientFile" is the workspace-syntax path.
type WhereNode struct{ *record.Record }

func (n WhereNode) ClientFile() string    { return n.String("path", "") }
func (n WhereNode) DepotFile() string     { return n.String("depotFile", "") }
func (n WhereNode) WorkspaceFile() string { return n.String("clientFile", "") }

// Unmapped reports a "-//depot/..." exclusion line.
func (n WhereNode) Unmapped() bool { return n.Has("unmap") }

// Where is the typed view of "where".
type Where struct {
	*ResultSet
	Nodes []WhereNode
}

func NewWhere(rs *ResultSet) *Where {
	return &Where{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) WhereNode { return WhereNode{r} })}
}

func (w *Where) FindNode(path string) (WhereNode, bool) {
	return findNode(w.Nodes, path, func(n WhereNode) []string {
		return []string{n.DepotFile(), n.ClientFile()}
	})
}

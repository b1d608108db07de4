package result

import "github.com/Cyclone1070/p4bridge/internal/p4/record"

// BranchNode is a branch spec reported by "branch -o".
type BranchNode struct{ *record.Record }

func (n BranchNode) Branch() string      { return n.String("Branch", "") }
func (n BranchNode) Update() string      { return n.String("Update", "") }
func (n BranchNode) Access() string      { return n.String("Access", "") }
func (n BranchNode) Owner() string       { return n.String("Owner", "") }
func (n BranchNode) Description() string { return n.String("Description", "") }

// View returns View0, View1, ... up to the first missing index.
func (n BranchNode) View() []string { return n.Sequence("View") }

// Branch is the typed view of "branch -o". The spec form contains
// non-field lines, so it is parsed as a single node.
type Branch struct {
	*ResultSet
	Nodes []BranchNode
}

func NewBranch(rs *ResultSet) *Branch {
	return &Branch{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) BranchNode { return BranchNode{r} })}
}

package result

import "github.com/Cyclone1070/p4bridge/internal/p4/record"

// ReconcileNode is one file opened by "reconcile".
type ReconcileNode struct{ *record.Record }

func (n ReconcileNode) DepotFile() string  { return n.String("depotFile", "") }
func (n ReconcileNode) ClientFile() string { return n.String("clientFile", "") }
func (n ReconcileNode) WorkRev() int       { return n.Int("workRev", 0) }
func (n ReconcileNode) Action() Action     { return record.Enum(n.Record, "action", ActionNone, actions...) }
func (n ReconcileNode) Type() string       { return n.String("type", "") }

// Reconcile is the typed view of "reconcile".
type Reconcile struct {
	*ResultSet
	Nodes []ReconcileNode
}

func NewReconcile(rs *ResultSet) *Reconcile {
	return &Reconcile{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) ReconcileNode { return ReconcileNode{r} })}
}

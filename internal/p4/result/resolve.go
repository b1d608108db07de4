package result

import "github.com/Cyclone1070/p4bridge/internal/p4/record"

// ResolveNode is one pending resolve reported by "resolve -n".
type ResolveNode struct{ *record.Record }

func (n ResolveNode) ClientFile() string         { return n.String("clientFile", "") }
func (n ResolveNode) FromFile() string           { return n.String("fromFile", "") }
func (n ResolveNode) StartFromRev() string       { return n.String("startFromRev", "") }
func (n ResolveNode) EndFromRev() string         { return n.String("endFromRev", "") }
func (n ResolveNode) BaseFile() string           { return n.String("baseFile", "") }
func (n ResolveNode) BaseRev() string            { return n.String("baseRev", "") }
func (n ResolveNode) ResolveType() string        { return n.String("resolveType", "") }
func (n ResolveNode) ResolveFlag() string        { return n.String("resolveFlag", "") }
func (n ResolveNode) ContentResolveType() string { return n.String("contentResolveType", "") }

type Resolve struct {
	*ResultSet
	Nodes []ResolveNode
}

func NewResolve(rs *ResultSet) *Resolve {
	return &Resolve{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) ResolveNode { return ResolveNode{r} })}
}

func (r *Resolve) FindNode(path string) (ResolveNode, bool) {
	return findNode(r.Nodes, path, func(n ResolveNode) []string {
		return []string{n.ClientFile()}
	})
}

// ResolvedNode is one completed resolve reported by "resolved".
type ResolvedNode struct{ *record.Record }

func (n ResolvedNode) Path() string         { return n.String("path", "") }
func (n ResolvedNode) ToFile() string       { return n.String("toFile", "") }
func (n ResolvedNode) FromFile() string     { return n.String("fromFile", "") }
func (n ResolvedNode) StartToRev() string   { return n.String("startToRev", "") }
func (n ResolvedNode) EndToRev() string     { return n.String("endToRev", "") }
func (n ResolvedNode) StartFromRev() string { return n.String("startFromRev", "") }
func (n ResolvedNode) EndFromRev() string   { return n.String("endFromRev", "") }
func (n ResolvedNode) How() string          { return n.String("how", "") }
func (n ResolvedNode) ResolveType() string  { return n.String("resolveType", "") }

type Resolved struct {
	*ResultSet
	Nodes []ResolvedNode
}

func NewResolved(rs *ResultSet) *Resolved {
	return &Resolved{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) ResolvedNode { return ResolvedNode{r} })}
}

func (r *Resolved) FindNode(path string) (ResolvedNode, bool) {
	return findNode(r.Nodes, path, func(n ResolvedNode) []string {
		return []string{n.ToFile(), n.Path()}
	})
}

// IntegNode is one file scheduled by "integrate".
type IntegNode struct{ *record.Record }

func (n IntegNode) TargetFile() string { return n.String("depotFile", "") }
func (n IntegNode) SourceFile() string { return n.String("fromFile", "") }

type Integ struct {
	*ResultSet
	Nodes []IntegNode
}

func NewInteg(rs *ResultSet) *Integ {
	return &Integ{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) IntegNode { return IntegNode{r} })}
}

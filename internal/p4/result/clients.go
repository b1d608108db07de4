package result

import "github.com/Cyclone1070/p4bridge/internal/p4/record"

// ClientNode is one workspace reported by "clients".
type ClientNode struct{ *record.Record }

func (n ClientNode) Client() string        { return n.String("client", "") }
func (n ClientNode) Update() int64         { return n.Int64("Update", 0) }
func (n ClientNode) Access() int64         { return n.Int64("Access", 0) }
func (n ClientNode) Owner() string         { return n.String("Owner", "") }
func (n ClientNode) Options() string       { return n.String("Options", "") }
func (n ClientNode) SubmitOptions() string { return n.String("SubmitOptions", "") }
func (n ClientNode) LineEnd() string       { return n.String("LineEnd", "") }
func (n ClientNode) Root() string          { return n.String("Root", "") }
func (n ClientNode) Host() string          { return n.String("Host", "") }
func (n ClientNode) Description() string   { return n.String("Description", "") }

// Clients is the typed view of "clients".
type Clients struct {
	*ResultSet
	Nodes []ClientNode
}

func NewClients(rs *ResultSet) *Clients {
	return &Clients{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) ClientNode { return ClientNode{r} })}
}

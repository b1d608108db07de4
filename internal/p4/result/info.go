package result

import (
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/record"
)

// InfoNode is the single record reported by "info".
type InfoNode struct{ *record.Record }

func (n InfoNode) UserName() string       { return n.String("userName", "") }
func (n InfoNode) ClientName() string     { return n.String("clientName", "") }
func (n InfoNode) ClientRoot() string     { return n.String("clientRoot", "") }
func (n InfoNode) ClientLock() string     { return n.String("clientLock", "") }
func (n InfoNode) ClientCwd() string      { return n.String("clientCwd", "") }
func (n InfoNode) ClientHost() string     { return n.String("clientHost", "") }
func (n InfoNode) PeerAddress() string    { return n.String("peerAddress", "") }
func (n InfoNode) ClientAddress() string  { return n.String("clientAddress", "") }
func (n InfoNode) ServerName() string     { return n.String("serverName", "") }
func (n InfoNode) ServerAddress() string  { return n.String("serverAddress", "") }
func (n InfoNode) ServerRoot() string     { return n.String("serverRoot", "") }
func (n InfoNode) ServerDate() string     { return n.String("serverDate", "") }
func (n InfoNode) ServerUptime() string   { return n.String("serverUptime", "") }
func (n InfoNode) ServerVersion() string  { return n.String("serverVersion", "") }
func (n InfoNode) ServerServices() string { return n.String("serverServices", "") }
func (n InfoNode) ServerLicense() string  { return n.String("serverLicense", "") }
func (n InfoNode) CaseHandling() string   { return n.String("caseHandling", "") }
func (n InfoNode) BrokerAddress() string  { return n.String("brokerAddress", "") }
func (n InfoNode) BrokerVersion() string  { return n.String("brokerVersion", "") }

// Info is the typed view of "info".
type Info struct {
	*ResultSet
	node *InfoNode
}

func NewInfo(rs *ResultSet) *Info {
	info := &Info{ResultSet: rs}
	if len(rs.Records) > 0 {
		info.node = &InfoNode{rs.Records[0]}
	}
	return info
}

// Node returns the reported record, if any.
func (i *Info) Node() (InfoNode, bool) {
	if i.node == nil {
		return InfoNode{}, false
	}
	return *i.node, true
}

// Config extracts the connection the server reports for this invocation.
// Names the server renders as placeholders ("*unknown*") are left empty,
// and a broker address is preferred over the server's own.
func (i *Info) Config() connection.Config {
	var cfg connection.Config
	if i.node == nil {
		return cfg
	}
	cfg.Host = knownName(i.node.ClientHost())
	cfg.User = knownName(i.node.UserName())
	cfg.Client = knownName(i.node.ClientName())
	if broker := i.node.BrokerAddress(); broker != "" {
		cfg.Port = broker
	} else {
		cfg.Port = i.node.ServerAddress()
	}
	return cfg
}

func knownName(name string) string {
	if strings.Contains(name, "*") {
		return ""
	}
	return name
}

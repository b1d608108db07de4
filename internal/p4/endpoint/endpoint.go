// Package endpoint splits server address strings ("ssl:host:1666") into their
// parts so two addresses can be compared independent of literal formatting.
package endpoint

import (
	"context"
	"net"
	"strings"
)

// Endpoint is a parsed server address. Absent parts are empty strings.
type Endpoint struct {
	Scheme     string
	PortName   string
	PortNumber string
}

// transports are the connection prefixes the CLI accepts ahead of a host name.
var transports = map[string]bool{
	"tcp": true, "tcp4": true, "tcp6": true, "tcp46": true, "tcp64": true,
	"ssl": true, "ssl4": true, "ssl6": true, "ssl46": true, "ssl64": true,
	"rsh": true, "jsh": true,
}

// Parse splits port into scheme, name and number. Input that does not have the
// shape [scheme:]name[:number] yields an all-empty Endpoint.
func Parse(port string) Endpoint {
	port = strings.TrimSpace(port)
	if port == "" {
		return Endpoint{}
	}

	parts := strings.Split(port, ":")
	var result Endpoint
	if len(parts) > 1 && transports[strings.ToLower(parts[0])] {
		result.Scheme = parts[0]
		parts = parts[1:]
	}

	switch len(parts) {
	case 1:
		result.PortName = parts[0]
	case 2:
		if !isDigits(parts[1]) {
			return Endpoint{}
		}
		result.PortName = parts[0]
		result.PortNumber = parts[1]
	default:
		return Endpoint{}
	}

	if result.PortName == "" {
		return Endpoint{}
	}
	return result
}

// String reassembles the endpoint in [scheme:]name[:number] form.
func (e Endpoint) String() string {
	var b strings.Builder
	if e.Scheme != "" {
		b.WriteString(e.Scheme)
		b.WriteByte(':')
	}
	b.WriteString(e.PortName)
	if e.PortNumber != "" {
		b.WriteByte(':')
		b.WriteString(e.PortNumber)
	}
	return b.String()
}

// IsZero reports whether no part of the endpoint is set.
func (e Endpoint) IsZero() bool {
	return e == Endpoint{}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HostResolver looks up the addresses of a host name. *net.Resolver satisfies it.
type HostResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Address resolves the port's host name to its first IPv4 address.
// Lookup failures and unparseable ports yield "".
func Address(ctx context.Context, r HostResolver, port string) string {
	name := Parse(port).PortName
	if name == "" || r == nil {
		return ""
	}
	addrs, err := r.LookupIPAddr(ctx, name)
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

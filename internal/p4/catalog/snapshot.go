package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
)

// Snapshot is everything a connection picker needs, gathered in one pass.
type Snapshot struct {
	// Known connections for this machine.
	Known []connection.Connection
	// PossibleClients includes workspaces bound to other machines.
	PossibleClients []connection.Connection
	// Current is the resolved current connection.
	Current connection.Connection
}

// Selected returns the known connection best matching Current.
func (s Snapshot) Selected() (connection.Connection, bool) {
	return FindBestMatch(s.Current, s.Known)
}

// KnownPorts lists distinct ports across PossibleClients, sorted.
func (s Snapshot) KnownPorts() []string {
	return distinct(s.PossibleClients, func(c connection.Connection) string { return c.Port })
}

// KnownUsers lists distinct users across PossibleClients, sorted.
func (s Snapshot) KnownUsers() []string {
	return distinct(s.PossibleClients, func(c connection.Connection) string { return c.User })
}

// KnownClients lists distinct workspaces across PossibleClients, sorted.
func (s Snapshot) KnownClients() []string {
	return distinct(s.PossibleClients, func(c connection.Connection) string { return c.Client })
}

func distinct(conns []connection.Connection, field func(connection.Connection) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range conns {
		v := field(c)
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok || v == "" {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int { return compareFold(a, b) })
	return out
}

// Load gathers a Snapshot synchronously.
func (c *Catalog) Load(ctx context.Context) Snapshot {
	return Snapshot{
		PossibleClients: c.Discover(ctx, DiscoverOptions{IncludeAllClients: true}),
		Known:           c.Discover(ctx, c.DefaultOptions()),
		Current:         c.resolver.Connection(ctx, nil).Connection(),
	}
}

// Pending is a Snapshot being gathered in the background.
type Pending struct {
	done chan struct{}
	snap Snapshot
}

// LoadAsync starts Load in a new goroutine. The caller decides whether the
// result is still wanted when it arrives.
func (c *Catalog) LoadAsync(ctx context.Context) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.snap = c.Load(ctx)
	}()
	return p
}

// Ready returns a Pending that already holds snap.
func Ready(snap Snapshot) *Pending {
	p := &Pending{done: make(chan struct{}), snap: snap}
	close(p.done)
	return p
}

// Done is closed once the Snapshot is ready.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the Snapshot is ready or ctx is done.
func (p *Pending) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-p.done:
		return p.snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Result returns the Snapshot if it is ready.
func (p *Pending) Result() (Snapshot, bool) {
	select {
	case <-p.done:
		return p.snap, true
	default:
		return Snapshot{}, false
	}
}

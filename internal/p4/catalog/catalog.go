// Package catalog discovers the connections a user is likely to want and
// picks the one matching the current configuration.
package catalog

import (
	"context"
	"os"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/Cyclone1070/p4bridge/internal/p4/result"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DiscoverOptions tune one discovery pass.
type DiscoverOptions struct {
	// IncludeAllClients keeps workspaces bound to other machines.
	IncludeAllClients bool
}

// Catalog builds connection lists. Each call re-reads every source.
type Catalog struct {
	exec        Executor
	resolver    Resolver
	settings    SettingsSource
	hostname    func() (string, error)
	concurrency int
	includeAll  bool
	log         logrus.FieldLogger
}

// New creates a Catalog.
func New(cfg *config.Config, exec Executor, resolver Resolver, settings SettingsSource, log logrus.FieldLogger) *Catalog {
	if cfg == nil {
		panic("cfg is required")
	}
	if exec == nil {
		panic("exec is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if settings == nil {
		panic("settings is required")
	}
	if log == nil {
		panic("log is required")
	}

	hostname := os.Hostname
	if name := cfg.Catalog.MachineName; name != "" {
		hostname = func() (string, error) { return name, nil }
	}
	return &Catalog{
		exec:        exec,
		resolver:    resolver,
		settings:    settings,
		hostname:    hostname,
		concurrency: max(cfg.Catalog.Concurrency, 1),
		includeAll:  cfg.Catalog.IncludeAllClients,
		log:         log,
	}
}

// DefaultOptions returns the options configured for this catalog.
func (c *Catalog) DefaultOptions() DiscoverOptions {
	return DiscoverOptions{IncludeAllClients: c.includeAll}
}

// Discover lists known connections: the GUI client's saved connections,
// the current connection when complete, and every workspace the user owns
// on each server seen so far. Entries are deduplicated case-insensitively,
// normalized against the environment's port and deduplicated again.
// The result is sorted by canonical string.
func (c *Catalog) Discover(ctx context.Context, opts DiscoverOptions) []connection.Connection {
	known := newOrderedSet()

	for _, conn := range c.settings.Settings().Connections() {
		known.add(conn)
	}

	current := c.resolver.Connection(ctx, nil)
	if current.IsComplete() {
		known.add(current.Connection())
	}

	for _, conn := range c.workspaces(ctx, representatives(known.items), opts) {
		known.add(conn)
	}

	env := c.resolver.Environment(ctx, "")
	normalized := newOrderedSet()
	for _, conn := range known.items {
		normalized.add(c.resolver.NormalizePort(ctx, conn.Config(), env).Connection())
	}
	return normalized.sorted()
}

// representatives returns the first connection seen for each distinct port.
func representatives(conns []connection.Connection) []connection.Connection {
	seen := make(map[string]struct{})
	var out []connection.Connection
	for _, conn := range conns {
		k := strings.ToLower(conn.Port)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, conn)
	}
	return out
}

// workspaces enumerates, per port, the workspaces owned by that port's user.
// Ports are queried concurrently; results keep port order. A failing port
// contributes nothing.
func (c *Catalog) workspaces(ctx context.Context, ports []connection.Connection, opts DiscoverOptions) []connection.Connection {
	machine, err := c.hostname()
	if err != nil {
		c.log.WithError(err).Debug("unknown machine name")
	}

	found := make([][]connection.Connection, len(ports))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, port := range ports {
		g.Go(func() error {
			found[i] = c.clientsOn(ctx, port, machine, opts)
			return nil
		})
	}
	_ = g.Wait()

	var out []connection.Connection
	for _, conns := range found {
		out = append(out, conns...)
	}
	return out
}

func (c *Catalog) clientsOn(ctx context.Context, port connection.Connection, machine string, opts DiscoverOptions) []connection.Connection {
	res := c.exec.Execute(ctx, port.Config(), "clients", []string{"-u", port.User}, executor.Options{ZTag: result.ClientsSchema.ZTag})
	if !res.Success() {
		c.log.WithFields(logrus.Fields{"port": port.Port, "exit_code": res.ExitCode}).Debug("skipping port, workspace listing failed")
		return nil
	}

	var out []connection.Connection
	clients := result.NewClients(result.Parse(res.ExitCode, res.Output, result.ClientsSchema))
	for _, n := range clients.Nodes {
		if n.Client() == "" {
			continue
		}
		if !opts.IncludeAllClients && n.Host() != "" && !strings.EqualFold(n.Host(), machine) {
			continue
		}
		out = append(out, connection.Connection{Port: port.Port, User: port.User, Client: n.Client()})
	}
	return out
}

// Score rates how well candidate matches target: one point when user,
// port host name and client agree case-insensitively, and one more when
// the ports are also literally identical.
func Score(target, candidate connection.Connection) int {
	if !strings.EqualFold(candidate.User, target.User) ||
		!strings.EqualFold(candidate.PortName(), target.PortName()) ||
		!strings.EqualFold(candidate.Client, target.Client) {
		return 0
	}
	if candidate.Port == target.Port {
		return 2
	}
	return 1
}

// FindBestMatch returns the highest scoring candidate. Ties go to the
// earliest candidate; when nothing scores, ok is false.
func FindBestMatch(target connection.Connection, candidates []connection.Connection) (best connection.Connection, ok bool) {
	bestScore := 0
	for _, cand := range candidates {
		if s := Score(target, cand); s > bestScore {
			best, bestScore, ok = cand, s, true
		}
	}
	return best, ok
}

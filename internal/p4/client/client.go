// Package client runs typed CLI commands against the current connection.
package client

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/Cyclone1070/p4bridge/internal/p4/ignore"
	"github.com/Cyclone1070/p4bridge/internal/p4/result"
	"github.com/sirupsen/logrus"
)

// Call carries per-invocation settings. A nil Config means the current
// connection scoped to the directory of the files involved.
type Call struct {
	Config *connection.Config
	Echo   bool
}

// Client wraps an Executor with typed commands.
type Client struct {
	exec     Executor
	dirs     DirectoryResolver
	current  ConnectionSource
	ignoreFS ignore.FileSystem
	log      logrus.FieldLogger
}

// New creates a Client.
func New(exec Executor, dirs DirectoryResolver, current ConnectionSource, log logrus.FieldLogger) *Client {
	if exec == nil {
		panic("exec is required")
	}
	if dirs == nil {
		panic("dirs is required")
	}
	if current == nil {
		panic("current is required")
	}
	if log == nil {
		panic("log is required")
	}
	return &Client{
		exec:     exec,
		dirs:     dirs,
		current:  current,
		ignoreFS: ignore.OSFileSystem{},
		log:      log.WithField("component", "client"),
	}
}

// WithIgnoreFileSystem replaces the filesystem used to read ignore files.
func (c *Client) WithIgnoreFileSystem(fs ignore.FileSystem) *Client {
	if fs == nil {
		panic("fs is required")
	}
	c.ignoreFS = fs
	return c
}

// Config returns the configuration a call touching files would use.
func (c *Client) Config(call Call, files []string) connection.Config {
	if call.Config != nil {
		return call.Config.Clone()
	}
	return c.dirs.DirectoryConfig(c.current.Current(), files)
}

// Run executes command with args and feeds files on stdin.
func (c *Client) Run(ctx context.Context, command string, args, files []string, call Call) *result.ResultSet {
	return c.run(ctx, command, args, files, call, result.CommandSchema)
}

func (c *Client) run(ctx context.Context, command string, args, files []string, call Call, s result.Schema) *result.ResultSet {
	cfg := c.Config(call, files)
	res := c.exec.Execute(ctx, cfg, command, args, executor.Options{
		Input: files,
		ZTag:  s.ZTag,
		Echo:  call.Echo,
	})
	return result.Parse(res.ExitCode, res.Output, s)
}

// FStat reports file state.
func (c *Client) FStat(ctx context.Context, files []string, call Call) *result.FStat {
	return result.NewFStat(c.run(ctx, "fstat", nil, files, call, result.FStatSchema))
}

// Where maps files between depot, workspace and local syntax.
func (c *Client) Where(ctx context.Context, files []string, call Call) *result.Where {
	return result.NewWhere(c.run(ctx, "where", nil, files, call, result.WhereSchema))
}

// Info runs the server handshake.
func (c *Client) Info(ctx context.Context, call Call) *result.Info {
	return result.NewInfo(c.run(ctx, "info", nil, nil, call, result.InfoSchema))
}

// Set runs the environment report.
func (c *Client) Set(ctx context.Context, call Call) *result.Set {
	return result.NewSet(c.run(ctx, "set", nil, nil, call, result.SetSchema))
}

// GetClientFile returns the local path of path, or "" when unmapped.
func (c *Client) GetClientFile(ctx context.Context, path string, call Call) string {
	w := c.Where(ctx, []string{path}, call)
	if len(w.Nodes) == 0 {
		return ""
	}
	return w.Nodes[0].ClientFile()
}

// GetDepotFile returns the depot path of path, or "" when unmapped.
func (c *Client) GetDepotFile(ctx context.Context, path string, call Call) string {
	w := c.Where(ctx, []string{path}, call)
	if len(w.Nodes) == 0 {
		return ""
	}
	return w.Nodes[0].DepotFile()
}

// Clients lists workspaces owned by user, or all when user is empty.
func (c *Client) Clients(ctx context.Context, user string, call Call) *result.Clients {
	var args []string
	if user != "" {
		args = []string{"-u", user}
	}
	return result.NewClients(c.run(ctx, "clients", args, nil, call, result.ClientsSchema))
}

// Branch returns the branch spec named name.
func (c *Client) Branch(ctx context.Context, name string, call Call) *result.Branch {
	return result.NewBranch(c.run(ctx, "branch", []string{"-o", name}, nil, call, result.BranchSchema))
}

// Reconcile finds local changes to files. With preview set nothing is opened.
func (c *Client) Reconcile(ctx context.Context, files []string, preview bool, call Call) *result.Reconcile {
	var args []string
	if preview {
		args = []string{"-n"}
	}
	return result.NewReconcile(c.run(ctx, "reconcile", args, files, call, result.ReconcileSchema))
}

// Resolve lists pending resolves for files without resolving them.
func (c *Client) Resolve(ctx context.Context, files []string, call Call) *result.Resolve {
	return result.NewResolve(c.run(ctx, "resolve", []string{"-n"}, files, call, result.ResolveSchema))
}

// Resolved lists files resolved but not yet submitted.
func (c *Client) Resolved(ctx context.Context, files []string, call Call) *result.Resolved {
	return result.NewResolved(c.run(ctx, "resolved", nil, files, call, result.ResolvedSchema))
}

// Integ previews integrating from source into target.
func (c *Client) Integ(ctx context.Context, source, target string, call Call) *result.Integ {
	return result.NewInteg(c.run(ctx, "integ", []string{"-n", source, target}, nil, call, result.IntegSchema))
}

// Print returns the depot content of file. When out is set the content is
// written there by the CLI instead.
func (c *Client) Print(ctx context.Context, file, out string, call Call) *result.Print {
	args := []string{"-q"}
	if out != "" {
		args = append(args, "-o", out)
	}
	return result.NewPrint(c.run(ctx, "print", args, []string{file}, call, result.PrintSchema))
}

// Add opens files for add, skipping those excluded by the connection's
// ignore files. Ignored paths are returned alongside the result.
func (c *Client) Add(ctx context.Context, files []string, call Call) (*result.ResultSet, []string) {
	cfg := c.Config(call, files)
	kept, ignored, err := ignore.NewMatcher(cfg.Ignore, c.ignoreFS).Filter(files)
	if err != nil {
		c.log.WithError(err).Warn("ignore files could not be read")
	}
	if len(ignored) > 0 {
		c.log.WithField("count", len(ignored)).Info("skipping ignored files")
	}
	if len(kept) == 0 {
		return &result.ResultSet{}, ignored
	}
	return c.run(ctx, "add", nil, kept, Call{Config: &cfg, Echo: call.Echo}, result.CommandSchema), ignored
}
